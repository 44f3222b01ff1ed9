// Package editcmd implements the `notes edit` command.
package editcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/display"
)

// Command implements `notes edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	title string
	body  string
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Replace a note's title and body",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.title, "title", "", "New title (required)")
	f.StringVar(&c.body, "body", "", "New body (required, may be empty)")

	_ = c.cmd.MarkFlagRequired("title")
	_ = c.cmd.MarkFlagRequired("body")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	id, err := shared.ParseID(args[0])
	if err != nil {
		return err
	}

	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	n, err := svc.Edit(id, c.title, c.body)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Note %d edited successfully:\n", id)
	display.Note(cmd.OutOrStdout(), n)
	return nil
}
