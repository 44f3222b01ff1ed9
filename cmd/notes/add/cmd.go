// Package addcmd implements the `notes add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/display"
)

// Command implements `notes add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	title string
	body  string
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	f := c.cmd.Flags()
	f.StringVar(&c.title, "title", "", "Title of the note (required)")
	f.StringVar(&c.body, "body", "", "Body of the note")

	_ = c.cmd.MarkFlagRequired("title")

	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	n, err := svc.Add(c.title, c.body)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Note added successfully:")
	display.Note(cmd.OutOrStdout(), n)
	return nil
}
