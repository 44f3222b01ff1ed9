// Package showcmd implements the `notes show` command.
package showcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/display"
	"github.com/go-ports/notekeeper/internal/store"
)

// Command implements `notes show`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the show command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "show <note-id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
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

	n, err := svc.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "Note with ID %d not found.\n", id)
		return nil
	}
	if err != nil {
		return err
	}
	display.Note(cmd.OutOrStdout(), n)
	return nil
}
