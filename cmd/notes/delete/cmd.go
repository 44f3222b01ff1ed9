// Package deletecmd implements the `notes delete` command.
package deletecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
)

// Command implements `notes delete`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the delete command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete every note with the given ID",
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

	removed, err := svc.Delete(id)
	if err != nil {
		return err
	}
	if removed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Note %d deleted successfully.\n", id)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "No note found with ID %d.\n", id)
	}
	return nil
}
