// Package listcmd implements the `notes list` command.
package listcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/display"
)

// Command implements `notes list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "list",
		Short: "List all notes in insertion order",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
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

	display.Notes(cmd.OutOrStdout(), svc.List(), "No notes available.")
	return nil
}
