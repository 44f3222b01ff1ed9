// Package filtercmd implements the `notes filter` command.
package filtercmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/display"
)

// Command implements `notes filter`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the filter command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "filter <start> <end>",
		Short:   "List notes whose timestamp lies in [start, end]",
		Long:    "Both bounds use the layout YYYY-MM-DD HH:MM:SS and are inclusive.",
		Example: `  notes filter "2024-01-01 00:00:00" "2024-01-31 23:59:59"`,
		Args:    cobra.ExactArgs(2),
		RunE:    c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.OpenService()
	if err != nil {
		return err
	}
	defer svc.Close()

	notes, err := svc.FilterByDate(args[0], args[1])
	if err != nil {
		return err
	}
	display.Notes(cmd.OutOrStdout(), notes, "No notes found within the specified date range.")
	return nil
}
