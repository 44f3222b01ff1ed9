// Package searchcmd implements the `notes search` command.
package searchcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/display"
)

// Command implements `notes search`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	limit int
}

// New creates the search command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Keyword search over note titles and bodies",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}

	c.cmd.Flags().IntVar(&c.limit, "limit", 10, "Maximum number of results (0 for all)")

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

	results, err := svc.Search(cmd.Context(), args[0], c.limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	fmt.Fprintf(out, "Results (%d found)\n", len(results))
	display.Notes(out, results, "")
	return nil
}
