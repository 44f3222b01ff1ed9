// Package exportcmd implements the `notes export` command.
package exportcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
)

// Command implements `notes export`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	out string
}

// New creates the export command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "export",
		Short: "Export all notes as Markdown",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	c.cmd.Flags().StringVarP(&c.out, "out", "o", "", "Write to this file instead of stdout")

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

	if c.out == "" {
		return svc.Export(cmd.OutOrStdout())
	}

	f, err := os.Create(c.out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := svc.Export(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d notes to %s\n", len(svc.List()), c.out)
	return nil
}
