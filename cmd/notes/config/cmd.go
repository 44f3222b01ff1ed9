// Package configcmd implements the `notes config` command group.
package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/notekeeper/cmd/notes/shared"
	"github.com/go-ports/notekeeper/internal/config"
)

const configTemplate = `# Notes configuration

storage:
  # Backing file. Overridden by --file and NOTES_FILE.
  # file: ~/notes.json
  atomic_write: false           # write a temp file and rename it into place

log:
  level: warn                   # debug | info | warn | error
`

// Command implements `notes config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  c.runShow,
	}
	c.cmd.AddCommand(
		newConfigInit(),
		newSetFile(),
		newClearFile(),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runShow(cmd *cobra.Command, _ []string) error {
	cfgPath, err := config.Path()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	file, source := config.ResolveNotesFile(c.ctx.NotesFile, cfg)

	data := map[string]any{
		"storage": map[string]any{
			"file":         cfg.Storage.File,
			"atomic_write": cfg.Storage.AtomicWrite,
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
		"config_path":       cfgPath,
		"notes_file":        file,
		"notes_file_source": source,
	}
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a starter config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := config.Path()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfgPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(cfgPath, []byte(configTemplate), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", cfgPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config set-file
// ---------------------------------------------------------------------------

func newSetFile() *cobra.Command {
	return &cobra.Command{
		Use:   "set-file <path>",
		Short: "Persist the notes file location (used when --file and NOTES_FILE are unset)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := config.SetPersistedNotesFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Persisted notes file: %s\n", resolved)
			fmt.Fprintln(out, "Override anytime with --file or NOTES_FILE.")
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// config clear-file
// ---------------------------------------------------------------------------

func newClearFile() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-file",
		Short: "Remove the persisted notes file location from global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed, err := config.ClearPersistedNotesFile()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if changed {
				fmt.Fprintln(out, "Cleared persisted notes file setting.")
			} else {
				fmt.Fprintln(out, "No persisted notes file setting was found.")
			}
			return nil
		},
	}
}
