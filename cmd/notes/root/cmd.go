// Package rootcmd wires the root cobra.Command for the notes CLI binary.
package rootcmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/notekeeper/cmd/notes/add"
	configcmd "github.com/go-ports/notekeeper/cmd/notes/config"
	deletecmd "github.com/go-ports/notekeeper/cmd/notes/delete"
	editcmd "github.com/go-ports/notekeeper/cmd/notes/edit"
	exportcmd "github.com/go-ports/notekeeper/cmd/notes/export"
	filtercmd "github.com/go-ports/notekeeper/cmd/notes/filter"
	initcmd "github.com/go-ports/notekeeper/cmd/notes/init"
	listcmd "github.com/go-ports/notekeeper/cmd/notes/list"
	mcpcmd "github.com/go-ports/notekeeper/cmd/notes/mcp"
	searchcmd "github.com/go-ports/notekeeper/cmd/notes/search"
	"github.com/go-ports/notekeeper/cmd/notes/shared"
	showcmd "github.com/go-ports/notekeeper/cmd/notes/show"
	versioncmd "github.com/go-ports/notekeeper/cmd/notes/version"
	"github.com/go-ports/notekeeper/internal/config"
	"github.com/go-ports/notekeeper/internal/menu"
)

// New creates and returns the root cobra.Command for the notes CLI.
// Without a subcommand it runs the interactive menu.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "notes",
		Short:         "Notes: a small JSON-backed notebook",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(cmd, ctx)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.OpenService()
			if err != nil {
				return err
			}
			defer svc.Close()
			return menu.New(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(
		&ctx.NotesFile, "file", "",
		"Notes file (default: $NOTES_FILE env → persisted config → ./notes.json)",
	)
	root.PersistentFlags().StringVar(
		&ctx.LogLevel, "log-level", "",
		"Log level: debug, info, warn, error (default: log.level from config, else warn)",
	)

	root.AddCommand(
		initcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		showcmd.New(ctx).Cmd(),
		editcmd.New(ctx).Cmd(),
		deletecmd.New(ctx).Cmd(),
		filtercmd.New(ctx).Cmd(),
		searchcmd.New(ctx).Cmd(),
		exportcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}

// setupLogging installs a text slog handler on stderr. An explicit
// --log-level must be valid; a bad config value falls back to warn.
func setupLogging(cmd *cobra.Command, ctx *shared.Context) error {
	name := ctx.LogLevel
	if name != "" {
		if _, ok := config.ParseLevel(name); !ok {
			return fmt.Errorf("invalid --log-level %q", name)
		}
	} else if cfgPath, err := config.Path(); err == nil {
		if cfg, err := config.Load(cfgPath); err == nil {
			name = cfg.Log.Level
		}
	}

	level, _ := config.ParseLevel(name)
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}
