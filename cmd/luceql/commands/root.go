// Package commands provides the CLI command definitions for luceql.
package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/luceql/luceql/internal/cli/config"
)

// Styles for CLI output
var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7C3AED")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// App holds the shared application state
type App struct {
	Config  *config.Config
	Version string
	Commit  string
	Date    string
}

// New creates the root CLI command with all subcommands
func New(version, commit, date string) *cli.Command {
	app := &App{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	return &cli.Command{
		Name:    "luceql",
		Usage:   "translate Lucene queries to CloudSearch structured syntax",
		Version: version,
		Description: `luceql converts Lucene-style boolean/field queries into Amazon
   CloudSearch structured query syntax.

   Run 'luceql <query>' to translate directly, 'luceql selftest' to run
   the built-in translation table, or 'luceql serve' for the HTTP API.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("LUCEQL_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "default-field",
				Aliases: []string{"f"},
				Usage:   "field unprefixed terms bind to",
				Sources: cli.EnvVars("LUCEQL_DEFAULT_FIELD"),
			},
			&cli.StringSliceFlag{
				Name:  "int-field",
				Usage: "field coerced to integers (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:  "yesno-field",
				Usage: "field coerced to 0/1 (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "test",
				Usage: "run the built-in translation table (alias for selftest)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// Set up logging
			if cmd.Bool("debug") {
				log.SetLevel(log.DebugLevel)
			}

			if cmd.Bool("no-color") {
				log.SetStyles(log.DefaultStyles())
				lipgloss.SetHasDarkBackground(false)
			}

			// Load configuration
			cfg, err := config.Load(config.LoadOptions{
				ConfigPath: cmd.String("config"),
			})
			if err != nil {
				log.Debug("config load warning", "error", err)
				// Use defaults if config doesn't exist
				cfg = config.Default()
			}

			// Override with CLI flags
			if field := cmd.String("default-field"); field != "" {
				cfg.Parser.DefaultField = field
			}
			if fields := cmd.StringSlice("int-field"); len(fields) > 0 {
				cfg.Parser.IntFields = fields
			}
			if fields := cmd.StringSlice("yesno-field"); len(fields) > 0 {
				cfg.Parser.YesNoFields = fields
			}

			app.Config = cfg
			return ctx, nil
		},
		Commands: []*cli.Command{
			app.translateCommand(),
			app.selftestCommand(),
			app.serveCommand(),
			app.versionCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Default action: translate the remaining arguments, or
			// show help when there are none.
			if cmd.Bool("test") {
				return app.runSelftest(ctx, cmd)
			}
			if cmd.Args().Len() > 0 {
				return app.runTranslate(ctx, cmd)
			}
			return cli.ShowAppHelp(cmd)
		},
	}
}

// versionCommand shows version information
func (a *App) versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "show version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("%s version %s\n", logoStyle.Render("luceql"), a.Version)
			fmt.Printf("  commit: %s\n", mutedStyle.Render(a.Commit))
			fmt.Printf("  built:  %s\n", mutedStyle.Render(a.Date))
			return nil
		},
	}
}
