package main

import (
	"fmt"
	"io"
	"os"

	"bulkrename/internal/app"
	"bulkrename/internal/config"
	"bulkrename/internal/display"
	"bulkrename/internal/rename"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
// Every error is printed exactly once, to stderr, with the error prefix.
func run(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr, color: config.ColorAuto}
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		c.printer(stderr).Error(err, c.debug)
		return 1
	}
	return 0
}

// cli holds the flag values and output streams of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer
	// color is the configured color mode, updated once the config is loaded.
	color string

	all       bool
	recursive bool
	debug     bool
	dryRun    bool
	dir       string
	limit     int
}

func (c *cli) printer(w io.Writer) *display.Printer {
	return display.NewPrinter(w, display.ColorEnabled(c.color, w, os.Getenv))
}

// loadConfig reads the config file, falling back to defaults when it is missing.
func (c *cli) loadConfig() (*config.Config, map[string]string, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}
	c.color = cfg.Color
	return cfg, defaults, nil
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "Rename", "History").
func (c *cli) newApp(operation string) (*app.App, error) {
	cfg, _, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, operation, app.Options{Dir: c.dir, Debug: c.debug, Stderr: c.stderr})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bulkrename [PATTERN] [REPLACEMENT]",
		Short: "Rename the entries of a directory in your text editor or with a regex",
		Long: `bulkrename lists the entries of a directory, one per line, and renames them.

With no REPLACEMENT the listing (filtered by PATTERN, if given) opens in
$EDITOR, then $VISUAL, then vi. Change the names you want, keep the line
count, save and quit. With a REPLACEMENT every match of the PATTERN regex is
substituted, $1 and ${name} expanding to capture groups.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := rename.ResolveMode(args)
			if err != nil {
				return err
			}

			a, err := c.newApp("Rename")
			if err != nil {
				return err
			}
			defer a.Close()

			if c.recursive {
				c.printer(c.stderr).Warn("--recursive is not supported, only the top level of the directory is renamed")
			}

			result, err := a.Rename(mode, c.all, c.dryRun)
			if result != nil {
				out := c.printer(c.stdout)
				if result.DryRun {
					out.Plan(result.Mapping)
				} else {
					out.Summary(result)
				}
			}
			return err
		},
	}

	root.Flags().BoolVarP(&c.all, "all", "a", false, "Include hidden entries")
	root.Flags().BoolVarP(&c.recursive, "recursive", "R", false, "Recurse into subdirectories (not supported)")
	root.Flags().StringVarP(&c.dir, "dir", "C", ".", "Directory to operate on")
	root.Flags().BoolVarP(&c.dryRun, "dry-run", "n", false, "Print the planned renames without renaming")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Print debug logs and the full error chain")

	root.AddCommand(c.newConfigCmd())
	root.AddCommand(c.newHistoryCmd())
	return root
}

// config command
func (c *cli) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := app.GetDefaults()
			if err != nil {
				return fmt.Errorf("failed to get defaults: %w", err)
			}

			cfg := config.NewConfig(defaults["base_dir"])
			if err := config.Init(defaults["config_path"], cfg); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			fmt.Fprintf(c.stdout, "Configuration initialized at %s\n", defaults["config_path"])
			fmt.Fprintf(c.stdout, "Base Dir: %s\n", defaults["base_dir"])
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "View the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, defaults, err := c.loadConfig()
			if err != nil {
				return err
			}

			fmt.Fprintf(c.stdout, "# Configuration from %s\n\n", defaults["config_path"])
			m := &config.Manager{}
			return m.Write(c.stdout, cfg)
		},
	}

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	return configCmd
}

// history command
func (c *cli) newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history [RUN_ID]",
		Short: "View executed rename runs",
		Long:  "Lists recent runs, newest first. Given a RUN_ID (or a unique prefix of one), shows that run's renames.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp("History")
			if err != nil {
				return err
			}
			defer a.Close()

			out := c.printer(c.stdout)
			if len(args) == 1 {
				run, err := a.FindRun(args[0])
				if err != nil {
					return err
				}
				out.Run(run)
				return nil
			}

			runs, err := a.History(c.limit)
			if err != nil {
				return err
			}
			out.Runs(runs)
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&c.limit, "limit", "n", 20, "Maximum number of runs to show")
	return historyCmd
}
