package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NamanBalaji/etaprogress/internal/config"
	"github.com/NamanBalaji/etaprogress/internal/logger"
	"github.com/NamanBalaji/etaprogress/pkg/progress"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	width   int

	// cfg is the effective configuration, loaded before any subcommand runs.
	cfg *config.Config

	// Version info (set from main)
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "etaprogress",
	Short: "Progress bars with a regression based ETA",
	Long: `etaprogress draws progress bars whose ETA comes from a linear regression
over a sliding window of recent progress samples. It ships demo loops for every
bar style, a wget-like downloader and a terminal UI tracking simulated tasks.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		logger.Close()
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default $XDG_CONFIG_HOME/etaprogress/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write a debug log to the XDG state directory")
	rootCmd.PersistentFlags().IntVarP(&width, "width", "w", 0, "bar width in columns, 0 follows the terminal")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := logger.InitLogging(debug, logger.DefaultPath()); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}

	path := cfgFile
	if path == "" {
		path = config.Path()
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("width") {
		c.Width = width
		if err := c.Validate(); err != nil {
			return err
		}
	}

	logger.Debugf("Loaded configuration from %s: %+v", path, *c)
	cfg = c

	return nil
}

// barOptions turns the configuration into renderer options. The configured
// style only applies to bars drawn in the classic style.
func barOptions(c *config.Config, styled bool) ([]progress.Option, error) {
	tag, err := c.Language()
	if err != nil {
		return nil, err
	}

	opts := []progress.Option{
		progress.WithLanguage(tag),
		progress.WithEvery(c.EtaEvery),
		progress.WithWindowSize(c.WindowSize),
		progress.WithMaxWidth(c.MaxWidth),
	}

	if c.Width > 0 {
		opts = append(opts, progress.WithWidth(c.Width))
	}

	if styled && c.Style != nil {
		opts = append(opts, progress.WithStyle(c.Style.Bar()))
	}

	return opts, nil
}
