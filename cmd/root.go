package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yarlson/loadingbar"
	"github.com/yarlson/loadingbar/internal/config"
)

var cfgFile string

// GetConfigFile returns the config file path from the flag.
func GetConfigFile() string {
	return cfgFile
}

var verbosity string

// NewRootCmd creates the root command for the loadingbar CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loadingbar",
		Short: "ANSI terminal progress bars that fill the available width",
		Long: `loadingbar renders single-line progress bars sized to the terminal.

Every bar ends with a cursor-up sequence, so printing bars one after
another redraws the same line.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./loadingbar.yaml, then ~/.config/loadingbar/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", logrus.WarnLevel.String(), "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newDemoCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// newLogger builds the stderr logger selected by --verbosity.
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return nil, fmt.Errorf("unable to parse verbosity %s: %w", verbosity, err)
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	return log, nil
}

// loadSettings resolves the logger and validated configuration for a command.
func loadSettings(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigWithFile(workDir, GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"workdir": workDir,
		"config":  GetConfigFile(),
	}).Debug("loaded config")

	return cfg, log, nil
}

// barFlags overrides configured bar settings with the flags the user set.
func barFlags(cmd *cobra.Command, cfg *config.Config, rtl bool, width int) (bool, int, error) {
	if width < 0 {
		return false, 0, fmt.Errorf("--width must not be negative, got %d", width)
	}
	if cmd.Flags().Changed("rtl") {
		cfg.Bar.RTL = rtl
	}
	if width > 0 {
		cfg.Bar.Width = width
	}
	return cfg.Bar.RTL, cfg.Bar.Width, nil
}

// widthQuery sizes dynamic bars to w when it is a terminal.
func widthQuery(w io.Writer) loadingbar.WidthFunc {
	if f, ok := w.(*os.File); ok {
		return loadingbar.FileWidth(f)
	}
	return loadingbar.NoTerminal
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
