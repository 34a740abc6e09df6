package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yarlson/loadingbar/internal/runner"
)

func newDemoCmd() *cobra.Command {
	var steps int
	var interval time.Duration
	var rtl bool
	var width int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Animate a bar from empty to complete",
		Long:  "Redraw one bar in place until it is complete. Interrupt with Ctrl-C to stop early.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, steps, interval, rtl, width)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "s", 0, "number of steps (0 uses config default)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "delay between frames (default from config)")
	cmd.Flags().BoolVar(&rtl, "rtl", false, "render right-to-left (default from config)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "fixed bar width (0 uses config, then the terminal)")

	return cmd
}

func runDemo(cmd *cobra.Command, steps int, interval time.Duration, rtl bool, width int) error {
	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	rtl, width, err = barFlags(cmd, cfg, rtl, width)
	if err != nil {
		return err
	}
	if steps > 0 {
		cfg.Demo.Steps = steps
	}
	if cmd.Flags().Changed("interval") {
		cfg.Demo.Interval = interval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	if !runner.IsTerminal(stdout) {
		log.Warn("stdout is not a terminal, frames will not redraw in place")
	}

	opts := runner.Options{
		Steps:    cfg.Demo.Steps,
		Interval: cfg.Demo.Interval,
		RTL:      rtl,
		Width:    width,
		Query:    widthQuery(stdout),
		Log:      log,
	}

	result, err := runner.Run(cmd.Context(), opts, stdout, cmd.ErrOrStderr())
	if err != nil && !runner.IsInterrupt(err) {
		return err
	}

	log.WithFields(logrus.Fields{
		"frames":      result.Frames,
		"interrupted": result.Interrupted,
	}).Info("animation finished")

	return nil
}
