package cmd

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yarlson/loadingbar"
)

func newRenderCmd() *cobra.Command {
	var rtl bool
	var width int

	cmd := &cobra.Command{
		Use:   "render <progress>",
		Short: "Render a single bar",
		Long:  "Print one bar for a progress value between 0 and 1, followed by a newline.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], rtl, width)
		},
	}

	cmd.Flags().BoolVar(&rtl, "rtl", false, "render right-to-left (default from config)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "fixed bar width (0 uses config, then the terminal)")

	return cmd
}

func runRender(cmd *cobra.Command, arg string, rtl bool, width int) error {
	progress, err := strconv.ParseFloat(arg, 32)
	if err != nil {
		return fmt.Errorf("invalid progress %q: %w", arg, err)
	}

	cfg, log, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	rtl, width, err = barFlags(cmd, cfg, rtl, width)
	if err != nil {
		return err
	}

	bar := loadingbar.New(float32(progress), rtl, width)
	log.WithFields(logrus.Fields{
		"progress": bar.Progress,
		"rtl":      bar.RTL,
		"width":    bar.Width,
	}).Debug("rendering bar")

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), bar.Render(widthQuery(cmd.OutOrStdout())))

	return nil
}
