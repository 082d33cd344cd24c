package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/gds"
	"github.com/gogpu/gds/mask"
)

// maskFlags are shared by the commands that build reticles.
type maskFlags struct {
	verbose     bool
	template    string
	globalMarks string
	localMarks  string
}

func newRootCmd() *cobra.Command {
	var f maskFlags
	root := &cobra.Command{
		Use:   "gcamask",
		Short: "Build GCA200 quadrant reticles and wafer-scale masks",
		Long: `gcamask composes photolithography masks for the GCA200 stepper.

A quadrant reticle holds one process layer per quadrant at 5x scale.
convert builds one from a wafer-scale design, waferscale overlays the
quadrants of a reticle back at 1x for registration checks.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if f.verbose {
				level = slog.LevelDebug
			}
			gds.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output")
	pf.StringVar(&f.template, "template", "", "reticle template GDS merged into every reticle")
	pf.StringVar(&f.globalMarks, "global-marks", "", "GDS file with the global alignment mark in cell TOP")
	pf.StringVar(&f.localMarks, "local-marks", "", "GDS file with the local alignment mark in cell DFAS_SOLID_POS")

	root.AddCommand(
		newDemoCmd(&f),
		newConvertCmd(&f),
		newWaferScaleCmd(&f),
		newPreviewCmd(),
		newInfoCmd(),
	)
	return root
}

// options turns the shared flags into mask options.
func (f *maskFlags) options() ([]mask.Option, error) {
	var opts []mask.Option
	if f.template != "" {
		t, err := gds.ReadFile(f.template)
		if err != nil {
			return nil, err
		}
		opts = append(opts, mask.WithTemplate(t))
	}
	if f.globalMarks != "" || f.localMarks != "" {
		opts = append(opts, mask.WithMarks(mask.FileMarks{Global: f.globalMarks, Local: f.localMarks}))
	}
	return opts, nil
}
