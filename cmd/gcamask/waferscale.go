package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/gds/mask"
)

func newWaferScaleCmd(f *maskFlags) *cobra.Command {
	var (
		precision float64
		factor    float64
	)
	cmd := &cobra.Command{
		Use:   "waferscale <reticle.gds> <overlay.gds>",
		Short: "Overlay the quadrants of a reticle at wafer scale",
		Long: `waferscale reads a quadrant reticle, shrinks each quadrant by the
reticle factor and overlays all four, so that layer registration can be
checked or the result edited for EBL.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(args[0])
			if err != nil {
				return err
			}
			opts, err := f.options()
			if err != nil {
				return err
			}
			q, err := mask.OpenQuadrantMask(l, append(opts, mask.WithReticleFactor(factor))...)
			if err != nil {
				return err
			}
			ws, err := q.MakeWaferScaleGDS(precision)
			if err != nil {
				return err
			}
			return writeOutput(args[1], ws)
		},
	}
	cmd.Flags().Float64Var(&precision, "precision", mask.WaferScalePrecision, "database unit of the output in metres")
	cmd.Flags().Float64Var(&factor, "factor", mask.ReticleFactor, "reticle reduction factor")
	return cmd
}
