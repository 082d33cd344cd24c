package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/gds/mask"
)

func newConvertCmd(f *maskFlags) *cobra.Command {
	var (
		layers []int
		name   string
	)
	cmd := &cobra.Command{
		Use:   "convert <wafer.gds> <reticle.gds>",
		Short: "Scale a wafer-scale design into a 5x quadrant reticle",
		Long: `convert scales the single top-level cell of a wafer-scale design by the
reticle factor and moves each of its four layers into a quadrant:

  --layers a,b,c,d   a -> upper right, b -> lower right,
                     c -> lower left,  d -> upper left

Every element must sit on one of the four layers.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(layers) != 4 {
				return fmt.Errorf("--layers needs four layer numbers, got %d", len(layers))
			}
			l, err := readLayout(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = l.Name()
			}
			src := mask.New(name, mask.WithPrecision(l.Precision()))
			if err := src.Import(l); err != nil {
				return err
			}
			opts, err := f.options()
			if err != nil {
				return err
			}
			out, err := mask.NewQuadrantMask(name, opts...).
				ConvertWaferScaleMask(src, mask.DefaultLayers(layers[0], layers[1], layers[2], layers[3]))
			if err != nil {
				return err
			}
			return writeOutput(args[1], out)
		},
	}
	cmd.Flags().IntSliceVar(&layers, "layers", []int{1, 2, 3, 4}, "source layers for upper right, lower right, lower left, upper left")
	cmd.Flags().StringVar(&name, "name", "", "reticle name (default: source library name)")
	return cmd
}
