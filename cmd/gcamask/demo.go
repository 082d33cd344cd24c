package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gogpu/gds/export/backends/raster"
	"github.com/gogpu/gds/internal/superlattice"
)

func newDemoCmd(f *maskFlags) *cobra.Command {
	var (
		outDir  string
		preview bool
	)
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build the superlattice reticle and its wafer-scale EBL mask",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options()
			if err != nil {
				return err
			}
			d, err := superlattice.Build(opts...)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			reticle := filepath.Join(outDir, d.Reticle.Name()+".gds")
			if err := d.Reticle.Save(reticle); err != nil {
				return err
			}
			wafer := filepath.Join(outDir, d.Wafer.Name()+".gds")
			if err := d.Wafer.Save(wafer); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reticle)
			fmt.Fprintln(cmd.OutOrStdout(), wafer)

			if preview {
				png := filepath.Join(outDir, d.Reticle.Name()+".png")
				if err := renderPreview(d.Reticle.Top(), "raster", png, raster.WithWidth(2048)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), png)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", ".", "directory for the generated GDS files")
	cmd.Flags().BoolVar(&preview, "preview", false, "also render a PNG of the reticle")
	return cmd
}
