package main

import (
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/gds"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <in.gds>",
		Short: "List the cells of a GDS file and count elements per layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(args[0])
			if err != nil {
				return err
			}
			p := message.NewPrinter(language.English)
			w := cmd.OutOrStdout()

			cells, err := l.AllCells()
			if err != nil {
				return err
			}
			top, err := l.TopLevel()
			if err != nil {
				return err
			}
			p.Fprintf(w, "library %s\n", l.Name())
			p.Fprintf(w, "unit %g m, precision %g m\n", l.Unit(), l.Precision())
			p.Fprintf(w, "%d cells, %d top-level\n", len(cells), len(top))

			for _, c := range top {
				counts := make(map[int]int)
				total := 0
				if err := c.Walk(func(e gds.Element) {
					counts[e.Layer()]++
					total++
				}); err != nil {
					return err
				}
				b, err := c.Bounds()
				if err != nil {
					return err
				}
				p.Fprintf(w, "top %s: %d elements, %.3f x %.3f\n", c.Name(), total, b.Width(), b.Height())

				layers := make([]int, 0, len(counts))
				for layer := range counts {
					layers = append(layers, layer)
				}
				sort.Ints(layers)
				for _, layer := range layers {
					p.Fprintf(w, "  layer %d: %d\n", layer, counts[layer])
				}
			}
			return nil
		},
	}
}
