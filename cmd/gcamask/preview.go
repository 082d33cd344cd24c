package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/gds"
	"github.com/gogpu/gds/export"
	"github.com/gogpu/gds/export/backends/raster"
	_ "github.com/gogpu/gds/export/backends/svg"
)

// previewFormat picks the backend from the flag, given as a backend
// or an extension, falling back to the output file extension and then
// to raster.
func previewFormat(format, out string) string {
	if export.IsRegistered(format) {
		return format
	}
	ext := format
	if ext == "" {
		ext = filepath.Ext(out)
	}
	if name, ok := export.ForExtension(ext); ok {
		return name
	}
	if format != "" {
		return format
	}
	return "raster"
}

// previewCell returns the named cell, or the single top-level cell.
func previewCell(l *gds.Layout, name string) (*gds.Cell, error) {
	if name != "" {
		c, ok := l.Cell(name)
		if !ok {
			return nil, fmt.Errorf("no cell %q in %s", name, l.Name())
		}
		return c, nil
	}
	if c, ok := l.Cell("TOP"); ok {
		return c, nil
	}
	top, err := l.TopLevel()
	if err != nil {
		return nil, err
	}
	if len(top) != 1 {
		return nil, fmt.Errorf("%s has %d top-level cells, pick one with --cell", l.Name(), len(top))
	}
	return top[0], nil
}

func renderPreview(c *gds.Cell, format, out string, opts ...raster.Option) error {
	b, err := export.NewBackend(format)
	if err != nil {
		return err
	}
	if rb, ok := b.(*raster.Backend); ok {
		rb.Configure(opts...)
		defer rb.Close()
	}
	if err := export.Render(c, b); err != nil {
		return err
	}
	wb, ok := b.(export.WriterBackend)
	if !ok {
		return fmt.Errorf("backend %q cannot write a stream", format)
	}
	if out != pipeName {
		if fb, ok := b.(export.FileBackend); ok {
			return fb.SaveToFile(out)
		}
	}
	return writeOutput(out, wb)
}

func newPreviewCmd() *cobra.Command {
	var (
		format    string
		cell      string
		width     int
		thumbnail int
	)
	cmd := &cobra.Command{
		Use:   "preview <in.gds> <out>",
		Short: "Render a GDS file to PNG or SVG",
		Long: fmt.Sprintf(`preview flattens a cell and draws it layer by layer.

The format is taken from --format or the output extension.
Available formats: %s.`, strings.Join(export.Backends(), ", ")),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(args[0])
			if err != nil {
				return err
			}
			c, err := previewCell(l, cell)
			if err != nil {
				return err
			}
			return renderPreview(c, previewFormat(format, args[1]), args[1],
				raster.WithWidth(width), raster.WithThumbnail(thumbnail))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (raster, svg)")
	cmd.Flags().StringVar(&cell, "cell", "", "cell to render (default: TOP or the single top-level cell)")
	cmd.Flags().IntVarP(&width, "width", "w", 1024, "raster width in pixels")
	cmd.Flags().IntVar(&thumbnail, "thumbnail", 0, "fit the raster output into a square of this size")
	return cmd
}
