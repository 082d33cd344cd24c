package export

import "github.com/gogpu/gg"

// palette cycles through distinguishable layer colours.
var palette = []gg.RGBA{
	gg.Hex("#1f77b4"),
	gg.Hex("#d62728"),
	gg.Hex("#2ca02c"),
	gg.Hex("#ff7f0e"),
	gg.Hex("#9467bd"),
	gg.Hex("#8c564b"),
	gg.Hex("#e377c2"),
	gg.Hex("#7f7f7f"),
	gg.Hex("#bcbd22"),
	gg.Hex("#17becf"),
}

// LayerColor returns the preview colour of layer.
func LayerColor(layer int) gg.RGBA {
	i := layer % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}
