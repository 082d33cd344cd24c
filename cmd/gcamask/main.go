// Command gcamask builds GCA200 stepper reticles and converts between
// reticle and wafer scale.
//
// Usage:
//
//	gcamask demo --out-dir masks
//	gcamask convert --layers 1,2,3,4 wafer.gds reticle.gds
//	gcamask waferscale reticle.gds overlay.gds
//	gcamask preview reticle.gds reticle.png
//	gcamask info reticle.gds
//
// Input and output paths may be "-" to read from or write to a pipe.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
