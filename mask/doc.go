// Package mask composes GCA200 stepper reticles.
//
// A [QuadrantMask] is a reticle with four addressable quadrant cells
// (upper_left, upper_right, lower_right, lower_left), each holding one
// lithography layer of a process at 5x reticle scale. The package
// converts in both directions between such a reticle and a wafer-scale
// design:
//
//   - [QuadrantMask.ConvertWaferScaleMask] scales a 1x design by the
//     reticle factor and routes each layer into its quadrant.
//   - [QuadrantMask.MakeWaferScaleGDS] flattens the quadrants, shrinks
//     them back to 1x and overlays them so layer registration can be
//     checked by eye.
//
// Alignment keys are placed with [QuadrantMask.AddAlignmentMark], which
// pre-compensates the standard-key offset the stepper accumulates when
// its aperture is not a multiple of the die step.
//
// Masks follow a build-then-save lifecycle: once saved, a mask rejects
// further changes with [ErrPersisted].
package mask
