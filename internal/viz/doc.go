// Package viz renders simulations for people rather than for files.
//
// The live view is a Bubble Tea program: the loop driver runs on its own
// goroutine and sends every drawn frame to the program as a [FrameMsg]. The
// program shows the frame verbatim above a status bar with the step count,
// a progress bar and a height history drawn with asciigraph.
//
// # Key Bindings
//
//	Q, Ctrl+C - Stop the run and quit
//	T         - Cycle status bar themes
//
// [Canvas] is a Braille dot canvas used for trajectory plots.
package viz
