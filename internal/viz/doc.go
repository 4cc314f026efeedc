// Package viz draws simulations in the terminal.
//
//   - [Canvas]: braille pixel canvas, 2x4 sub-pixels per cell
//   - [Projection]: maps world coordinates to canvas sub-pixels
//   - [Live]: Bubble Tea model stepping a simulator in real time
//   - [Picker]: scenario menu opening a [Live] view
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Restart from t = 0
//	+/-   - Simulation speed
//	z/Z   - Zoom
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
