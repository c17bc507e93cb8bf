// Package viz renders a live scene in the terminal with Bubble Tea.
//
//   - [Model]: reads snapshots from a [loop.Driver] and forwards key presses
//     to its mass and speed sources
//   - [Canvas]: Braille-based pixel canvas, also used for SVG export
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	R         - Restart with the typed masses
//	Left/Right - Speed down/up
//	Tab       - Switch between the mass A and mass B fields
//	0-9 . ⌫   - Edit the active mass field
//	T         - Cycle color themes
//	Q         - Quit
package viz
