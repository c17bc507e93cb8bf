// Package physics provides the one-dimensional collision primitives of the
// block scene: two square blocks on a frictionless floor and a rigid wall on
// the right.
//
//   - [Body]: mass, velocity, left-edge position and width of one block
//   - [Wall]: an immovable boundary treated as unbounded mass
//   - [ResolveBodyBody]: perfectly elastic block-block velocities
//   - [ResolveBodyWall]: sign reflection off the wall
//
// Invalid masses and widths are rejected with errors wrapping
// [ErrInvalidConfiguration]:
//
//	b, err := physics.NewBody(0, 0, 500, 50)
//	if errors.Is(err, physics.ErrInvalidConfiguration) {
//	    // reject the input
//	}
package physics
