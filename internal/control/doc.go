// Package control provides the user-facing inputs that feed a running scene:
//
//   - [MassSource]: the two block masses, read every tick
//   - [SpeedSource]: the speed multiplier, read every tick
//   - [RestartTrigger]: a request to start over with the current masses
//
// [TextMass] and [Slider] are the terminal renditions. [TextMass] turns
// unparsable text into 0, which the simulation then rejects rather than
// clamping, so malformed input never produces silently wrong physics.
//
//	speed := control.NewSlider(0.1, 5.0, 1.0)
//	speed.Nudge(+1)
//	driver.Step(speed.Speed())
package control
