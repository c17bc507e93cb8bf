// Package analysis explains collision counts rather than producing them.
//
//   - [PredictCollisions]: closed-form count for a mass pair
//   - [PiDigits]: the leading digits of pi the count should spell
//   - [Sweep]: simulate mass ratios 100^k concurrently and compare
//   - [NewPhasePortrait]: velocities rescaled by sqrt(mass), where every
//     state of equal energy lies on one circle
//
// # Why pi
//
// In phase coordinates (sqrt(mA)*vA, sqrt(mB)*vB) each block-block collision
// reflects the state across a line and each wall bounce across an axis. Two
// reflections rotate by 2*atan(sqrt(mA/mB)), and collisions stop once the
// accumulated angle reaches pi:
//
//	n, _ := analysis.PredictCollisions(1, 10000) // 314
package analysis
