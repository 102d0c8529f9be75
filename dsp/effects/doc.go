// Package effects provides the one-shot time-domain effects applied by an
// effect chain.
//
// Every effect implements Effect: it reads a whole input buffer and overwrites
// a whole output buffer of the same length. Two kernels are provided:
//   - Reverb: two circular feedback taps spaced by the room size.
//   - Delay: one circular feedback tap at the delay time.
//
// Delay-line state is rebuilt from zero on every Apply; nothing carries over
// between calls. The mix coefficient is stored on every effect and only blends
// dry and wet signal when the effect is built with WithDryWet.
package effects
