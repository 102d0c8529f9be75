// Package buffer provides the mono sample buffer passed between effects and a
// pool for reusing buffer storage.
//
// A Buffer is initialized exactly once with a (size, sampleRate) pair and
// released exactly once by its owner. Its length never changes in between.
// Contract violations (double init, double release, out-of-range access through
// the checked accessors) are reported as errors. Kernels that need raw speed use
// Samples() and rely on Go's bounds checks.
package buffer
