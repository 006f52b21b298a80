// Package tone synthesizes pure sine tones into interleaved PCM sample
// buffers.
//
// A Spec pairs a pcm.Format with a base frequency and a channel offset.
// In stereo, the right channel is rendered at Frequency+Offset using the
// same time index as the left channel, which produces a constant-offset
// beating effect rather than independent stereo phase.
//
// Synthesis is a pure function of (seconds, Spec): no randomness, no I/O.
// The format is validated before the buffer is allocated, so an
// unsupported bit depth never yields a partially filled buffer.
package tone
