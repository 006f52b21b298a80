// Package pcm provides types and utilities for working with PCM (Pulse Code Modulation) audio data.
//
// The package describes the sample layout of an interleaved PCM stream
// (sample rate, channel count, bit depth) and provides a chunk type that
// carries raw sample bytes together with their layout.
//
// Key types:
//   - Format: sample rate, channels and bit depth; validated with Validate
//   - Chunk: Interface for audio data chunks
//   - DataChunk: Concrete implementation of Chunk for raw audio data
//
// Only 8-bit unsigned and 16-bit signed little-endian samples are
// supported, in mono or stereo.
//
// Example usage:
//
//	// 16-bit stereo at 44.1kHz
//	format := pcm.L16Stereo44K
//
//	// Bytes needed for 3 seconds of audio
//	n := format.BytesInSeconds(3)
//
//	// Create a data chunk
//	chunk := format.DataChunk(audioData)
package pcm
