// Package audio provides audio generation utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - pcm: PCM (Pulse Code Modulation) sample layout and chunks
//   - tone: sine tone synthesis into PCM sample buffers
//   - wav: canonical 44-byte WAVE header encoding and parsing
//
// Example usage:
//
//	import (
//	    "github.com/haivivi/tonegen/pkg/audio/tone"
//	    "github.com/haivivi/tonegen/pkg/audio/wav"
//	)
//
//	spec := tone.Spec{Format: pcm.L16Stereo44K, Frequency: 220, Offset: 2}
//	samples, err := tone.Synthesize(30, spec)
//	header := wav.EncodeHeader(spec.Format, uint32(len(samples)))
package audio
