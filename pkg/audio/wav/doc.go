// Package wav encodes and parses the canonical 44-byte WAVE header for
// uncompressed PCM audio.
//
// The header consists of the RIFF chunk descriptor, a 16-byte "fmt "
// sub-chunk and the "data" sub-chunk descriptor:
//
//	offset size field
//	0      4    "RIFF"
//	4      4    chunk size (36 + data length)
//	8      4    "WAVE"
//	12     4    "fmt "
//	16     4    16
//	20     2    1 (PCM)
//	22     2    channels
//	24     4    sample rate
//	28     4    byte rate
//	32     2    block align
//	34     2    bits per sample
//	36     4    "data"
//	40     4    data length
//
// All integers are little-endian. WithNativeRIFFSize writes the chunk
// size field in host byte order instead, for byte-for-byte compatibility
// with tools that did so.
//
// EncodeHeader performs no validation; callers validate the pcm.Format
// before synthesizing samples.
package wav
