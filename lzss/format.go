package lzss

// Format constants for the Fallout 1 LZSS variant.
const (
	WindowSize = 4096 // Ring buffer (sliding window) size.
	MinMatch   = 3    // Minimum back-reference length (nibble 0).
	MaxMatch   = 18   // Maximum back-reference length (nibble 15).
	Filler     = 0x20 // Window pre-fill byte (ASCII space).
	FlagBits   = 8    // Tokens governed by one flag byte.

	// windowStart is the initial write cursor, WindowSize - MaxMatch.
	windowStart = WindowSize - MaxMatch
)
