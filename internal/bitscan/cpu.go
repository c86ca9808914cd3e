package bitscan

import "golang.org/x/sys/cpu"

// wideWordHost reports whether the host exposes the same vector
// extensions the teacher's internal/simd gated its fast path on
// (cpu.X86.HasAVX2 in scan_amd64.go). This package has no hand-written
// SIMD path of its own (see DESIGN.md); the probe is used only to pick
// scanChunk's output-slice capacity hint.
func wideWordHost() bool {
	return cpu.X86.HasAVX2
}

// reserveHint returns the initial capacity for a chunk's record slice.
// A wide-word-friendly host gets the full avgLineLen estimate; otherwise
// the hint is halved so a narrow host doesn't over-allocate ahead of a
// slower scan.
func reserveHint(chunkLen int) int {
	if wideWordHost() {
		return chunkLen/avgLineLen + 1
	}
	return chunkLen/(avgLineLen*2) + 1
}
