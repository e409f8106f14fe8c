package rlad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDeltas(t *testing.T) {
	testCases := []struct {
		name     string
		deltas   [ChunkLen]int16
		mode     Mode
		wantTier Tier
		wantOK   bool
	}{
		{"all zero fits tiny", [ChunkLen]int16{0, 0, 0, 0, 0, 0, 0, 0}, Lossless, Tiny, true},
		{"tiny boundary", [ChunkLen]int16{-8, 7, 0, 0, 0, 0, 0, 0}, Lossless, Tiny, true},
		{"just over tiny needs small", [ChunkLen]int16{-9, 0, 0, 0, 0, 0, 0, 0}, Lossless, Small, true},
		{"needs medium", [ChunkLen]int16{2000, 0, 0, 0, 0, 0, 0, 0}, Lossless, Medium, true},
		{"needs full", [ChunkLen]int16{30000, 0, 0, 0, 0, 0, 0, 0}, Lossless, Full, true},
		{"lossy tiny boundary", [ChunkLen]int16{-2, 1, 0, 0, 0, 0, 0, 0}, Lossy, Tiny, true},
		{"lossy overflow full", [ChunkLen]int16{-2049, 0, 0, 0, 0, 0, 0, 0}, Lossy, Full, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tier, ok := classifyDeltas(&tc.deltas, tc.mode)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantTier, tier)
		})
	}
}

func TestChannelDeltas(t *testing.T) {
	var samples [FramesPerBlock]int16
	samples[0] = 10
	samples[1] = 15
	samples[2] = 5
	samples[3] = 5

	deltas := channelDeltas(&samples)
	assert.Equal(t, int16(10), deltas[0]) // seed is 0
	assert.Equal(t, int16(5), deltas[1])
	assert.Equal(t, int16(-10), deltas[2])
	assert.Equal(t, int16(0), deltas[3])
}

func TestCompressRunsQuarters(t *testing.T) {
	var tiers [ChunksPerBlock]Tier
	for i := 0; i < 16; i++ {
		tiers[i] = Tiny
	}
	for i := 16; i < 32; i++ {
		tiers[i] = Small
	}
	for i := 32; i < 48; i++ {
		tiers[i] = Medium
	}
	for i := 48; i < 64; i++ {
		tiers[i] = Full
	}

	runs := compressRuns(&tiers)
	assert.Len(t, runs, 4)
	assert.Equal(t, Tiny, runs[0].Tier())
	assert.Equal(t, 16, runs[0].Count())
	assert.Equal(t, Small, runs[1].Tier())
	assert.Equal(t, Medium, runs[2].Tier())
	assert.Equal(t, Full, runs[3].Tier())

	total := 0
	for _, r := range runs {
		total += r.Count()
	}
	assert.Equal(t, ChunksPerBlock, total)
}

func TestCompressRunsAllDifferent(t *testing.T) {
	var tiers [ChunksPerBlock]Tier
	for i := range tiers {
		tiers[i] = Tier(i % 4)
	}

	runs := compressRuns(&tiers)
	assert.Len(t, runs, ChunksPerBlock)
	for _, r := range runs {
		assert.Equal(t, 1, r.Count())
	}
}

func TestCompressRunsSingleRun(t *testing.T) {
	var tiers [ChunksPerBlock]Tier
	for i := range tiers {
		tiers[i] = Medium
	}

	runs := compressRuns(&tiers)
	assert.Len(t, runs, 1)
	assert.Equal(t, ChunksPerBlock, runs[0].Count())
	assert.Equal(t, Medium, runs[0].Tier())
}

func TestClassifyChunksOverflow(t *testing.T) {
	var deltas [FramesPerBlock]int16
	deltas[0] = -3000

	_, ok := classifyChunks(&deltas, Lossy)
	assert.False(t, ok)

	_, ok = classifyChunks(&deltas, Lossless)
	assert.True(t, ok)
}
