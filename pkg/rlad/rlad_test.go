package rlad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudioChannelsValid(t *testing.T) {
	testCases := []struct {
		name  string
		c     AudioChannels
		valid bool
	}{
		{"mono", Mono, true},
		{"stereo", Stereo, true},
		{"quad", Quadraphonic, true},
		{"5.1", FiveOne, true},
		{"7.1", SevenOne, true},
		{"zero", AudioChannels(0), false},
		{"three", AudioChannels(3), false},
		{"nine", AudioChannels(9), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.c.Valid())
		})
	}
}

func TestAudioChannelsString(t *testing.T) {
	assert.Equal(t, "stereo", Stereo.String())
	assert.Equal(t, "AudioChannels(3)", AudioChannels(3).String())
}

func TestTierBps(t *testing.T) {
	testCases := []struct {
		tier         Tier
		losslessBps  int
		lossyBps     int
	}{
		{Tiny, 4, 2},
		{Small, 8, 4},
		{Medium, 12, 8},
		{Full, 16, 12},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.losslessBps, tc.tier.bps(Lossless))
		assert.Equal(t, tc.lossyBps, tc.tier.bps(Lossy))
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "lossless", Lossless.String())
	assert.Equal(t, "lossy", Lossy.String())
}

func TestBlockConstants(t *testing.T) {
	assert.Equal(t, 64, ChunksPerBlock)
	assert.Equal(t, 64, MaxRunCount)
	assert.Equal(t, 512, FramesPerBlock)
}
