package rlad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeTestSignal(channelCount int) []int16 {
	samples := make([]int16, FramesPerBlock*channelCount)
	for f := 0; f < FramesPerBlock; f++ {
		for c := 0; c < channelCount; c++ {
			v := int16(10000 * sinApprox(f, FramesPerBlock))
			samples[f*channelCount+c] = v + int16(c*37)
		}
	}
	return samples
}

// sinApprox is a cheap, deterministic stand-in for math.Sin so tests don't
// need the math package: a triangle wave scaled to roughly [-1, 1].
func sinApprox(i, period int) float64 {
	phase := float64(i%period) / float64(period)
	if phase < 0.5 {
		return 4*phase - 1
	}
	return 3 - 4*phase
}

func TestCodecEncodeDecodeLosslessRoundTrip(t *testing.T) {
	for _, channels := range []AudioChannels{Mono, Stereo, Quadraphonic} {
		t.Run(channels.String(), func(t *testing.T) {
			samples := makeTestSignal(int(channels))

			enc := NewCodec(Options{Mode: Lossless, Channels: channels})
			dst := make([]byte, FramesPerBlock*int(channels)*2)
			n, err := enc.Encode(samples, true, dst)
			assert.NoError(t, err)
			assert.Greater(t, n, 0)

			dec := NewCodec(Options{Mode: Lossless, Channels: channels})
			dec.SetHeader(enc.Header())
			got := make([]int16, len(samples))
			err = dec.Decode(dst[:n], got)
			assert.NoError(t, err)
			assert.Equal(t, samples, got)
		})
	}
}

func TestCodecEncodeDecodeLossyRoundTrip(t *testing.T) {
	channels := Stereo
	samples := makeTestSignal(int(channels))

	enc := NewCodec(Options{Mode: Lossy, Channels: channels})
	dst := make([]byte, FramesPerBlock*int(channels)*2)
	n, err := enc.Encode(samples, true, dst)
	assert.NoError(t, err)

	dec := NewCodec(Options{Mode: Lossy, Channels: channels})
	dec.SetHeader(enc.Header())
	got := make([]int16, len(samples))
	err = dec.Decode(dst[:n], got)
	assert.NoError(t, err)

	for i, want := range samples {
		assert.Equal(t, (want>>4)<<4, got[i])
	}
}

func TestCodecEncodeWrongFrameCount(t *testing.T) {
	enc := NewCodec(Options{Mode: Lossless, Channels: Stereo})
	dst := make([]byte, FramesPerBlock*2*2)
	_, err := enc.Encode(make([]int16, 10), true, dst)
	assert.Error(t, err)
}

func TestCodecDecodeWithoutHeaderSet(t *testing.T) {
	dec := NewCodec(Options{Mode: Lossless, Channels: Mono})
	dst := make([]int16, FramesPerBlock)
	err := dec.Decode([]byte{}, dst)
	assert.Error(t, err)
}

func TestCodecDecodeTruncatedPayload(t *testing.T) {
	channels := Mono
	samples := makeTestSignal(int(channels))

	enc := NewCodec(Options{Mode: Lossless, Channels: channels})
	dst := make([]byte, FramesPerBlock*int(channels)*2)
	n, err := enc.Encode(samples, true, dst)
	assert.NoError(t, err)

	dec := NewCodec(Options{Mode: Lossless, Channels: channels})
	dec.SetHeader(enc.Header())
	got := make([]int16, len(samples))
	err = dec.Decode(dst[:n-1], got)
	assert.Error(t, err)
}

func TestCodecDataSizeMatchesWireBytes(t *testing.T) {
	channels := Stereo
	samples := makeTestSignal(int(channels))

	enc := NewCodec(Options{Mode: Lossless, Channels: channels})
	dst := make([]byte, FramesPerBlock*int(channels)*2)
	n, err := enc.Encode(samples, false, dst)
	assert.NoError(t, err)
	assert.Equal(t, n, enc.Header().DataSize)
	assert.False(t, enc.Header().IsLastBlock)
}

func TestCodecDecodeFloat(t *testing.T) {
	channels := Mono
	samples := makeTestSignal(int(channels))

	enc := NewCodec(Options{Mode: Lossless, Channels: channels})
	dst := make([]byte, FramesPerBlock*int(channels)*2)
	n, err := enc.Encode(samples, true, dst)
	assert.NoError(t, err)

	dec := NewCodec(Options{Mode: Lossless, Channels: channels})
	dec.SetHeader(enc.Header())
	gotFloat := make([]float32, len(samples))
	err = dec.DecodeFloat(dst[:n], gotFloat)
	assert.NoError(t, err)

	gotShort := make([]int16, len(samples))
	ConvertFloatToShort(gotFloat, gotShort)
	assert.Equal(t, samples, gotShort)
}
