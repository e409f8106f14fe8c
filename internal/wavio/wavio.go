// Package wavio is the thin WAVE/RIFF collaborator the RLAD codec spec
// names but deliberately does not implement itself (spec.md §1: "the
// WAVE/RIFF reader... is out of scope... a straightforward header parse
// followed by a memcpy/convert loop; it contributes nothing algorithmic").
// It adapts between WAV files and the interleaved int16 PCM shape
// pkg/rlad's Codec and Reader operate on.
package wavio

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadPCM decodes r as a WAV file and returns its audio interleaved as
// signed 16-bit PCM, along with the sample rate and channel count.
func ReadPCM(r io.ReadSeeker) (samples []int16, sampleRate int, channels int, err error) {
	decoder := wav.NewDecoder(r)
	if err := decoder.FwdToPCM(); err != nil {
		return nil, 0, 0, err
	}
	if decoder.BitDepth < 16 {
		return nil, 0, 0, &UnsupportedBitDepthError{BitDepth: int(decoder.BitDepth)}
	}

	format := decoder.Format()
	buf := &audio.IntBuffer{Data: make([]int, 4096), Format: format}

	for {
		n, err := decoder.PCMBuffer(buf)
		if err != nil {
			return nil, 0, 0, err
		}
		if n == 0 {
			break
		}
		for i := 0; i < n; i++ {
			samples = append(samples, int16(buf.Data[i]>>(decoder.BitDepth-16)))
		}
	}

	return samples, format.SampleRate, format.NumChannels, nil
}

// WritePCM encodes interleaved signed 16-bit PCM as a WAV file to w.
func WritePCM(w io.WriteSeeker, samples []int16, sampleRate, channels int) error {
	encoder := wav.NewEncoder(w, sampleRate, 16, channels, 1)

	intData := make([]int, len(samples))
	for i, s := range samples {
		intData[i] = int(s)
	}

	buf := &audio.IntBuffer{
		Data:           intData,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		SourceBitDepth: 16,
	}
	if err := encoder.Write(buf); err != nil {
		return err
	}
	return encoder.Close()
}

// UnsupportedBitDepthError is returned when a WAV file's bit depth is too
// low to carry RLAD's 16-bit samples without loss.
type UnsupportedBitDepthError struct {
	BitDepth int
}

func (e *UnsupportedBitDepthError) Error() string {
	return fmt.Sprintf("wavio: bit depth too low to encode to RLAD (%d < 16)", e.BitDepth)
}
