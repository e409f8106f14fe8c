package rlad

// writer.go provides the stream-writing counterpart to Reader. §6 names
// ByteSink and a future writer only by interface; this file supplies a
// concrete implementation against that interface so the CLI (and tests)
// can round-trip a full stream without a second, independent format.

// Writer encodes a full RLAD stream to a ByteSink, one block at a time. It
// is not safe for concurrent use.
type Writer struct {
	sink   ByteSink
	opts   Options
	codec  *Codec

	headerBuf  []byte
	payloadBuf []byte
}

// NewWriter writes the 16-byte RLAD stream header to sink and returns a
// Writer ready to accept blocks. blockCount and lastBlockFrames must be
// known up front (RLAD's header is not patchable after the fact without a
// seekable sink).
func NewWriter(sink ByteSink, opts Options, sampleRate uint32, blockCount uint32, lastBlockFrames int) (*Writer, error) {
	header := StreamHeader{
		Mode:            opts.Mode,
		Channels:        opts.Channels,
		LastBlockFrames: lastBlockFrames,
		SampleRate:      sampleRate,
		BlockCount:      blockCount,
	}
	buf := make([]byte, streamHeaderSize)
	header.WriteTo(buf)
	if err := writeFull(sink, buf); err != nil {
		return nil, err
	}

	channelCount := int(opts.Channels)
	return &Writer{
		sink:       sink,
		opts:       opts,
		codec:      NewCodec(opts),
		headerBuf:  make([]byte, 2+channelCount+channelCount*MaxRunCount),
		payloadBuf: make([]byte, FramesPerBlock*channelCount*2),
	}, nil
}

// WriteBlock encodes exactly FramesPerBlock frames of interleaved samples
// (pad the final block's unused tail with any value; it is undefined on
// decode per §3) and writes the block header and payload to the sink.
func (w *Writer) WriteBlock(samples []int16, isLastBlock bool) error {
	n, err := w.codec.Encode(samples, isLastBlock, w.payloadBuf)
	if err != nil {
		return err
	}

	channelCount := int(w.opts.Channels)
	headerLen := w.codec.Header().WriteTo(channelCount, w.headerBuf)
	if err := writeFull(w.sink, w.headerBuf[:headerLen]); err != nil {
		return err
	}
	return writeFull(w.sink, w.payloadBuf[:n])
}

func writeFull(sink ByteSink, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := sink.Write(buf[total:])
		total += n
		if err != nil {
			return err
		}
		if n == 0 {
			return &IncompleteDataError{Op: "stream write", Missing: len(buf) - total}
		}
	}
	return nil
}

// EncodeFile is a convenience wrapper that encodes an entire in-memory
// sample buffer (interleaved PCM, channels known) to sink as a complete
// RLAD stream, splitting it into FramesPerBlock-sized blocks and padding
// the final block as needed.
func EncodeFile(sink ByteSink, samples []int16, sampleRate uint32, channels AudioChannels, mode Mode) error {
	channelCount := int(channels)
	if channelCount == 0 || !channels.Valid() {
		return &ArgumentOutOfRangeError{Arg: "channels", Value: channelCount, Max: MaxChannels}
	}
	if len(samples)%channelCount != 0 {
		return &IncompleteFrameError{Op: "RLAD encode", Channels: channelCount, Remainder: len(samples) % channelCount}
	}

	totalFrames := len(samples) / channelCount
	if totalFrames == 0 {
		return &InvalidOperationError{Msg: "RLAD encoding must have at least one frame"}
	}

	blockCount := uint32((totalFrames + FramesPerBlock - 1) / FramesPerBlock)
	lastBlockFrames := totalFrames - int(blockCount-1)*FramesPerBlock

	w, err := NewWriter(sink, Options{Mode: mode, Channels: channels}, sampleRate, blockCount, lastBlockFrames)
	if err != nil {
		return err
	}

	block := make([]int16, FramesPerBlock*channelCount)
	for b := uint32(0); b < blockCount; b++ {
		start := int(b) * FramesPerBlock * channelCount
		end := start + FramesPerBlock*channelCount
		if end > len(samples) {
			for i := range block {
				block[i] = 0
			}
			copy(block, samples[start:])
		} else {
			copy(block, samples[start:end])
		}

		if err := w.WriteBlock(block, b == blockCount-1); err != nil {
			return err
		}
	}
	return nil
}
