package rlad

// blockcodec.go implements §4.4: end-to-end encode/decode of one 512-frame
// block.

// Codec encodes and decodes single RLAD blocks for a fixed mode and
// channel layout. A Codec is not safe for concurrent use: Encode and
// SetHeader overwrite the Codec's BlockHeader, which Decode reads.
type Codec struct {
	opts   Options
	header BlockHeader
}

// NewCodec constructs a Codec for the given options.
func NewCodec(opts Options) *Codec {
	return &Codec{opts: opts}
}

// Mode returns the codec's coding mode.
func (c *Codec) Mode() Mode { return c.opts.Mode }

// Channels returns the codec's channel layout.
func (c *Codec) Channels() AudioChannels { return c.opts.Channels }

// Header returns the BlockHeader produced by the most recent Encode call,
// or the header most recently set via SetHeader for Decode.
func (c *Codec) Header() *BlockHeader { return &c.header }

// SetHeader installs the header Decode should use. Callers parse a
// BlockHeader off the stream (ReadBlockHeader) and hand it to the codec
// before calling Decode.
func (c *Codec) SetHeader(h *BlockHeader) { c.header = *h }

// Encode encodes exactly FramesPerBlock frames of interleaved samples into
// dst, which must be at least the worst-case payload size
// (FramesPerBlock*channelCount*2 bytes is always sufficient). It returns
// the number of payload bytes written. The resulting BlockHeader is
// available via Header() immediately afterward; isLastBlock is recorded on
// it as given.
func (c *Codec) Encode(samples []int16, isLastBlock bool, dst []byte) (int, error) {
	channelCount := int(c.opts.Channels)
	if len(samples) != FramesPerBlock*channelCount {
		return 0, &InvalidOperationError{Msg: "RLAD encoding must operate on exactly 512 frames"}
	}

	working := make([]int16, len(samples))
	copy(working, samples)
	if c.opts.Mode == Lossy {
		ShiftRightLossy(working)
	}

	var header BlockHeader
	cursor := 0

	for ch := 0; ch < channelCount; ch++ {
		var channelSamples [FramesPerBlock]int16
		for f := 0; f < FramesPerBlock; f++ {
			channelSamples[f] = working[f*channelCount+ch]
		}

		deltas := channelDeltas(&channelSamples)
		tiers, fits := classifyChunks(&deltas, c.opts.Mode)
		if !fits {
			return 0, &InvalidOperationError{Msg: "RLAD encoding: delta exceeds representable range in lossy mode"}
		}
		runs := compressRuns(&tiers)
		header.setChannelRuns(ch, runs)

		chunkIdx := 0
		for _, run := range runs {
			bps := run.Tier().bps(c.opts.Mode)
			for k := 0; k < run.Count(); k++ {
				var chunk [ChunkLen]int16
				copy(chunk[:], deltas[chunkIdx*ChunkLen:(chunkIdx+1)*ChunkLen])
				cursor += PackChunk(bps, &chunk, dst[cursor:])
				chunkIdx++
			}
		}
	}

	header.DataSize = cursor
	header.IsLastBlock = isLastBlock
	c.header = header
	return cursor, nil
}

// Decode decodes one block's payload (src, exactly c.Header().DataSize
// bytes or more) into dst, which must hold FramesPerBlock*channelCount
// samples. The codec's header (set via SetHeader, or left over from a
// prior Encode) drives the run layout. Decode requires a header to have
// been set.
func (c *Codec) Decode(src []byte, dst []int16) error {
	channelCount := int(c.opts.Channels)
	if len(dst) != FramesPerBlock*channelCount {
		return &InvalidOperationError{Msg: "RLAD decoding must operate on exactly 512 frames"}
	}
	if c.header.DataSize == 0 && allRunCountsZero(&c.header) {
		return &InvalidOperationError{Msg: "No block header set on codec"}
	}
	if len(src) < c.header.DataSize {
		return &IncompleteDataError{Op: "RLAD data decode", Missing: c.header.DataSize - len(src)}
	}

	cursor := 0
	for ch := 0; ch < channelCount; ch++ {
		var sum int16
		chunkIdx := 0
		for _, run := range c.header.channelRuns(ch) {
			bps := run.Tier().bps(c.opts.Mode)
			for k := 0; k < run.Count(); k++ {
				var chunk [ChunkLen]int16
				UnpackChunk(bps, src[cursor:], &chunk)
				cursor += packedLen(bps)

				for j, delta := range chunk {
					sum += delta
					frame := chunkIdx*ChunkLen + j
					dst[frame*channelCount+ch] = sum
				}
				chunkIdx++
			}
		}
	}

	if c.opts.Mode == Lossy {
		ShiftLeftLossy(dst)
	}
	return nil
}

// DecodeFloat behaves like Decode, additionally converting the result to
// normalized float32 samples in dst.
func (c *Codec) DecodeFloat(src []byte, dst []float32) error {
	channelCount := int(c.opts.Channels)
	shortBuf := make([]int16, FramesPerBlock*channelCount)
	if err := c.Decode(src, shortBuf); err != nil {
		return err
	}
	ConvertShortToFloat(shortBuf, dst)
	return nil
}

func allRunCountsZero(h *BlockHeader) bool {
	for _, n := range h.RunCount {
		if n != 0 {
			return false
		}
	}
	return true
}
