package rlad

// stream.go implements §4.6: the RLAD file header and the buffered,
// block-at-a-time stream reader.

// magic is the 4-byte RLAD file signature, "RLAD" read little-endian as
// the literal 0x44414C52.
const magic = 0x44414C52

const streamHeaderSize = 16

// ByteSource is the sequential, possibly-unseekable byte source the reader
// pulls stream bytes from. Implementations of the actual transport (files,
// sockets, in-memory buffers) live outside this package; this interface is
// the only thing the reader requires of them.
type ByteSource interface {
	Read(buf []byte) (int, error)
}

// ByteSink is the sequential byte sink Writer pushes stream bytes to.
type ByteSink interface {
	Write(buf []byte) (int, error)
}

// StreamHeader is the 16-byte file-level RLAD header described in §3.
type StreamHeader struct {
	Mode            Mode
	Channels        AudioChannels
	LastBlockFrames int
	SampleRate      uint32
	BlockCount      uint32
}

// WriteTo serializes the header into dst, which must be at least
// streamHeaderSize bytes, and returns the number of bytes written.
func (h *StreamHeader) WriteTo(dst []byte) int {
	putUint32LE(dst[0:4], magic)
	if h.Mode == Lossless {
		dst[4] = 0xFF
	} else {
		dst[4] = 0x00
	}
	dst[5] = byte(h.Channels)
	dst[6] = byte(h.LastBlockFrames)
	dst[7] = byte(h.LastBlockFrames >> 8)
	putUint32LE(dst[8:12], h.SampleRate)
	putUint32LE(dst[12:16], h.BlockCount)
	return streamHeaderSize
}

// ReadStreamHeader parses the 16-byte RLAD file header from src.
func ReadStreamHeader(src []byte) (*StreamHeader, error) {
	if len(src) < streamHeaderSize {
		return nil, &IncompleteHeaderError{Field: "RLAD stream header"}
	}
	if uint32LE(src[0:4]) != magic {
		return nil, &BadFormatError{Format: "RLAD", Msg: "missing magic bytes"}
	}

	var mode Mode
	switch src[4] {
	case 0xFF:
		mode = Lossless
	case 0x00:
		mode = Lossy
	default:
		return nil, &BadFormatError{Format: "RLAD", Msg: "invalid lossless flag"}
	}

	channels := AudioChannels(src[5])
	if !channels.Valid() {
		return nil, &BadFormatError{Format: "RLAD", Msg: "invalid channel count in stream header"}
	}

	lastBlockFrames := int(src[6]) | int(src[7])<<8
	if lastBlockFrames < 1 || lastBlockFrames > FramesPerBlock {
		return nil, &BadFormatError{Format: "RLAD", Msg: "invalid last-block frame count"}
	}

	blockCount := uint32LE(src[12:16])
	if blockCount < 1 {
		return nil, &BadFormatError{Format: "RLAD", Msg: "block count must be at least 1"}
	}

	return &StreamHeader{
		Mode:            mode,
		Channels:        channels,
		LastBlockFrames: lastBlockFrames,
		SampleRate:      uint32LE(src[8:12]),
		BlockCount:      blockCount,
	}, nil
}

// FrameCount returns the total number of live frames the stream holds:
// (BlockCount-1)*FramesPerBlock + LastBlockFrames.
func (h *StreamHeader) FrameCount() int64 {
	return int64(h.BlockCount-1)*FramesPerBlock + int64(h.LastBlockFrames)
}

// Reader decodes an RLAD stream block by block, presenting it to callers
// as a flat sequence of frames. It is not safe for concurrent use: it owns
// a scratch decode buffer and an overflow buffer sized for exactly one
// block, and serves partial reads out of the overflow before decoding
// further blocks.
type Reader struct {
	source ByteSource
	header StreamHeader
	codec  *Codec

	blockIndex  uint32
	frameCount  int64
	framesRead  int64

	scratch  []int16 // one decoded block, channel-interleaved
	overflow []int16 // carried-over decoded frames not yet consumed
	ovStart  int     // index of the first live sample in overflow
	ovLen    int     // number of live samples (not frames) in overflow

	headerBuf  []byte
	payloadBuf []byte
}

// Open constructs a Reader over source, parsing the RLAD file header
// immediately.
func Open(source ByteSource) (*Reader, error) {
	buf := make([]byte, streamHeaderSize)
	if err := readFull(source, buf); err != nil {
		return nil, &IncompleteHeaderError{Field: "RLAD stream header"}
	}
	header, err := ReadStreamHeader(buf)
	if err != nil {
		return nil, err
	}

	channelCount := int(header.Channels)
	r := &Reader{
		source:     source,
		header:     *header,
		codec:      NewCodec(Options{Mode: header.Mode, Channels: header.Channels}),
		frameCount: header.FrameCount(),
		scratch:    make([]int16, FramesPerBlock*channelCount),
		overflow:   make([]int16, FramesPerBlock*channelCount),
		headerBuf:  make([]byte, 2+channelCount+channelCount*MaxRunCount),
		payloadBuf: make([]byte, FramesPerBlock*channelCount*2),
	}
	return r, nil
}

// Channels returns the stream's channel layout.
func (r *Reader) Channels() AudioChannels { return r.header.Channels }

// SampleRate returns the stream's sample rate in Hz.
func (r *Reader) SampleRate() uint32 { return r.header.SampleRate }

// FrameCount returns the total number of live frames in the stream.
func (r *Reader) FrameCount() int64 { return r.frameCount }

// Remaining returns the number of live frames not yet returned by Read.
func (r *Reader) Remaining() int64 { return r.frameCount - r.framesRead }

// Read fills dst with decoded PCM frames (its length is rounded down to a
// multiple of the channel count) and returns the number of frames written.
// It returns 0 once the stream is exhausted.
func (r *Reader) Read(dst []int16) (int, error) {
	channelCount := int(r.header.Channels)
	usable := (len(dst) / channelCount) * channelCount
	dst = dst[:usable]

	written := 0
	written += r.drainOverflow(dst[written:])

	for written < len(dst) && r.blockIndex < r.header.BlockCount {
		framesRemainingInDst := (len(dst) - written) / channelCount
		framesInBlock, err := r.decodeNextBlock()
		if err != nil {
			return written, err
		}

		if framesRemainingInDst >= framesInBlock {
			n := copy(dst[written:], r.scratch[:framesInBlock*channelCount])
			written += n
		} else {
			n := copy(dst[written:], r.scratch[:framesRemainingInDst*channelCount])
			written += n
			r.stashOverflow(framesRemainingInDst*channelCount, framesInBlock*channelCount)
		}
	}

	frames := written / channelCount
	r.framesRead += int64(frames)
	return frames, nil
}

// ReadFloat behaves like Read but converts decoded samples to normalized
// float32.
func (r *Reader) ReadFloat(dst []float32) (int, error) {
	channelCount := int(r.header.Channels)
	usable := (len(dst) / channelCount) * channelCount
	tmp := make([]int16, usable)
	frames, err := r.Read(tmp)
	if err != nil {
		return frames, err
	}
	ConvertShortToFloat(tmp[:frames*channelCount], dst[:frames*channelCount])
	return frames, nil
}

// decodeNextBlock reads and decodes the next block into r.scratch,
// returning the number of live frames it holds.
func (r *Reader) decodeNextBlock() (frames int, err error) {
	channelCount := int(r.header.Channels)

	if err := readFull(r.source, r.headerBuf[:2]); err != nil {
		return 0, &IncompleteHeaderError{Field: "block size"}
	}
	runCountsStart := 2
	if err := readFull(r.source, r.headerBuf[runCountsStart:runCountsStart+channelCount]); err != nil {
		return 0, &IncompleteHeaderError{Field: "run counts"}
	}

	totalRunBytes := 0
	for c := 0; c < channelCount; c++ {
		totalRunBytes += int(r.headerBuf[runCountsStart+c])
	}

	runsStart := runCountsStart + channelCount
	if err := readFull(r.source, r.headerBuf[runsStart:runsStart+totalRunBytes]); err != nil {
		return 0, &IncompleteHeaderError{Field: "run headers"}
	}

	headerLen := runsStart + totalRunBytes
	header, _, err := ReadBlockHeader(channelCount, r.headerBuf[:headerLen])
	if err != nil {
		return 0, err
	}

	if err := readFull(r.source, r.payloadBuf[:header.DataSize]); err != nil {
		return 0, &IncompleteDataError{Op: "block data read"}
	}

	r.codec.SetHeader(header)
	if err := r.codec.Decode(r.payloadBuf[:header.DataSize], r.scratch); err != nil {
		return 0, err
	}

	r.blockIndex++
	if header.IsLastBlock {
		return r.header.LastBlockFrames, nil
	}
	return FramesPerBlock, nil
}

// stashOverflow records the decoded samples in r.scratch from
// [consumed:total) into the overflow buffer for the next Read call.
func (r *Reader) stashOverflow(consumed, total int) {
	n := copy(r.overflow, r.scratch[consumed:total])
	r.ovStart = 0
	r.ovLen = n
}

// drainOverflow copies as much of the overflow buffer into dst as fits,
// returning the number of samples copied.
func (r *Reader) drainOverflow(dst []int16) int {
	if r.ovLen == 0 {
		return 0
	}
	n := copy(dst, r.overflow[r.ovStart:r.ovStart+r.ovLen])
	r.ovStart += n
	r.ovLen -= n
	return n
}

func readFull(source ByteSource, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := source.Read(buf[total:])
		total += n
		if err != nil {
			if total == len(buf) {
				break
			}
			return &IncompleteDataError{Op: "stream read", Missing: len(buf) - total}
		}
		if n == 0 {
			return &IncompleteDataError{Op: "stream read", Missing: len(buf) - total}
		}
	}
	return nil
}
