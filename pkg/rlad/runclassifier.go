package rlad

// runclassifier.go implements §4.3: turning one channel's 512 samples into
// a delta chain, classifying each 8-sample chunk into the narrowest tier
// that represents it, and folding adjacent same-tier chunks into runs.

// tierRange holds the inclusive signed bounds a tier's bit width can
// represent, for a given mode.
type tierRange struct {
	lo, hi int32
}

func rangeFor(t Tier, mode Mode) tierRange {
	bps := t.bps(mode)
	half := int32(1) << uint(bps-1)
	return tierRange{lo: -half, hi: half - 1}
}

// classifyDeltas returns the narrowest tier (Tiny first) whose signed range
// contains every value in deltas, under mode. It returns ok=false if even
// Full does not fit (only possible in lossy mode, per §4.3's overflow
// note).
func classifyDeltas(deltas *[ChunkLen]int16, mode Mode) (Tier, bool) {
	for _, t := range [...]Tier{Tiny, Small, Medium, Full} {
		if fitsRange(deltas, rangeFor(t, mode)) {
			return t, true
		}
	}
	return Full, false
}

func fitsRange(deltas *[ChunkLen]int16, r tierRange) bool {
	for _, d := range deltas {
		v := int32(d)
		if v < r.lo || v > r.hi {
			return false
		}
	}
	return true
}

// channelDeltas computes the delta chain for one channel's 512 samples,
// starting from a running seed of 0 as fixed by this implementation (see
// DESIGN.md's resolution of the seed Open Question).
func channelDeltas(samples *[FramesPerBlock]int16) (deltas [FramesPerBlock]int16) {
	var last int16
	for i, s := range samples {
		deltas[i] = s - last
		last = s
	}
	return deltas
}

// classifyChunks classifies all 64 chunks of one channel's delta chain,
// returning one Tier per chunk.
func classifyChunks(deltas *[FramesPerBlock]int16, mode Mode) (tiers [ChunksPerBlock]Tier, ok bool) {
	ok = true
	for c := 0; c < ChunksPerBlock; c++ {
		var chunk [ChunkLen]int16
		copy(chunk[:], deltas[c*ChunkLen:(c+1)*ChunkLen])
		tier, fits := classifyDeltas(&chunk, mode)
		if !fits {
			ok = false
		}
		tiers[c] = tier
	}
	return tiers, ok
}

// compressRuns folds adjacent identical tier labels into RunHeaders,
// returning the compacted run list for one channel.
func compressRuns(tiers *[ChunksPerBlock]Tier) []RunHeader {
	runs := make([]RunHeader, 0, MaxRunCount)
	i := 0
	for i < ChunksPerBlock {
		tier := tiers[i]
		count := 1
		for i+count < ChunksPerBlock && tiers[i+count] == tier {
			count++
		}
		runs = append(runs, newRunHeader(tier, count))
		i += count
	}
	return runs
}
