package rlad

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// implPath names which code path SampleConvert and the lossy scaling pass
// in BitPack take. The zero value, pathAuto, means "decide from detected
// CPU features the first time it is needed, then cache the answer" per the
// codec's single-probe, cached feature-detection contract.
type implPath int

const (
	pathAuto implPath = iota
	pathScalar
	pathSIMD256
	pathSIMD128
)

var (
	detectOnce  sync.Once
	detectedImp implPath
	forcedImp   implPath // pathAuto means "not forced"
)

// detectPath probes CPU features exactly once and caches the widest SIMD
// path the current process can use.
func detectPath() implPath {
	detectOnce.Do(func() {
		switch {
		case cpu.X86.HasAVX2:
			detectedImp = pathSIMD256
		case cpu.X86.HasSSE2:
			detectedImp = pathSIMD128
		case cpu.ARM64.HasASIMD:
			detectedImp = pathSIMD128
		default:
			detectedImp = pathScalar
		}
	})
	return detectedImp
}

// activePath returns the path that should actually be used: the forced
// override if the test harness set one, otherwise the detected path.
func activePath() implPath {
	if forcedImp != pathAuto {
		return forcedImp
	}
	return detectPath()
}

// ForceImplementationPath pins SampleConvert and the lossy scaling pass to
// a specific code path, bypassing CPU feature detection. It exists so tests
// can exercise every path deterministically (the source used reflection to
// poke private fields for the same purpose; this codec exposes the knob
// directly instead). Pass "" to return to auto-detection.
func ForceImplementationPath(name string) {
	switch name {
	case "scalar":
		forcedImp = pathScalar
	case "simd128":
		forcedImp = pathSIMD128
	case "simd256":
		forcedImp = pathSIMD256
	default:
		forcedImp = pathAuto
	}
}
