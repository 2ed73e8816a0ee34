package service

import "github.com/brightpath-hq/be-hr-progression/internal/repository"

// bandChain is the strict progression order. Every promotion targets the
// immediate successor of the employee's current band.
var bandChain = []repository.Band{
	repository.BandA,
	repository.BandB,
	repository.BandC,
	repository.BandL1,
	repository.BandL2,
}

func bandIndex(b repository.Band) int {
	for i, band := range bandChain {
		if band == b {
			return i
		}
	}
	return -1
}

// KnownBand reports whether b is a defined band.
func KnownBand(b repository.Band) bool {
	return bandIndex(b) >= 0
}

// NextBand returns the immediate successor of b, or false at the top of the
// chain (or for an unknown band).
func NextBand(b repository.Band) (repository.Band, bool) {
	i := bandIndex(b)
	if i < 0 || i == len(bandChain)-1 {
		return "", false
	}
	return bandChain[i+1], true
}

// IsValidProgression reports whether target is the immediate successor of
// current.
func IsValidProgression(current, target repository.Band) bool {
	next, ok := NextBand(current)
	return ok && next == target
}
