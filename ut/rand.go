package ut

const (
	randMul1 = 1664525
	randAdd1 = 1013904223
)

// RandCounter is the seed for the pseudo-random generator.
var RandCounter uint64 = 65654363

// RandSetSeed sets the random seed.
func RandSetSeed(seed uint64) {
	RandCounter = seed
}

// RandGenNext returns the next pseudo-random value from rnd.
func RandGenNext(rnd uint64) uint64 {
	return rnd*randMul1 + randAdd1
}

// RandGen generates a pseudo-random uint64.
func RandGen() uint64 {
	RandCounter = RandGenNext(RandCounter)
	return RandCounter
}

// RandInterval returns a random number in [low, high].
func RandInterval(low, high uint64) uint64 {
	if high < low {
		low, high = high, low
	}
	if high == low {
		return low
	}
	return low + RandGen()%(high-low+1)
}

// RandFill fills buf with a deterministic byte pattern derived from the
// current seed.
func RandFill(buf []byte) {
	for i := range buf {
		buf[i] = byte(RandGen())
	}
}
