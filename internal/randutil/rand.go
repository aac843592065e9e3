// Package randutil derives reproducible random sources from a single seed.
package randutil

import (
	"encoding/binary"
	"io"
	rand "math/rand/v2"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Both PCG
// words are derived from it so nearby seeds give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Reader adapts r into an io.Reader, for consumers such as ID generators
// that take entropy as bytes. Not safe for concurrent use.
func Reader(r *rand.Rand) io.Reader {
	return &reader{rng: r}
}

type reader struct {
	rng *rand.Rand
	buf [8]byte
	n   int // unread bytes left in buf
}

func (r *reader) Read(p []byte) (int, error) {
	for i := range p {
		if r.n == 0 {
			binary.LittleEndian.PutUint64(r.buf[:], r.rng.Uint64())
			r.n = len(r.buf)
		}
		p[i] = r.buf[len(r.buf)-r.n]
		r.n--
	}
	return len(p), nil
}
