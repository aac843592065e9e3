// Package sessionid generates time-sortable identifiers for scoring sessions.
//
// An identifier is a UUIDv7 written as 26 characters of Crockford base32,
// so identifiers issued later sort after earlier ones.
package sessionid

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32 alphabet, lower case
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

// Generator issues identifiers from a clock and an entropy source
type Generator struct {
	clock   quartz.Clock
	entropy io.Reader
}

// NewGenerator creates a generator. A nil clock uses the wall clock and a
// nil entropy source uses crypto/rand.
func NewGenerator(clock quartz.Clock, entropy io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if entropy == nil {
		entropy = rand.Reader
	}
	return &Generator{clock: clock, entropy: entropy}
}

// Generate creates a new identifier using the wall clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new identifier
func (g *Generator) Generate() string {
	return encode(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var id [16]byte

	ms := g.clock.Now("sessionid").UnixMilli()
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}

	if _, err := io.ReadFull(g.entropy, id[6:]); err != nil {
		panic("sessionid: reading entropy: " + err.Error())
	}

	id[6] = (id[6] & 0x0f) | 0x70 // version 7
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// encode writes the 128 id bits behind two zero pad bits, five bits per character
func encode(id [16]byte) string {
	out := make([]byte, encodedLen)
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			v <<= 1
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id is 26 lower-case base32 characters whose leading
// character fits the two pad bits
func Validate(id string) error {
	if len(id) != encodedLen {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", encodedLen, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
