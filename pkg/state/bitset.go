// Package state implements the ground state layer: bit-packed fluent and
// derived atom sets, a dense numeric-variable vector, and the content-
// addressed state repository that interns them.
package state

import "math/bits"

const wordBits = 64

// Bitset is a resizable set of dense, non-negative integer indices backed
// by a little-endian slice of uint64 words. It is the representation used
// for both the fluent and the derived atom sets of a DenseState; fluent and
// derived atoms occupy disjoint index spaces, so two Bitsets per state
// never need to agree on length.
type Bitset struct {
	words []uint64
}

// NewBitset returns an empty bitset.
func NewBitset() Bitset { return Bitset{} }

// NewBitsetWithCapacity preallocates room for at least n bits.
func NewBitsetWithCapacity(n int) Bitset {
	return Bitset{words: make([]uint64, wordIndex(n)+1)}
}

func wordIndex(bit int) int { return bit / wordBits }
func bitMask(bit int) uint64 { return uint64(1) << uint(bit%wordBits) }

// Set turns bit i on, growing the backing slice if needed.
func (b *Bitset) Set(i int) {
	wi := wordIndex(i)
	if wi >= len(b.words) {
		grown := make([]uint64, wi+1)
		copy(grown, b.words)
		b.words = grown
	}
	b.words[wi] |= bitMask(i)
}

// Clear turns bit i off. Clearing an out-of-range bit is a no-op.
func (b *Bitset) Clear(i int) {
	wi := wordIndex(i)
	if wi >= len(b.words) {
		return
	}
	b.words[wi] &^= bitMask(i)
}

// Test reports whether bit i is set.
func (b Bitset) Test(i int) bool {
	wi := wordIndex(i)
	if wi >= len(b.words) {
		return false
	}
	return b.words[wi]&bitMask(i) != 0
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy, trimmed of trailing all-zero words so
// that two bitsets differing only in unused capacity compare/hash equal.
func (b Bitset) Clone() Bitset {
	n := trimmedLen(b.words)
	out := make([]uint64, n)
	copy(out, b.words[:n])
	return Bitset{words: out}
}

func trimmedLen(words []uint64) int {
	n := len(words)
	for n > 0 && words[n-1] == 0 {
		n--
	}
	return n
}

// Canonical returns a trimmed copy suitable as a map/hash key (Go slices
// cannot be map keys directly; callers hash the returned string or bytes).
func (b Bitset) Canonical() Bitset { return b.Clone() }

// ForEach calls fn once per set bit index, in ascending order.
func (b Bitset) ForEach(fn func(i int)) {
	for wi, w := range b.words {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(wi*wordBits + tz)
			w &= w - 1
		}
	}
}

// Equal reports bit-for-bit equality, ignoring trailing all-zero words on
// either side.
func (b Bitset) Equal(other Bitset) bool {
	na, nb := trimmedLen(b.words), trimmedLen(other.words)
	if na != nb {
		return false
	}
	for i := 0; i < na; i++ {
		if b.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Key returns a comparable, canonical byte-string encoding suitable for use
// as a Go map key when interning states by content.
func (b Bitset) Key() string {
	n := trimmedLen(b.words)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		w := b.words[i]
		for j := 0; j < 8; j++ {
			buf[i*8+j] = byte(w >> (8 * j))
		}
	}
	return string(buf)
}
