// Package sequence owns the growable Fibonacci cache used for run matching.
package sequence

import "math/big"

// ─────────────────────────────────────────────────────────────────────────────
// Sequence Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// RunLength is the number of consecutive terms that form a run.
	RunLength = 5

	// GrowthBatch is the number of terms appended per extension step.
	GrowthBatch = 5
)

// seed holds the first ten canonical terms. The canonical sequence stores a
// single leading 1; the duplicated-1 run is handled by the matcher.
var seed = [...]int64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89}

// SeedTerms returns a fresh copy of the seed terms.
func SeedTerms() []*big.Int {
	terms := make([]*big.Int, len(seed))
	for i, v := range seed {
		terms[i] = big.NewInt(v)
	}
	return terms
}

// Sequence is a lazily extended, strictly increasing Fibonacci cache.
// It is not safe for concurrent use; the owner serialises access.
type Sequence struct {
	terms []*big.Int
}

// New returns a Sequence seeded with the first ten canonical terms.
func New() *Sequence {
	return &Sequence{terms: SeedTerms()}
}

// Len returns the number of cached terms.
func (s *Sequence) Len() int { return len(s.terms) }

// Terms returns a deep copy of the cache.
func (s *Sequence) Terms() []*big.Int {
	out := make([]*big.Int, len(s.terms))
	for i, t := range s.terms {
		out[i] = new(big.Int).Set(t)
	}
	return out
}

// EnsureCoverage grows the cache in batches of GrowthBatch until the
// RunLength-th term from the end is at least v. After it returns, any cached
// term equal to v is followed by RunLength-1 further terms.
func (s *Sequence) EnsureCoverage(v uint64) {
	target := new(big.Int).SetUint64(v)
	for s.terms[len(s.terms)-RunLength].Cmp(target) < 0 {
		s.grow()
	}
}

func (s *Sequence) grow() {
	for i := 0; i < GrowthBatch; i++ {
		n := len(s.terms)
		s.terms = append(s.terms, new(big.Int).Add(s.terms[n-1], s.terms[n-2]))
	}
}

// From returns the run of RunLength terms that starts at v, or nil when v is
// not a canonical Fibonacci number. The returned terms are shared with the
// cache and must not be modified.
func (s *Sequence) From(v uint64) []*big.Int {
	s.EnsureCoverage(v)
	target := new(big.Int).SetUint64(v)
	for i, t := range s.terms {
		switch t.Cmp(target) {
		case 1:
			return nil
		case 0:
			return s.terms[i : i+RunLength : i+RunLength]
		}
	}
	return nil
}

// Contains reports whether v is a canonical term.
func (s *Sequence) Contains(v uint64) bool {
	return s.From(v) != nil
}
