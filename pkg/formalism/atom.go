package formalism

import (
	"fmt"
	"strings"
)

// Atom pairs a predicate with an ordered term list of matching length. A
// lifted atom's terms are variable terms drawn from the predicate's (or an
// enclosing axiom/action's) parameters; a ground atom's terms are all
// object terms. Both are represented by the same type.
type Atom[P Tag] struct {
	index     int
	predicate *Predicate[P]
	terms     []Term
}

// NewAtomRepository creates a repository for atoms over predicate category P.
func NewAtomRepository[P Tag]() *Repository[Atom[P]] {
	return NewRepository[Atom[P]]()
}

// GetOrCreateAtom interns an atom over predicate pred applied to terms.
func GetOrCreateAtom[P Tag](repo *Repository[Atom[P]], pred *Predicate[P], terms []Term) *Atom[P] {
	var sb strings.Builder
	fmt.Fprintf(&sb, "a:%d(", pred.Index())
	for i, t := range terms {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(t.Fingerprint())
	}
	sb.WriteByte(')')
	return repo.GetOrCreate(sb.String(), func(index int) *Atom[P] {
		cp := make([]Term, len(terms))
		copy(cp, terms)
		return &Atom[P]{index: index, predicate: pred, terms: cp}
	})
}

func (a *Atom[P]) Index() int           { return a.index }
func (a *Atom[P]) Predicate() *Predicate[P] { return a.predicate }
func (a *Atom[P]) Terms() []Term        { return a.terms }
func (a *Atom[P]) IsGround() bool {
	for _, t := range a.terms {
		if !t.IsGround() {
			return false
		}
	}
	return true
}

func (a *Atom[P]) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return fmt.Sprintf("(%s %s)", a.predicate.Name(), strings.Join(parts, " "))
}

// Ground substitutes binding (parameter-position -> object) into a lifted
// atom and interns the resulting ground atom in groundRepo.
func (a *Atom[P]) Ground(groundRepo *Repository[Atom[P]], binding []*Object) *Atom[P] {
	terms := make([]Term, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Substitute(binding)
	}
	return GetOrCreateAtom(groundRepo, a.predicate, terms)
}
