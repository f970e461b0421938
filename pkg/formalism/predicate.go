package formalism

import (
	"fmt"
	"strings"
)

// Tag is the marker interface implemented by the three predicate
// categories. It exists purely at the type level so Predicate[P], Atom[P]
// and Literal[P] can be parameterized over "which kind of predicate this
// is" and the compiler rejects, say, mixing a Static atom into a ground
// conjunctive effect's add set.
type Tag interface {
	tagName() string
}

// StaticTag marks predicates whose extension never changes within a
// problem (no effect may mention them).
type StaticTag struct{}

// FluentTag marks predicates that effects may add or delete.
type FluentTag struct{}

// DerivedTag marks predicates defined only by axioms.
type DerivedTag struct{}

func (StaticTag) tagName() string  { return "static" }
func (FluentTag) tagName() string  { return "fluent" }
func (DerivedTag) tagName() string { return "derived" }

// Predicate is a named, arity-fixed relation symbol over typed parameter
// variables, tagged by category P.
type Predicate[P Tag] struct {
	index      int
	name       string
	parameters []*Variable
}

// NewPredicateRepository creates a per-domain repository for predicates of
// category P. Static, fluent and derived predicates live in disjoint
// repositories (and therefore disjoint index spaces), so fluent and derived
// atoms receive disjoint index spaces downstream in the state layer.
func NewPredicateRepository[P Tag]() *Repository[Predicate[P]] {
	return NewRepository[Predicate[P]]()
}

// GetOrCreatePredicate interns a predicate by (name, arity): the parameter
// variables are positional placeholders, not part of the predicate's
// identity (two predicate declarations with the same name/arity collide,
// which is the expected PDDL semantics of predicate declarations).
func GetOrCreatePredicate[P Tag](repo *Repository[Predicate[P]], name string, parameters []*Variable) *Predicate[P] {
	fp := fmt.Sprintf("p:%s/%d", name, len(parameters))
	return repo.GetOrCreate(fp, func(index int) *Predicate[P] {
		return &Predicate[P]{index: index, name: name, parameters: parameters}
	})
}

func (p *Predicate[P]) Index() int             { return p.index }
func (p *Predicate[P]) Name() string           { return p.name }
func (p *Predicate[P]) Arity() int             { return len(p.parameters) }
func (p *Predicate[P]) Parameters() []*Variable { return p.parameters }

func (p *Predicate[P]) String() string {
	var zero P
	return fmt.Sprintf("(%s %s)[%s]", p.name, joinVars(p.parameters), zero.tagName())
}

func joinVars(vs []*Variable) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}
