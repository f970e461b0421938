package formalism

import "fmt"

// Axiom is a conjunctive condition plus a single derived-literal head
// (always positive, over a derived predicate). Axioms define the extension
// of derived predicates entirely; a predicate with no axiom heading it has
// an empty extension.
type Axiom struct {
	index     int
	name      string // synthetic name for diagnostics/DOT export, e.g. "axiom_0"
	parameters []*Variable
	condition ConjunctiveCondition
	head      *Atom[DerivedTag]
	stratum   int // assigned by the delete-relaxation explorator's stratification pass
}

func NewAxiomRepository() *Repository[Axiom] {
	return NewRepository[Axiom]()
}

func GetOrCreateAxiom(repo *Repository[Axiom], name string, parameters []*Variable, condition ConjunctiveCondition, head *Atom[DerivedTag]) *Axiom {
	condition.Normalize()
	return repo.GetOrCreate("axm:"+name, func(index int) *Axiom {
		return &Axiom{index: index, name: name, parameters: parameters, condition: condition, head: head, stratum: -1}
	})
}

func (a *Axiom) Index() int                      { return a.index }
func (a *Axiom) Name() string                    { return a.name }
func (a *Axiom) Parameters() []*Variable         { return a.parameters }
func (a *Axiom) Condition() *ConjunctiveCondition { return &a.condition }
func (a *Axiom) Head() *Atom[DerivedTag]          { return a.head }
func (a *Axiom) Stratum() int                    { return a.stratum }
func (a *Axiom) SetStratum(s int)                { a.stratum = s }

func (a *Axiom) String() string {
	return fmt.Sprintf("(:derived %s %s)", a.head, a.condition.PositiveDerived)
}

// GroundAxiom is an Axiom instantiated by a specific binding. Like ground
// actions, ground axioms with the same (schema, binding) pair intern to the
// same record.
type GroundAxiom struct {
	index     int
	axiom     *Axiom
	binding   []*Object
	condition ConjunctiveCondition
	head      *Atom[DerivedTag]
}

func NewGroundAxiomRepository() *Repository[GroundAxiom] {
	return NewRepository[GroundAxiom]()
}

func GetOrCreateGroundAxiom(repo *Repository[GroundAxiom], axiom *Axiom, binding []*Object, condition ConjunctiveCondition, head *Atom[DerivedTag]) *GroundAxiom {
	condition.Normalize()
	fp := bindingFingerprint(axiom.Index(), binding)
	return repo.GetOrCreate(fp, func(index int) *GroundAxiom {
		cp := make([]*Object, len(binding))
		copy(cp, binding)
		return &GroundAxiom{index: index, axiom: axiom, binding: cp, condition: condition, head: head}
	})
}

// Instantiate grounds axiom's condition and head under binding and interns
// the resulting GroundAxiom in problemRepos.
func (a *Axiom) Instantiate(problemRepos *ProblemRepositories, binding []*Object) *GroundAxiom {
	condition := a.condition.Ground(problemRepos, binding)
	head := a.head.Ground(problemRepos.DerivedAtoms, binding)
	return GetOrCreateGroundAxiom(problemRepos.GroundAxioms, a, binding, condition, head)
}

func (g *GroundAxiom) Index() int                      { return g.index }
func (g *GroundAxiom) Axiom() *Axiom                    { return g.axiom }
func (g *GroundAxiom) Binding() []*Object               { return g.binding }
func (g *GroundAxiom) Condition() *ConjunctiveCondition { return &g.condition }
func (g *GroundAxiom) Head() *Atom[DerivedTag]          { return g.head }
func (g *GroundAxiom) Stratum() int                     { return g.axiom.stratum }

func (g *GroundAxiom) String() string {
	return fmt.Sprintf("%s :- %s", g.head, g.condition.PositiveDerived)
}
