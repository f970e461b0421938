package formalism

// DomainRepositories bundles every repository whose contents are shared
// across all problems of one domain: variables, predicates, lifted atoms,
// function skeletons/functions, action schemas, and axioms.
type DomainRepositories struct {
	Variables *Repository[Variable]

	StaticPredicates  *Repository[Predicate[StaticTag]]
	FluentPredicates  *Repository[Predicate[FluentTag]]
	DerivedPredicates *Repository[Predicate[DerivedTag]]

	// Lifted atoms: schema-internal, parameterized by variables.
	StaticAtoms  *Repository[Atom[StaticTag]]
	FluentAtoms  *Repository[Atom[FluentTag]]
	DerivedAtoms *Repository[Atom[DerivedTag]]

	FunctionSkeletons *Repository[FunctionSkeleton]
	Functions         *Repository[Function]
	NumericConstraints *Repository[NumericConstraint]

	ActionSchemas *Repository[ActionSchema]
	Axioms        *Repository[Axiom]
}

func NewDomainRepositories() *DomainRepositories {
	return &DomainRepositories{
		Variables:          NewVariableRepository(),
		StaticPredicates:   NewPredicateRepository[StaticTag](),
		FluentPredicates:   NewPredicateRepository[FluentTag](),
		DerivedPredicates:  NewPredicateRepository[DerivedTag](),
		StaticAtoms:        NewAtomRepository[StaticTag](),
		FluentAtoms:        NewAtomRepository[FluentTag](),
		DerivedAtoms:       NewAtomRepository[DerivedTag](),
		FunctionSkeletons:  NewFunctionSkeletonRepository(),
		Functions:          NewFunctionRepository(),
		NumericConstraints: NewNumericConstraintRepository(),
		ActionSchemas:      NewActionSchemaRepository(),
		Axioms:             NewAxiomRepository(),
	}
}

// Domain is a named bundle of action schemas, axioms, predicates and
// functions, shared across every problem instantiated against it.
type Domain struct {
	Name         string
	Repositories *DomainRepositories

	// RequiresActionCosts mirrors PDDL's `:action-costs` requirements flag:
	// whether this domain's effects are allowed to carry an auxiliary
	// (total-cost) numeric effect at all. Grounding rejects any action
	// whose effect declares an auxiliary contribution when this is false.
	RequiresActionCosts bool
}

func NewDomain(name string) *Domain {
	return &Domain{Name: name, Repositories: NewDomainRepositories()}
}

// ProblemRepositories bundles every repository whose contents are specific
// to one problem instance: objects and all *ground* atoms/functions/
// actions/axioms.
type ProblemRepositories struct {
	Objects *Repository[Object]

	StaticAtoms  *Repository[Atom[StaticTag]]
	FluentAtoms  *Repository[Atom[FluentTag]]
	DerivedAtoms *Repository[Atom[DerivedTag]]

	Functions          *Repository[Function]
	NumericConstraints *Repository[NumericConstraint]

	// StaticFunctionValues maps ground static-function intern index to the
	// value the problem declares for it. Static function values never
	// change, so grounding folds every static function reference into a
	// plain number expression using this table; a static function with no
	// declared value folds to the undefined (NaN) number, making every
	// dependent comparator false.
	StaticFunctionValues map[int]float64

	GroundActions *Repository[GroundAction]
	GroundAxioms  *Repository[GroundAxiom]
}

func NewProblemRepositories() *ProblemRepositories {
	return &ProblemRepositories{
		Objects:              NewObjectRepository(),
		StaticAtoms:          NewAtomRepository[StaticTag](),
		FluentAtoms:          NewAtomRepository[FluentTag](),
		DerivedAtoms:         NewAtomRepository[DerivedTag](),
		Functions:            NewFunctionRepository(),
		NumericConstraints:   NewNumericConstraintRepository(),
		StaticFunctionValues: make(map[int]float64),
		GroundActions:        NewGroundActionRepository(),
		GroundAxioms:         NewGroundAxiomRepository(),
	}
}

// Problem is a domain instantiated with concrete objects, an initial state,
// a goal, and an optimization metric.
type Problem struct {
	Name         string
	Domain       *Domain
	Repositories *ProblemRepositories

	// StaticInitialAtoms is the problem's entire static extension: true
	// forever, never materialized in any search state.
	StaticInitialAtoms []*Atom[StaticTag]
	FluentInitialAtoms []*Atom[FluentTag]
	// NumericInitial maps ground fluent-function intern index -> value.
	NumericInitial map[int]float64

	Goal   ConjunctiveCondition
	Metric OptimizationMetric
}

func NewProblem(name string, domain *Domain) *Problem {
	return &Problem{
		Name:           name,
		Domain:         domain,
		Repositories:   NewProblemRepositories(),
		NumericInitial: make(map[int]float64),
	}
}

// SetStaticFunctionValue declares the problem's fixed value for a ground
// static function (PDDL's `(= (fn obj...) value)` initial assignments over
// static functions), the numeric analogue of StaticInitialAtoms. Must be
// called before grounding; the grounder folds the value into every
// expression that references fn.
func (p *Problem) SetStaticFunctionValue(fn *Function, value float64) {
	p.Repositories.StaticFunctionValues[fn.Index()] = value
}

// StaticExtension builds the set (by ground atom index) of static atoms
// that hold, used for grounding-time pruning and goal soundness checks.
func (p *Problem) StaticExtension() map[int]bool {
	set := make(map[int]bool, len(p.StaticInitialAtoms))
	for _, a := range p.StaticInitialAtoms {
		set[a.Index()] = true
	}
	return set
}
