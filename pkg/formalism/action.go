package formalism

import "fmt"

// ActionSchema is a lifted, typed action: name, parameters, a conjunctive
// precondition, an unconditional conjunctive effect, and a list of
// conditional effects.
type ActionSchema struct {
	index      int
	name       string
	parameters []*Variable
	arity      int
	condition  ConjunctiveCondition
	effect     ConjunctiveEffect
	conditionalEffects []ConditionalEffect
}

func NewActionSchemaRepository() *Repository[ActionSchema] {
	return NewRepository[ActionSchema]()
}

// GetOrCreateActionSchema interns a schema by name (PDDL action names are
// unique within a domain, so name alone is a valid fingerprint).
func GetOrCreateActionSchema(
	repo *Repository[ActionSchema],
	name string,
	parameters []*Variable,
	condition ConjunctiveCondition,
	effect ConjunctiveEffect,
	conditionalEffects []ConditionalEffect,
) *ActionSchema {
	condition.Normalize()
	effect.Normalize()
	return repo.GetOrCreate("act:"+name, func(index int) *ActionSchema {
		return &ActionSchema{
			index:              index,
			name:               name,
			parameters:         parameters,
			arity:              len(parameters),
			condition:          condition,
			effect:             effect,
			conditionalEffects: conditionalEffects,
		}
	})
}

func (a *ActionSchema) Index() int                          { return a.index }
func (a *ActionSchema) Name() string                        { return a.name }
func (a *ActionSchema) Parameters() []*Variable             { return a.parameters }
func (a *ActionSchema) Arity() int                          { return a.arity }
func (a *ActionSchema) Condition() *ConjunctiveCondition     { return &a.condition }
func (a *ActionSchema) Effect() *ConjunctiveEffect           { return &a.effect }
func (a *ActionSchema) ConditionalEffects() []ConditionalEffect { return a.conditionalEffects }

func (a *ActionSchema) String() string {
	return fmt.Sprintf("(%s %s)", a.name, joinVars(a.parameters))
}

// GroundAction is an ActionSchema instantiated by a specific binding
// (parameter position -> object). Ground actions are interned: the same
// (schema, binding) pair always resolves to the same record.
type GroundAction struct {
	index     int
	schema    *ActionSchema
	binding   []*Object
	condition ConjunctiveCondition
	effect    ConjunctiveEffect
	conditionalEffects []ConditionalEffect
}

func NewGroundActionRepository() *Repository[GroundAction] {
	return NewRepository[GroundAction]()
}

func bindingFingerprint(schemaIndex int, binding []*Object) string {
	s := fmt.Sprintf("ga:%d(", schemaIndex)
	for i, o := range binding {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", o.Index())
	}
	return s + ")"
}

func GetOrCreateGroundAction(
	repo *Repository[GroundAction],
	schema *ActionSchema,
	binding []*Object,
	condition ConjunctiveCondition,
	effect ConjunctiveEffect,
	conditionalEffects []ConditionalEffect,
) *GroundAction {
	condition.Normalize()
	effect.Normalize()
	fp := bindingFingerprint(schema.Index(), binding)
	return repo.GetOrCreate(fp, func(index int) *GroundAction {
		cp := make([]*Object, len(binding))
		copy(cp, binding)
		return &GroundAction{
			index:              index,
			schema:             schema,
			binding:            cp,
			condition:          condition,
			effect:             effect,
			conditionalEffects: conditionalEffects,
		}
	})
}

func (g *GroundAction) Index() int                          { return g.index }
func (g *GroundAction) Schema() *ActionSchema                { return g.schema }
func (g *GroundAction) Binding() []*Object                   { return g.binding }
func (g *GroundAction) Condition() *ConjunctiveCondition     { return &g.condition }
func (g *GroundAction) Effect() *ConjunctiveEffect           { return &g.effect }
func (g *GroundAction) ConditionalEffects() []ConditionalEffect { return g.conditionalEffects }

func (g *GroundAction) String() string {
	parts := make([]string, len(g.binding))
	for i, o := range g.binding {
		parts[i] = o.Name()
	}
	s := "(" + g.schema.Name()
	for _, p := range parts {
		s += " " + p
	}
	return s + ")"
}

// Instantiate grounds schema's condition, effect and conditional effects
// under binding and interns the resulting GroundAction in problemRepos.
func (a *ActionSchema) Instantiate(problemRepos *ProblemRepositories, binding []*Object) *GroundAction {
	condition := a.condition.Ground(problemRepos, binding)
	effect := a.effect.Ground(problemRepos, binding)
	conditionalEffects := make([]ConditionalEffect, len(a.conditionalEffects))
	for i, ce := range a.conditionalEffects {
		conditionalEffects[i] = ce.Ground(problemRepos, binding)
	}
	return GetOrCreateGroundAction(problemRepos.GroundActions, a, binding, condition, effect, conditionalEffects)
}

// Less orders ground actions by (schema intern index, binding tuple), a
// stable total order independent of grounding traversal order.
func (g *GroundAction) Less(other *GroundAction) bool {
	if g.schema.Index() != other.schema.Index() {
		return g.schema.Index() < other.schema.Index()
	}
	for i := range g.binding {
		if g.binding[i].Index() != other.binding[i].Index() {
			return g.binding[i].Index() < other.binding[i].Index()
		}
	}
	return false
}
