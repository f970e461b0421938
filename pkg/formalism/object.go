package formalism

import "fmt"

// Object is a problem constant: a named element of the planning domain
// (e.g. a block, a room, a ball).
type Object struct {
	index int
	name  string
}

// NewObjectRepository creates the per-problem object repository.
func NewObjectRepository() *Repository[Object] {
	return NewRepository[Object]()
}

// GetOrCreateObject interns an object by name.
func GetOrCreateObject(repo *Repository[Object], name string) *Object {
	return repo.GetOrCreate("o:"+name, func(index int) *Object {
		return &Object{index: index, name: name}
	})
}

func (o *Object) Index() int     { return o.index }
func (o *Object) Name() string   { return o.name }
func (o *Object) String() string { return fmt.Sprintf("%s", o.name) }

// Variable is a schema parameter: a named placeholder at a fixed position in
// an action schema's or axiom's parameter list.
type Variable struct {
	index    int
	name     string
	position int
}

// NewVariableRepository creates the per-domain variable repository.
func NewVariableRepository() *Repository[Variable] {
	return NewRepository[Variable]()
}

// GetOrCreateVariable interns a variable by (name, position): two variables
// with the same name at the same parameter position are the same variable.
func GetOrCreateVariable(repo *Repository[Variable], name string, position int) *Variable {
	fp := fmt.Sprintf("v:%s:%d", name, position)
	return repo.GetOrCreate(fp, func(index int) *Variable {
		return &Variable{index: index, name: name, position: position}
	})
}

func (v *Variable) Index() int     { return v.index }
func (v *Variable) Name() string   { return v.name }
func (v *Variable) Position() int  { return v.position }
func (v *Variable) String() string { return fmt.Sprintf("?%s", v.name) }
