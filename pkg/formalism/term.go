package formalism

import "fmt"

// TermKind distinguishes the two closed variants of Term.
type TermKind uint8

const (
	ObjectTermKind TermKind = iota
	VariableTermKind
)

// Term is the tagged union { object-term, variable-term }. A lifted term
// holds a *Variable; a ground term (produced by substituting a parameter
// binding into a lifted term) holds an *Object. There is no separate
// "GroundTerm" type: a Term with Kind()==ObjectTermKind already is ground.
type Term struct {
	kind   TermKind
	object *Object
	vari   *Variable
}

// NewObjectTerm builds a ground term referring to obj.
func NewObjectTerm(obj *Object) Term {
	return Term{kind: ObjectTermKind, object: obj}
}

// NewVariableTerm builds a lifted term referring to v.
func NewVariableTerm(v *Variable) Term {
	return Term{kind: VariableTermKind, vari: v}
}

func (t Term) Kind() TermKind    { return t.kind }
func (t Term) IsGround() bool    { return t.kind == ObjectTermKind }
func (t Term) Object() *Object   { return t.object }
func (t Term) Variable() *Variable { return t.vari }

// Fingerprint returns a compact string uniquely identifying this term among
// all terms over the same object/variable repositories, suitable for use as
// part of a larger repository fingerprint (atoms, literals, ...).
func (t Term) Fingerprint() string {
	switch t.kind {
	case ObjectTermKind:
		return fmt.Sprintf("o%d", t.object.Index())
	case VariableTermKind:
		return fmt.Sprintf("v%d", t.vari.Index())
	default:
		return "?"
	}
}

func (t Term) String() string {
	switch t.kind {
	case ObjectTermKind:
		return t.object.String()
	case VariableTermKind:
		return t.vari.String()
	default:
		return "<invalid-term>"
	}
}

// Substitute replaces t by the object bound to its variable in binding, when
// t is a variable term; ground terms are returned unchanged. binding maps
// parameter position -> object.
func (t Term) Substitute(binding []*Object) Term {
	if t.kind == ObjectTermKind {
		return t
	}
	return NewObjectTerm(binding[t.vari.Position()])
}
