package matchtree

import "github.com/simon-stahlberg/mimir-sub004/pkg/formalism"

// residual tracks, for one element still under consideration, which tests
// from its conjunctive condition have not yet been discharged along the
// current root-to-here path.
type residual struct {
	el         Element
	posFluent  map[int]bool
	negFluent  map[int]bool
	posDerived map[int]bool
	negDerived map[int]bool
	numeric    map[int]*formalism.NumericConstraint
}

func newResidual(el Element) *residual {
	cond := el.Condition()
	r := &residual{
		el:         el,
		posFluent:  make(map[int]bool, len(cond.PositiveFluent)),
		negFluent:  make(map[int]bool, len(cond.NegativeFluent)),
		posDerived: make(map[int]bool, len(cond.PositiveDerived)),
		negDerived: make(map[int]bool, len(cond.NegativeDerived)),
		numeric:    make(map[int]*formalism.NumericConstraint, len(cond.Numeric)),
	}
	for _, l := range cond.PositiveFluent {
		r.posFluent[l.Atom.Index()] = true
	}
	for _, l := range cond.NegativeFluent {
		r.negFluent[l.Atom.Index()] = true
	}
	for _, l := range cond.PositiveDerived {
		r.posDerived[l.Atom.Index()] = true
	}
	for _, l := range cond.NegativeDerived {
		r.negDerived[l.Atom.Index()] = true
	}
	for _, nc := range cond.Numeric {
		r.numeric[nc.Index()] = nc
	}
	return r
}

func (r *residual) isEmpty() bool {
	return len(r.posFluent) == 0 && len(r.negFluent) == 0 &&
		len(r.posDerived) == 0 && len(r.negDerived) == 0 && len(r.numeric) == 0
}

// classify reports which branch (true/false/dontcare) element r takes for
// test t, and a copy of r with t discharged if it was true/false.
func (r *residual) classify(t Test) (branch byte, next *residual) {
	if t.kind == testNumeric {
		if _, ok := r.numeric[t.constraintIdx]; ok {
			return 'T', r.without(t)
		}
		return 'X', r
	}
	switch t.domain {
	case FluentDomain:
		if r.posFluent[t.atomIdx] {
			return 'T', r.without(t)
		}
		if r.negFluent[t.atomIdx] {
			return 'F', r.without(t)
		}
		return 'X', r
	default: // DerivedDomain
		if r.posDerived[t.atomIdx] {
			return 'T', r.without(t)
		}
		if r.negDerived[t.atomIdx] {
			return 'F', r.without(t)
		}
		return 'X', r
	}
}

func (r *residual) without(t Test) *residual {
	cp := &residual{el: r.el, posFluent: r.posFluent, negFluent: r.negFluent,
		posDerived: r.posDerived, negDerived: r.negDerived, numeric: r.numeric}
	if t.kind == testNumeric {
		cp.numeric = cloneWithoutInt(r.numeric, t.constraintIdx)
		return cp
	}
	switch t.domain {
	case FluentDomain:
		if r.posFluent[t.atomIdx] {
			cp.posFluent = cloneWithoutBool(r.posFluent, t.atomIdx)
		} else {
			cp.negFluent = cloneWithoutBool(r.negFluent, t.atomIdx)
		}
	default:
		if r.posDerived[t.atomIdx] {
			cp.posDerived = cloneWithoutBool(r.posDerived, t.atomIdx)
		} else {
			cp.negDerived = cloneWithoutBool(r.negDerived, t.atomIdx)
		}
	}
	return cp
}

func cloneWithoutBool(m map[int]bool, key int) map[int]bool {
	out := make(map[int]bool, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func cloneWithoutInt(m map[int]*formalism.NumericConstraint, key int) map[int]*formalism.NumericConstraint {
	out := make(map[int]*formalism.NumericConstraint, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// Build constructs a match tree over elements.
func Build(elements []Element, opts BuildOptions) *Tree {
	residuals := make([]*residual, len(elements))
	for i, el := range elements {
		residuals[i] = newResidual(el)
	}
	t := &Tree{elements: elements}
	budget := opts.MaxNumNodes
	if budget <= 0 {
		budget = 1
	}
	t.root = build(residuals, 0, &budget, opts, &t.nodeCount)
	return t
}

func build(subset []*residual, depth int, budget *int, opts BuildOptions, nodeCount *int) *Node {
	*nodeCount++
	if *budget <= 0 {
		return newLeaf(toElements(subset), false)
	}
	*budget--

	candidates := collectCandidates(subset)
	if len(candidates) == 0 {
		return newLeaf(toElements(subset), true)
	}

	best := pickBest(candidates, subset, depth, opts)

	var tGroup, fGroup, xGroup []*residual
	for _, r := range subset {
		branch, next := r.classify(best)
		switch branch {
		case 'T':
			tGroup = append(tGroup, next)
		case 'F':
			fGroup = append(fGroup, next)
		default:
			xGroup = append(xGroup, next)
		}
	}

	var trueChild, falseChild, dontCareChild *Node
	if len(tGroup) > 0 {
		trueChild = build(tGroup, depth+1, budget, opts, nodeCount)
	}
	if len(fGroup) > 0 {
		falseChild = build(fGroup, depth+1, budget, opts, nodeCount)
	}
	if len(xGroup) > 0 {
		dontCareChild = build(xGroup, depth+1, budget, opts, nodeCount)
	}

	if best.IsNumeric() {
		return newNumericSelector(best, trueChild, dontCareChild)
	}
	return newAtomSelector(best, trueChild, falseChild, dontCareChild)
}

func toElements(subset []*residual) []Element {
	out := make([]Element, len(subset))
	for i, r := range subset {
		out[i] = r.el
	}
	return out
}

func collectCandidates(subset []*residual) []Test {
	seen := make(map[string]Test)
	for _, r := range subset {
		for idx := range r.posFluent {
			addCandidate(seen, AtomTest(FluentDomain, idx))
		}
		for idx := range r.negFluent {
			addCandidate(seen, AtomTest(FluentDomain, idx))
		}
		for idx := range r.posDerived {
			addCandidate(seen, AtomTest(DerivedDomain, idx))
		}
		for idx := range r.negDerived {
			addCandidate(seen, AtomTest(DerivedDomain, idx))
		}
		for _, nc := range r.numeric {
			addCandidate(seen, NumericTest(nc))
		}
	}
	out := make([]Test, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	return out
}

func addCandidate(seen map[string]Test, t Test) {
	key := candidateKey(t)
	if _, ok := seen[key]; !ok {
		seen[key] = t
	}
}

func candidateKey(t Test) string {
	if t.kind == testNumeric {
		return "n" + itoa(t.constraintIdx)
	}
	if t.domain == FluentDomain {
		return "f" + itoa(t.atomIdx)
	}
	return "d" + itoa(t.atomIdx)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// pickBest selects the highest-scoring candidate for subset, breaking ties
// first on the atom-over-numeric preference (if enabled) and finally on
// ascending intern index, keeping construction deterministic.
func pickBest(candidates []Test, subset []*residual, depth int, opts BuildOptions) Test {
	metric := opts.Strategy.metric()
	var best Test
	var bestScore float64
	first := true
	for _, t := range candidates {
		sizeT, sizeF, sizeX := partitionSizes(subset, t)
		score := metric(sizeT, sizeF, sizeX, depth)
		if first || better(score, t, bestScore, best, opts) {
			best, bestScore, first = t, score, false
		}
	}
	return best
}

func better(score float64, t Test, bestScore float64, best Test, opts BuildOptions) bool {
	if score != bestScore {
		return score > bestScore
	}
	if opts.PreferAtomsOverNumeric && t.IsNumeric() != best.IsNumeric() {
		return !t.IsNumeric()
	}
	return t.InternIndex() < best.InternIndex()
}

func partitionSizes(subset []*residual, t Test) (sizeT, sizeF, sizeX int) {
	for _, r := range subset {
		branch, _ := r.classify(t)
		switch branch {
		case 'T':
			sizeT++
		case 'F':
			sizeF++
		default:
			sizeX++
		}
	}
	return
}
