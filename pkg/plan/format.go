// Package plan writes and reads the IPC plan-file format: one ground action
// per line as "(action-name obj1 obj2 ...)", followed by a trailing
// "; cost = <value>" line.
package plan

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// Write emits actions in order, one per line via GroundAction.String (which
// already renders the "(name arg1 arg2)" shape), followed by the cost line.
func Write(w io.Writer, actions []*formalism.GroundAction, cost float64) error {
	bw := bufio.NewWriter(w)
	for _, a := range actions {
		if _, err := fmt.Fprintln(bw, a.String()); err != nil {
			return fmt.Errorf("plan: write action: %w", err)
		}
	}
	if _, err := fmt.Fprintf(bw, "; cost = %s\n", strconv.FormatFloat(cost, 'g', -1, 64)); err != nil {
		return fmt.Errorf("plan: write cost line: %w", err)
	}
	return bw.Flush()
}

// Action is one parsed plan-file line: an action name and its ordered
// argument object names, before any lookup against a problem's object
// repository.
type Action struct {
	Name string
	Args []string
}

// Parsed is the result of reading a plan file.
type Parsed struct {
	Actions []Action
	Cost    float64
	HasCost bool
}

// Read parses a plan file written by Write. It is tolerant of blank lines
// and does not require the cost line to be present (a plan emitted by a
// tool that doesn't track a metric is still valid input).
func Read(r io.Reader) (*Parsed, error) {
	scanner := bufio.NewScanner(r)
	result := &Parsed{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "; cost") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("plan: malformed cost line %q", line)
			}
			c, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("plan: malformed cost value in %q: %w", line, err)
			}
			result.Cost = c
			result.HasCost = true
			continue
		}
		act, err := parseActionLine(line)
		if err != nil {
			return nil, err
		}
		result.Actions = append(result.Actions, act)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("plan: read: %w", err)
	}
	return result, nil
}

func parseActionLine(line string) (Action, error) {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return Action{}, fmt.Errorf("plan: malformed action line %q", line)
	}
	inner := strings.TrimSpace(line[1 : len(line)-1])
	if inner == "" {
		return Action{}, fmt.Errorf("plan: empty action line %q", line)
	}
	fields := strings.Fields(inner)
	return Action{Name: fields[0], Args: fields[1:]}, nil
}

// Resolve looks up each argument name in objects and binds it against
// domain, yielding a GroundAction actionable by the search/state layers.
// Resolve fails if the action name isn't in the domain's schema repository
// or any argument name isn't a known object (e.g. validating a hand-edited
// plan file against the problem it claims to solve).
func Resolve(a Action, domain *formalism.Domain, problemRepos *formalism.ProblemRepositories) (*formalism.GroundAction, error) {
	var schema *formalism.ActionSchema
	domain.Repositories.ActionSchemas.Each(func(_ int, s *formalism.ActionSchema) {
		if s.Name() == a.Name {
			schema = s
		}
	})
	if schema == nil {
		return nil, fmt.Errorf("plan: unknown action schema %q", a.Name)
	}
	if len(a.Args) != schema.Arity() {
		return nil, fmt.Errorf("plan: action %q expects %d arguments, got %d", a.Name, schema.Arity(), len(a.Args))
	}
	binding := make([]*formalism.Object, len(a.Args))
	for i, name := range a.Args {
		var obj *formalism.Object
		problemRepos.Objects.Each(func(_ int, o *formalism.Object) {
			if o.Name() == name {
				obj = o
			}
		})
		if obj == nil {
			return nil, fmt.Errorf("plan: unknown object %q", name)
		}
		binding[i] = obj
	}
	return schema.Instantiate(problemRepos, binding), nil
}
