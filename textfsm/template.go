package textfsm

import (
	"fmt"
	"strings"
)

// Template is an immutable compiled template: the ordered value descriptor
// table and the state table. It holds no per-run state and may be shared
// across concurrent Runs.
type Template struct {
	values      []*Value
	valueByName map[string]*Value
	stateNames  []string
	states      map[string][]*Rule
}

// Values returns the template's value descriptors in definition order, which
// is also the field order of emitted records.
func (t *Template) Values() []*Value {
	out := make([]*Value, len(t.values))
	copy(out, t.values)
	return out
}

// States returns the template's state names in definition order.
func (t *Template) States() []string {
	out := make([]string, len(t.stateNames))
	copy(out, t.stateNames)
	return out
}

// Compile parses template text into a Template. The text has two sections:
// zero or more value definitions, then one or more named states each holding
// ordered rule lines. A state named Start must exist. Compilation failures
// are returned as *TemplateError; a template that fails to compile is never
// partially usable.
func Compile(text string) (*Template, error) {
	t := &Template{
		valueByName: make(map[string]*Value),
		states:      make(map[string][]*Rule),
	}

	lines := strings.Split(text, "\n")
	current := ""
	inStates := false

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if !inStates {
			if trimmed == "Value" || strings.HasPrefix(trimmed, "Value ") {
				v, err := parseValue(trimmed, lineNo)
				if err != nil {
					return nil, err
				}
				if _, dup := t.valueByName[v.Name]; dup {
					return nil, &TemplateError{
						Kind:   KindDuplicateValueName,
						Line:   lineNo,
						Detail: fmt.Sprintf("value %q defined twice", v.Name),
					}
				}
				t.values = append(t.values, v)
				t.valueByName[v.Name] = v
				continue
			}
			// First non-value line starts the state section.
			inStates = true
		}

		indented := line != "" && (line[0] == ' ' || line[0] == '\t')
		if indented {
			if current == "" {
				return nil, &TemplateError{
					Kind:   KindMalformedRule,
					Line:   lineNo,
					Detail: "rule line outside any state",
				}
			}
			r, err := compileRule(line, lineNo, t.valueByName)
			if err != nil {
				return nil, err
			}
			t.states[current] = append(t.states[current], r)
			continue
		}

		// State header.
		if !identRE.MatchString(trimmed) {
			return nil, &TemplateError{
				Kind:   KindMalformedRule,
				Line:   lineNo,
				Detail: fmt.Sprintf("invalid state header %q", trimmed),
			}
		}
		if trimmed == stateEOF || trimmed == stateEnd {
			return nil, &TemplateError{
				Kind:   KindMalformedRule,
				Line:   lineNo,
				Detail: fmt.Sprintf("%s is a reserved terminal marker, not a definable state", trimmed),
			}
		}
		if _, dup := t.states[trimmed]; dup {
			return nil, &TemplateError{
				Kind:   KindMalformedRule,
				Line:   lineNo,
				Detail: fmt.Sprintf("state %q defined twice", trimmed),
			}
		}
		current = trimmed
		t.states[current] = nil
		t.stateNames = append(t.stateNames, current)
	}

	if _, ok := t.states[stateStart]; !ok {
		return nil, &TemplateError{
			Kind:   KindMissingStartState,
			Detail: "template defines no Start state",
		}
	}

	for _, name := range t.stateNames {
		for _, r := range t.states[name] {
			next := r.action.Next
			if next == "" || next == stateEOF || next == stateEnd {
				continue
			}
			if _, ok := t.states[next]; !ok {
				return nil, &TemplateError{
					Kind:   KindUndefinedStateReference,
					Detail: fmt.Sprintf("state %q transitions to undefined state %q", name, next),
				}
			}
		}
	}

	return t, nil
}
