package textfsm

import (
	"fmt"
	"regexp"
	"strings"
)

// Modifier is a set of flags attached to a value definition.
type Modifier uint8

const (
	// Required gates record commits: a row missing a Required value at the
	// point of a Record action is silently discarded.
	Required Modifier = 1 << iota

	// Key tags fields that together identify a row. It is carried into the
	// record's metadata and has no effect on matching or committing.
	Key

	// List accumulates captures into a sequence instead of overwriting.
	List

	// Filldown retains the value across commits and Clear actions until a
	// Clearall occurs.
	Filldown

	// Fillup propagates a capture backwards into earlier committed records
	// whose field is still empty.
	Fillup

	// Implicit excludes the value from emitted records; it exists only for
	// intermediate captures.
	Implicit
)

var modifierNames = map[string]Modifier{
	"Required": Required,
	"Key":      Key,
	"List":     List,
	"Filldown": Filldown,
	"Fillup":   Fillup,
	"Implicit": Implicit,
}

// Has reports whether m includes flag.
func (m Modifier) Has(flag Modifier) bool { return m&flag != 0 }

// Value is a compiled value descriptor: a capture name, its modifier flags
// and the regular expression body that rule placeholders expand to. Values
// are immutable after compilation.
type Value struct {
	Name    string
	Pattern string
	Mods    Modifier
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseValue compiles a single "Value <modifiers> <Name> (<regex>)" line.
// The regex body must be parenthesized and is validated by compiling it as a
// named capture group, the same form it takes when embedded into rules.
func parseValue(line string, lineNo int) (*Value, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "Value"))

	open := strings.Index(rest, "(")
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return nil, &TemplateError{
			Kind:   KindInvalidValueDefinition,
			Line:   lineNo,
			Detail: "value definition needs a parenthesized regular expression",
		}
	}
	body := rest[open+1 : len(rest)-1]

	head := strings.Fields(rest[:open])
	if len(head) == 0 {
		return nil, &TemplateError{
			Kind:   KindInvalidValueDefinition,
			Line:   lineNo,
			Detail: "value definition has no name",
		}
	}

	name := head[len(head)-1]
	if !identRE.MatchString(name) {
		return nil, &TemplateError{
			Kind:   KindInvalidValueDefinition,
			Line:   lineNo,
			Detail: fmt.Sprintf("invalid value name %q", name),
		}
	}

	var mods Modifier
	for _, tok := range head[:len(head)-1] {
		for _, piece := range strings.Split(tok, ",") {
			if piece == "" {
				continue
			}
			flag, ok := modifierNames[piece]
			if !ok {
				return nil, &TemplateError{
					Kind:   KindUnknownModifier,
					Line:   lineNo,
					Detail: fmt.Sprintf("unknown modifier %q for value %q", piece, name),
				}
			}
			mods |= flag
		}
	}

	// Validate the body in the exact shape rules will embed it.
	if _, err := regexp.Compile("(?P<" + name + ">" + body + ")"); err != nil {
		return nil, &TemplateError{
			Kind:   KindInvalidValueDefinition,
			Line:   lineNo,
			Detail: fmt.Sprintf("value %q regex does not compile: %v", name, err),
		}
	}

	return &Value{Name: name, Pattern: body, Mods: mods}, nil
}
