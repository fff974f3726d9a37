package textfsm

import (
	"fmt"
	"regexp"
	"strings"
)

// Reserved terminal markers usable as a rule's transition target.
const (
	stateStart = "Start"
	stateEOF   = "EOF"
	stateEnd   = "End"
)

// Action is the fixed set of flags a rule may combine. The combination is
// finite and is pattern-matched exhaustively by the engine.
type Action struct {
	Record   bool
	Clear    bool
	ClearAll bool
	Continue bool
	Error    bool
	ErrMsg   string

	// Next is the transition target: a named state, EOF, End, or empty to
	// remain in the current state.
	Next string
}

// Rule is one compiled line-matching rule: an anchored pattern, the capture
// group to value bindings derived from it, and an Action.
type Rule struct {
	pattern string
	re      *regexp.Regexp
	binds   []binding
	action  Action
}

// binding ties one capture group index of the rule's pattern to a value.
type binding struct {
	group int
	value *Value
}

// compileRule parses one rule line within a state. The pattern part may
// reference defined values via ${Name} or $Name placeholders; each expands
// to that value's named capture group before the whole pattern is compiled
// anchored to the full line.
func compileRule(line string, lineNo int, values map[string]*Value) (*Rule, error) {
	pattern := strings.TrimSpace(line)
	actionText := ""
	if idx := strings.LastIndex(pattern, " -> "); idx >= 0 {
		actionText = strings.TrimSpace(pattern[idx+len(" -> "):])
		pattern = strings.TrimSpace(pattern[:idx])
	}
	if pattern == "" {
		return nil, &TemplateError{Kind: KindMalformedRule, Line: lineNo, Detail: "rule has no pattern"}
	}

	expanded, err := expandPlaceholders(pattern, lineNo, values)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile("^(?:" + expanded + ")$")
	if err != nil {
		return nil, &TemplateError{
			Kind:   KindMalformedRule,
			Line:   lineNo,
			Detail: fmt.Sprintf("pattern does not compile: %v", err),
		}
	}

	action, err := parseAction(actionText, lineNo)
	if err != nil {
		return nil, err
	}

	r := &Rule{pattern: pattern, re: re, action: action}
	for i, name := range re.SubexpNames() {
		if v, ok := values[name]; ok {
			r.binds = append(r.binds, binding{group: i, value: v})
		}
	}
	return r, nil
}

// expandPlaceholders substitutes ${Name} and $Name tokens with the named
// capture group of the referenced value. $$ escapes a literal dollar sign; a
// dollar sign not followed by an identifier (such as an end-of-line anchor)
// passes through untouched.
func expandPlaceholders(pattern string, lineNo int, values map[string]*Value) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '$' {
			b.WriteByte('$')
			i++
			continue
		}

		name := ""
		braced := i+1 < len(pattern) && pattern[i+1] == '{'
		if braced {
			end := strings.IndexByte(pattern[i+2:], '}')
			if end < 0 {
				return "", &TemplateError{
					Kind:   KindMalformedRule,
					Line:   lineNo,
					Detail: "unterminated ${...} placeholder",
				}
			}
			name = pattern[i+2 : i+2+end]
			i += 2 + end
		} else {
			j := i + 1
			for j < len(pattern) && isIdentByte(pattern[j]) {
				j++
			}
			name = pattern[i+1 : j]
			i = j - 1
		}

		if name == "" {
			b.WriteByte('$')
			continue
		}
		v, ok := values[name]
		if !ok {
			return "", &TemplateError{
				Kind:   KindUndefinedValueReference,
				Line:   lineNo,
				Detail: fmt.Sprintf("rule references undefined value %q", name),
			}
		}
		b.WriteString("(?P<" + v.Name + ">" + v.Pattern + ")")
	}
	return b.String(), nil
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// parseAction parses the token sequence after "->". An empty action text
// yields the default action: no flags, remain in the current state, advance
// to the next input line. "Next" is accepted as the explicit spelling of
// that default.
func parseAction(text string, lineNo int) (Action, error) {
	var a Action
	if text == "" {
		return a, nil
	}

	// Error consumes the remainder of the action as its message.
	rest := text
	for rest != "" {
		tok, remainder := nextActionToken(rest)
		switch tok {
		case "Record":
			a.Record = true
		case "Clear":
			a.Clear = true
		case "Clearall":
			a.ClearAll = true
		case "Continue":
			a.Continue = true
		case "Next":
			// implicit default, nothing to set
		case "Error":
			a.Error = true
			msg := strings.TrimSpace(remainder)
			if len(msg) >= 2 && msg[0] == '"' && msg[len(msg)-1] == '"' {
				msg = msg[1 : len(msg)-1]
			}
			a.ErrMsg = msg
			remainder = ""
		default:
			if a.Next != "" || !identRE.MatchString(tok) {
				return Action{}, &TemplateError{
					Kind:   KindMalformedRule,
					Line:   lineNo,
					Detail: fmt.Sprintf("malformed action token %q", tok),
				}
			}
			if strings.TrimSpace(remainder) != "" {
				return Action{}, &TemplateError{
					Kind:   KindMalformedRule,
					Line:   lineNo,
					Detail: fmt.Sprintf("state name %q must be the last action token", tok),
				}
			}
			a.Next = tok
		}
		rest = strings.TrimSpace(remainder)
	}
	return a, nil
}

// nextActionToken splits off the leading action token, treating both
// whitespace and dots as separators so the classic dotted form
// ("Continue.Record") and the plain form ("Continue Record") both parse.
func nextActionToken(s string) (tok, rest string) {
	end := strings.IndexAny(s, " \t.")
	if end < 0 {
		return s, ""
	}
	return s[:end], strings.TrimLeft(s[end+1:], " \t.")
}
