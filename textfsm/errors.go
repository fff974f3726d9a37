package textfsm

import "fmt"

// Error kinds raised while compiling a template. A compilation error is fatal
// to that template; a partially compiled template is never returned.
const (
	KindInvalidValueDefinition  = "InvalidValueDefinition"
	KindUnknownModifier         = "UnknownModifier"
	KindDuplicateValueName      = "DuplicateValueName"
	KindMissingStartState       = "MissingStartState"
	KindUndefinedValueReference = "UndefinedValueReference"
	KindUndefinedStateReference = "UndefinedStateReference"
	KindMalformedRule           = "MalformedRule"
)

// Error kinds raised while executing a compiled template against input text.
const (
	KindTemplateExplicitError = "TemplateExplicitError"
	KindStepLimitExceeded     = "StepLimitExceeded"
)

// TemplateError describes a failure to compile template text. Line is the
// 1-based line number within the template source, or 0 when the error is not
// tied to a single line (e.g. a missing Start state).
type TemplateError struct {
	Kind   string
	Line   int
	Detail string
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("textfsm: template line %d: %s: %s", e.Line, e.Kind, e.Detail)
	}
	return fmt.Sprintf("textfsm: %s: %s", e.Kind, e.Detail)
}

// Is matches two TemplateErrors by Kind, so callers can probe for a category
// with errors.Is without caring about line numbers or detail text.
func (e *TemplateError) Is(target error) bool {
	t, ok := target.(*TemplateError)
	return ok && t.Kind == e.Kind
}

// ExecError describes a failure during execution: either an explicit Error
// action in the template, or the run exceeding its configured step budget.
// Line is the 1-based input line being evaluated and State the automaton
// state active at the point of failure.
type ExecError struct {
	Kind    string
	Line    int
	State   string
	Message string
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("textfsm: input line %d, state %s: %s: %s", e.Line, e.State, e.Kind, e.Message)
}

// Is matches two ExecErrors by Kind.
func (e *ExecError) Is(target error) bool {
	t, ok := target.(*ExecError)
	return ok && t.Kind == e.Kind
}
