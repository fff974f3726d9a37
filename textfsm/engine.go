package textfsm

import (
	"bufio"
	"fmt"
	"strings"
)

// FlushPolicy selects what happens to a non-empty, uncommitted working row
// when the run reaches end of input (or an EOF transition) without an
// explicit Record.
type FlushPolicy int

const (
	// FlushDiscard drops the uncommitted row. This is the default: a
	// template that wants its final row committed says so with a rule
	// transitioning to EOF after a Record.
	FlushDiscard FlushPolicy = iota

	// FlushCommit commits the row through the normal Required gate.
	FlushCommit
)

// RunOption configures a single execution of a compiled template.
type RunOption func(*runConfig)

type runConfig struct {
	flush    FlushPolicy
	maxSteps int
}

// WithFlushPolicy sets the end-of-input policy for the run.
func WithFlushPolicy(p FlushPolicy) RunOption {
	return func(c *runConfig) { c.flush = p }
}

// WithMaxSteps caps the total number of rule evaluations in the run. A
// template whose rules perpetually re-trigger Continue on the same line is a
// legitimate non-terminating template; the cap is the caller's safety net
// against such template/input combinations. Zero means no cap.
func WithMaxSteps(n int) RunOption {
	return func(c *runConfig) { c.maxSteps = n }
}

// Run executes the template against output text, line by line, and returns
// the committed records in emission order. Input lines are taken verbatim;
// one sentinel empty line is evaluated after real input is exhausted, and
// only rules transitioning to EOF are eligible to match it, so templates can
// key final-row rules off end of input without ordinary rules firing an
// extra time. Failures (an explicit Error action, or an exceeded step
// budget) are returned as *ExecError.
func (t *Template) Run(text string, opts ...RunOption) ([]Record, error) {
	var cfg runConfig
	for _, o := range opts {
		o(&cfg)
	}

	e := &engine{tmpl: t, cfg: cfg, state: stateStart, row: make(map[string]any)}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		stop, err := e.step(sc.Text(), lineNo, false)
		if err != nil {
			return nil, err
		}
		switch stop {
		case stopAtEnd:
			return e.done(), nil
		case stopAtEOF:
			return e.finish()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("textfsm: reading input: %w", err)
	}

	// End-of-input sentinel.
	stop, err := e.step("", lineNo+1, true)
	if err != nil {
		return nil, err
	}
	if stop == stopAtEnd {
		return e.done(), nil
	}
	return e.finish()
}

type stopKind int

const (
	stopNone stopKind = iota
	stopAtEOF
	stopAtEnd
)

// engine is the per-run mutable state: current state name, working row and
// accumulated records. It is never shared between runs.
type engine struct {
	tmpl    *Template
	cfg     runConfig
	state   string
	row     map[string]any
	records []Record
	steps   int
}

// step evaluates one physical input line. Continue actions loop here,
// re-evaluating the same line from the top of the (possibly changed) current
// state without consuming another line. When sentinel is set the line is the
// end-of-input marker and only EOF-targeting rules may match it.
func (e *engine) step(line string, lineNo int, sentinel bool) (stopKind, error) {
	for {
		if e.cfg.maxSteps > 0 && e.steps >= e.cfg.maxSteps {
			return stopNone, &ExecError{
				Kind:    KindStepLimitExceeded,
				Line:    lineNo,
				State:   e.state,
				Message: fmt.Sprintf("run exceeded %d rule evaluations", e.cfg.maxSteps),
			}
		}
		e.steps++

		rule, loc := e.match(line, sentinel)
		if rule == nil {
			// No rule matched: the line is left unconsumed and the run
			// advances with no state change.
			return stopNone, nil
		}

		for _, b := range rule.binds {
			if loc[2*b.group] < 0 {
				continue
			}
			e.capture(b.value, line[loc[2*b.group]:loc[2*b.group+1]])
		}

		a := rule.action
		if a.Error {
			msg := a.ErrMsg
			if msg == "" {
				msg = "error action triggered"
			}
			return stopNone, &ExecError{
				Kind:    KindTemplateExplicitError,
				Line:    lineNo,
				State:   e.state,
				Message: msg,
			}
		}

		if a.ClearAll {
			e.clear(true)
		} else if a.Clear {
			e.clear(false)
		}
		if a.Record {
			e.commit()
			if !a.ClearAll {
				e.clear(false)
			}
		}

		switch a.Next {
		case stateEnd:
			return stopAtEnd, nil
		case stateEOF:
			return stopAtEOF, nil
		case "":
		default:
			e.state = a.Next
		}

		if !a.Continue {
			return stopNone, nil
		}
	}
}

// match finds the first rule of the current state whose pattern matches the
// line. Rule order within a state is load-bearing: first match wins. On the
// sentinel pass only rules transitioning to EOF are considered.
func (e *engine) match(line string, sentinel bool) (*Rule, []int) {
	for _, r := range e.tmpl.states[e.state] {
		if sentinel && r.action.Next != stateEOF {
			continue
		}
		if loc := r.re.FindStringSubmatchIndex(line); loc != nil {
			return r, loc
		}
	}
	return nil, nil
}

// capture binds one captured group into the working row. List values append,
// scalars overwrite. A Fillup capture additionally back-fills earlier
// committed records until it meets a record whose field is already set.
func (e *engine) capture(v *Value, s string) {
	if v.Mods.Has(List) {
		prev, _ := e.row[v.Name].([]string)
		e.row[v.Name] = append(prev, s)
	} else {
		e.row[v.Name] = s
	}

	if v.Mods.Has(Fillup) && !v.Mods.Has(List) && !v.Mods.Has(Implicit) {
		for i := len(e.records) - 1; i >= 0; i-- {
			if prev, _ := e.records[i].fields[v.Name].(string); prev != "" {
				break
			}
			e.records[i].fields[v.Name] = s
		}
	}
}

// clear resets the working row. Filldown values survive an ordinary clear
// and keep their last captured value; only a full clear (Clearall) resets
// them too.
func (e *engine) clear(all bool) {
	for name, v := range e.tmpl.valueByName {
		if !all && v.Mods.Has(Filldown) {
			continue
		}
		delete(e.row, name)
	}
}

// commit appends a snapshot of the working row to the output, gated on every
// Required value being non-empty. A row failing the gate is discarded
// silently; that is sanctioned behavior, not an error. Implicit values are
// omitted from the snapshot.
func (e *engine) commit() {
	for _, v := range e.tmpl.values {
		if !v.Mods.Has(Required) {
			continue
		}
		switch cur := e.row[v.Name].(type) {
		case string:
			if cur == "" {
				return
			}
		case []string:
			if len(cur) == 0 {
				return
			}
		default:
			return
		}
	}

	rec := Record{fields: make(map[string]any)}
	for _, v := range e.tmpl.values {
		if v.Mods.Has(Implicit) {
			continue
		}
		rec.names = append(rec.names, v.Name)
		if v.Mods.Has(Key) {
			rec.keys = append(rec.keys, v.Name)
		}
		if v.Mods.Has(List) {
			cur, _ := e.row[v.Name].([]string)
			out := make([]string, len(cur))
			copy(out, cur)
			rec.fields[v.Name] = out
		} else {
			cur, _ := e.row[v.Name].(string)
			rec.fields[v.Name] = cur
		}
	}
	e.records = append(e.records, rec)
}

// finish applies the end-of-input flush policy and returns the output.
func (e *engine) finish() ([]Record, error) {
	if e.cfg.flush == FlushCommit && len(e.row) > 0 {
		e.commit()
	}
	return e.done(), nil
}

// done returns the accumulated records, never nil.
func (e *engine) done() []Record {
	if e.records == nil {
		return []Record{}
	}
	return e.records
}
