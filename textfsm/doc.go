// Package textfsm implements a template-driven parser for the semi-tabular
// text emitted by network device CLIs.
//
// A template has two sections. The first declares named value captures:
//
//	Value HOSTNAME (\S+)
//	Value Filldown VERSION (\S+)
//
// The second declares named states, each holding an ordered list of rules.
// A rule is a line pattern, optionally followed by an action:
//
//	Start
//	  ^${HOSTNAME} uptime is .*
//	  ^Configuration register is \S+ -> Record
//
// Compile turns template text into an immutable *Template. Run executes a
// compiled template against raw output text, producing ordered Records.
// A Template holds no per-run state and is safe for concurrent Runs.
//
// Rule patterns are anchored to the full line. Value placeholders (${NAME}
// or $NAME) expand to named capture groups. Rules within a state are tried
// top to bottom; the first match wins. Actions combine Record, Clear,
// Clearall, Continue, Error "msg" and at most one trailing state name, where
// EOF and End are reserved terminal markers.
package textfsm
