package netcli

import (
	"errors"

	"github.com/alaineid/netcli-parse/netdev"
	"github.com/alaineid/netcli-parse/registry"
	"github.com/alaineid/netcli-parse/textfsm"
)

// Sentinel errors raised by input validation at the service boundary.
var (
	// ErrInvalidInput indicates a required input string was empty.
	ErrInvalidInput = errors.New("required input is empty")

	// ErrInvalidEncoding indicates an input string was not valid UTF-8.
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")
)

// Error codes carried in the error envelope. Template compilation and
// execution codes are the textfsm error kinds; the rest cover the boundary
// and registry concerns.
const (
	CodeInvalidInput         = "InvalidInput"
	CodeInvalidInputEncoding = "InvalidInputEncoding"
	CodeUnknownPlatform      = "UnknownPlatform"
	CodeUnknownCommandKey    = "UnknownCommandKey"
	CodeTemplateNotFound     = "TemplateNotFound"
	CodeInternalError        = "InternalError"
)

// errorCode maps an error to its envelope code. Unknown errors are internal:
// the boundary never leaks an uncategorized failure without a code.
func errorCode(err error) string {
	var te *textfsm.TemplateError
	if errors.As(err, &te) {
		return te.Kind
	}
	var ee *textfsm.ExecError
	if errors.As(err, &ee) {
		return ee.Kind
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrInvalidEncoding):
		return CodeInvalidInputEncoding
	case errors.Is(err, netdev.ErrUnknownPlatform):
		return CodeUnknownPlatform
	case errors.Is(err, netdev.ErrUnknownCommandKey):
		return CodeUnknownCommandKey
	case errors.Is(err, registry.ErrTemplateNotFound):
		return CodeTemplateNotFound
	default:
		return CodeInternalError
	}
}
