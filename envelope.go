package netcli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alaineid/netcli-parse/textfsm"
)

// successEnvelope is the JSON shape of a successful parse. Record fields
// keep the template's value-definition order via Record.MarshalJSON.
type successEnvelope struct {
	OK         bool             `json:"ok"`
	Platform   string           `json:"platform"`
	CommandKey string           `json:"commandKey"`
	Records    []textfsm.Record `json:"records"`
}

type errorEnvelope struct {
	OK    bool          `json:"ok"`
	Error envelopeError `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseJSON is Parse with the outcome rendered as a JSON envelope. It never
// fails: every error becomes a complete error envelope, never a partial
// result.
func (s *Service) ParseJSON(ctx context.Context, platform, commandKey, outputText string) string {
	res, err := s.Parse(ctx, platform, commandKey, outputText)
	return envelope(res, err)
}

// ParseCommandJSON is ParseCommand with a JSON envelope outcome.
func (s *Service) ParseCommandJSON(ctx context.Context, platform, command, outputText string) string {
	res, err := s.ParseCommand(ctx, platform, command, outputText)
	return envelope(res, err)
}

// ParseTemplateJSON is ParseTemplate with a JSON envelope outcome.
func (s *Service) ParseTemplateJSON(ctx context.Context, platform, commandKey, templateText, outputText string) string {
	res, err := s.ParseTemplate(ctx, platform, commandKey, templateText, outputText)
	return envelope(res, err)
}

func envelope(res *Result, err error) string {
	if err != nil {
		return ErrorEnvelope(errorCode(err), err.Error())
	}
	records := res.Records
	if records == nil {
		records = []textfsm.Record{}
	}
	out, merr := json.Marshal(successEnvelope{
		OK:         true,
		Platform:   res.Platform,
		CommandKey: res.CommandKey,
		Records:    records,
	})
	if merr != nil {
		return ErrorEnvelope(CodeInternalError, fmt.Sprintf("encoding envelope: %v", merr))
	}
	return string(out)
}

// ErrorEnvelope renders a complete error envelope for the given code and
// message. Exported for the C boundary, which must be able to produce an
// envelope even when a recovered panic leaves it nothing else to work with.
func ErrorEnvelope(code, message string) string {
	out, err := json.Marshal(errorEnvelope{Error: envelopeError{Code: code, Message: message}})
	if err != nil {
		// Unreachable for string inputs, but the boundary contract is that
		// an envelope always comes back.
		return `{"ok":false,"error":{"code":"InternalError","message":"encoding envelope"}}`
	}
	return string(out)
}
