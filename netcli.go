package netcli

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/alaineid/netcli-parse/netdev"
	"github.com/alaineid/netcli-parse/registry"
	"github.com/alaineid/netcli-parse/textfsm"
)

// Result is a successful parse: the resolved identifiers and the committed
// records in emission order.
type Result struct {
	Platform   string
	CommandKey string
	Records    []textfsm.Record
}

// defaultMaxSteps bounds rule evaluations per run. The engine itself has no
// cap, but the service fronts untrusted templates (notably through the C
// boundary), so a run that would spin on a self-matching Continue rule fails
// with StepLimitExceeded instead of hanging the caller. Override, or disable
// with WithRunOptions(textfsm.WithMaxSteps(0)).
const defaultMaxSteps = 1 << 20

// Service ties the template registry and the parsing engine together behind
// one boundary. A Service is immutable after New and safe for concurrent
// use.
type Service struct {
	registry *registry.Registry
	logger   *slog.Logger
	tracer   trace.Tracer
	runOpts  []textfsm.RunOption
}

// New creates a Service. Without options it parses with the builtin
// embedded templates and logs through slog.Default().
func New(opts ...Option) *Service {
	var cfg serviceConfig
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = BuiltinRegistry()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Service{
		registry: cfg.registry,
		logger:   cfg.logger,
		tracer:   cfg.tracer,
		// Caller options come after the default so they win.
		runOpts: append([]textfsm.RunOption{textfsm.WithMaxSteps(defaultMaxSteps)}, cfg.runOpts...),
	}
}

// Parse parses raw device output for an already-normalized platform
// identifier and command key, looking the template up in the registry.
func (s *Service) Parse(ctx context.Context, platform, commandKey, outputText string) (*Result, error) {
	if err := validateInputs(map[string]string{
		"platform":    platform,
		"command_key": commandKey,
		"output_text": outputText,
	}); err != nil {
		return nil, err
	}

	p, err := netdev.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	ck, err := netdev.ParseCommandKey(commandKey)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, p.Slug(), ck.Slug(), outputText, nil)
}

// ParseCommand is Parse for a raw command string as typed at the device
// prompt; the command is normalized to a command key first.
func (s *Service) ParseCommand(ctx context.Context, platform, command, outputText string) (*Result, error) {
	if err := validateInputs(map[string]string{
		"platform":    platform,
		"command":     command,
		"output_text": outputText,
	}); err != nil {
		return nil, err
	}

	p, err := netdev.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	ck, err := netdev.ParseCommandKey(command)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, p.Slug(), ck.Slug(), outputText, nil)
}

// ParseTemplate parses output with an externally supplied template instead
// of a registry lookup. The platform and command key are echoed into the
// result untouched.
func (s *Service) ParseTemplate(ctx context.Context, platform, commandKey, templateText, outputText string) (*Result, error) {
	if err := validateInputs(map[string]string{
		"platform":      platform,
		"command_key":   commandKey,
		"template_text": templateText,
		"output_text":   outputText,
	}); err != nil {
		return nil, err
	}
	return s.run(ctx, platform, commandKey, outputText, &templateText)
}

// run resolves the template, executes it and assembles the Result. When
// templateText is non-nil it is compiled directly; otherwise the registry
// supplies the compiled template.
func (s *Service) run(ctx context.Context, platform, commandKey, outputText string, templateText *string) (result *Result, err error) {
	runID := uuid.New().String()
	start := time.Now()

	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "netcli.parse", trace.WithAttributes(
			attribute.String("netcli.platform", platform),
			attribute.String("netcli.command_key", commandKey),
			attribute.String("netcli.run_id", runID),
		))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, errorCode(err))
			}
			span.End()
		}()
	}

	var tmpl *textfsm.Template
	if templateText != nil {
		tmpl, err = textfsm.Compile(*templateText)
	} else {
		tmpl, err = s.registry.Lookup(ctx, platform, commandKey)
	}
	if err != nil {
		s.logger.Warn("template resolution failed",
			"run_id", runID, "platform", platform, "command_key", commandKey, "error", err)
		return nil, err
	}

	records, err := tmpl.Run(outputText, s.runOpts...)
	if err != nil {
		s.logger.Warn("parse failed",
			"run_id", runID, "platform", platform, "command_key", commandKey, "error", err)
		return nil, err
	}

	s.logger.Debug("parse completed",
		"run_id", runID,
		"platform", platform,
		"command_key", commandKey,
		"records", len(records),
		"duration", time.Since(start))

	return &Result{Platform: platform, CommandKey: commandKey, Records: records}, nil
}

// validateInputs rejects empty or non-UTF-8 inputs before any work happens.
func validateInputs(inputs map[string]string) error {
	// Empty checks first so a missing input reports as missing, not as an
	// encoding problem.
	for _, field := range []string{"platform", "command", "command_key", "template_text", "output_text"} {
		v, ok := inputs[field]
		if !ok {
			continue
		}
		if v == "" {
			return fmt.Errorf("%w: %s", ErrInvalidInput, field)
		}
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: %s", ErrInvalidEncoding, field)
		}
	}
	return nil
}
