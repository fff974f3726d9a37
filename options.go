package netcli

import (
	"log/slog"

	"github.com/alaineid/netcli-parse/registry"
	"github.com/alaineid/netcli-parse/textfsm"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a Service.
type Option func(*serviceConfig)

type serviceConfig struct {
	registry *registry.Registry
	logger   *slog.Logger
	tracer   trace.Tracer
	runOpts  []textfsm.RunOption
}

// WithRegistry sets the template registry used by Parse and ParseCommand.
// When unset, the Service uses the registry over the builtin embedded
// templates.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *serviceConfig) {
		c.registry = reg
	}
}

// WithLogger sets a custom logger for the service.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer; each parse then runs inside a
// span carrying the platform and command key. No spans are produced when
// unset.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = tracer
	}
}

// WithRunOptions sets engine run options applied to every execution, such as
// textfsm.WithMaxSteps for bounded latency or textfsm.WithFlushPolicy for
// the end-of-input behavior.
func WithRunOptions(opts ...textfsm.RunOption) Option {
	return func(c *serviceConfig) {
		c.runOpts = append(c.runOpts, opts...)
	}
}
