package netcli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/alaineid/netcli-parse/textfsm"
)

const iosShowVersion = `Cisco IOS Software, C2960 Software (C2960-LANBASEK9-M), Version 15.0(2)SE4, RELEASE SOFTWARE (fc1)
router1 uptime is 5 weeks, 2 days, 1 hour
Configuration register is 0x2102
`

// quietService returns a Service that keeps test output clean.
func quietService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}, opts...)
	return New(opts...)
}

func TestServiceParse(t *testing.T) {
	ctx := context.Background()

	t.Run("builtin template parses", func(t *testing.T) {
		svc := quietService(t)
		res, err := svc.Parse(ctx, "cisco_ios", "show_version", iosShowVersion)
		require.NoError(t, err)
		assert.Equal(t, "cisco_ios", res.Platform)
		assert.Equal(t, "show_version", res.CommandKey)
		require.Len(t, res.Records, 1)
		rec := res.Records[0]
		assert.Equal(t, "15.0(2)SE4", rec.String("VERSION"))
		assert.Equal(t, "router1", rec.String("HOSTNAME"))
		assert.Equal(t, "0x2102", rec.String("CONFIG_REGISTER"))
	})

	t.Run("platform aliases resolve to slugs", func(t *testing.T) {
		svc := quietService(t)
		res, err := svc.Parse(ctx, "ios", "show_version", iosShowVersion)
		require.NoError(t, err)
		assert.Equal(t, "cisco_ios", res.Platform)
	})

	t.Run("raw command is normalized", func(t *testing.T) {
		svc := quietService(t)
		res, err := svc.ParseCommand(ctx, "IOS", "show  version", iosShowVersion)
		require.NoError(t, err)
		assert.Equal(t, "show_version", res.CommandKey)
	})

	t.Run("empty inputs rejected", func(t *testing.T) {
		svc := quietService(t)
		_, err := svc.Parse(ctx, "", "show_version", "text")
		require.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Parse(ctx, "cisco_ios", "", "text")
		require.ErrorIs(t, err, ErrInvalidInput)
		_, err = svc.Parse(ctx, "cisco_ios", "show_version", "")
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid encoding rejected", func(t *testing.T) {
		svc := quietService(t)
		_, err := svc.Parse(ctx, "cisco_ios", "show_version", "ok\nbad \xff\xfe line\n")
		require.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("unknown identifiers rejected", func(t *testing.T) {
		svc := quietService(t)
		_, err := svc.Parse(ctx, "ms_dos", "show_version", "text")
		require.Error(t, err)
		assert.Equal(t, CodeUnknownPlatform, errorCode(err))

		_, err = svc.Parse(ctx, "cisco_ios", "show_magic", "text")
		require.Error(t, err)
		assert.Equal(t, CodeUnknownCommandKey, errorCode(err))
	})

	t.Run("known pair without a template", func(t *testing.T) {
		svc := quietService(t)
		_, err := svc.Parse(ctx, "drivenets_dnos", "show_version", "text")
		require.Error(t, err)
		assert.Equal(t, CodeTemplateNotFound, errorCode(err))
	})
}

func TestServiceParseTemplate(t *testing.T) {
	ctx := context.Background()
	svc := quietService(t)

	t.Run("external template", func(t *testing.T) {
		res, err := svc.ParseTemplate(ctx, "cisco_ios", "show_version",
			"Value Name (\\S+)\n\nStart\n  ^Host: ${Name} -> Record\n",
			"Host: r1\nHost: r2\n")
		require.NoError(t, err)
		require.Len(t, res.Records, 2)
		assert.Equal(t, "r1", res.Records[0].String("Name"))
		assert.Equal(t, "r2", res.Records[1].String("Name"))
	})

	t.Run("compile failure carries the template error kind", func(t *testing.T) {
		_, err := svc.ParseTemplate(ctx, "p", "c", "Main\n  ^.*\n", "text")
		require.Error(t, err)
		assert.Equal(t, "MissingStartState", errorCode(err))
	})

	t.Run("non-terminating template is cut off", func(t *testing.T) {
		// A bare Continue rule re-evaluates the same line forever; the
		// default step budget turns that into an error instead of a hang.
		_, err := svc.ParseTemplate(ctx, "p", "c",
			"Start\n  ^.* -> Continue\n", "spin\n")
		require.Error(t, err)
		assert.Equal(t, "StepLimitExceeded", errorCode(err))
	})

	t.Run("step budget can be overridden", func(t *testing.T) {
		tight := quietService(t, WithRunOptions(textfsm.WithMaxSteps(1)))
		_, err := tight.ParseTemplate(ctx, "p", "c",
			"Value A (\\S+)\n\nStart\n  ^${A}\n  ^x -> Record\n", "a\nb\n")
		require.Error(t, err)
		assert.Equal(t, "StepLimitExceeded", errorCode(err))
	})

	t.Run("explicit error action", func(t *testing.T) {
		_, err := svc.ParseTemplate(ctx, "p", "c",
			"Start\n  ^%% -> Error \"truncated output\"\n", "%%\n")
		require.Error(t, err)
		assert.Equal(t, "TemplateExplicitError", errorCode(err))
	})
}

func TestServiceJSONEnvelopes(t *testing.T) {
	ctx := context.Background()
	svc := quietService(t)

	t.Run("success envelope shape and order", func(t *testing.T) {
		out := svc.ParseTemplateJSON(ctx, "cisco_ios", "show_version",
			"Value Name (\\S+)\n\nStart\n  ^Host: ${Name} -> Record\n",
			"Host: r1\nHost: r2\n")
		assert.Equal(t,
			`{"ok":true,"platform":"cisco_ios","commandKey":"show_version","records":[{"Name":"r1"},{"Name":"r2"}]}`,
			out)
	})

	t.Run("error envelope shape", func(t *testing.T) {
		out := svc.ParseJSON(ctx, "ms_dos", "show_version", "text")
		var v struct {
			OK    bool `json:"ok"`
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.False(t, v.OK)
		assert.Equal(t, CodeUnknownPlatform, v.Error.Code)
		assert.NotEmpty(t, v.Error.Message)
	})

	t.Run("repeat runs are byte identical", func(t *testing.T) {
		a := svc.ParseJSON(ctx, "cisco_ios", "show_version", iosShowVersion)
		b := svc.ParseJSON(ctx, "cisco_ios", "show_version", iosShowVersion)
		assert.Equal(t, a, b)
	})

	t.Run("no records still yields a complete envelope", func(t *testing.T) {
		out := svc.ParseJSON(ctx, "cisco_ios", "show_version", "nothing matches here\n")
		var v map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.Equal(t, true, v["ok"])
		assert.Equal(t, []any{}, v["records"])
	})

	t.Run("command json normalizes", func(t *testing.T) {
		out := svc.ParseCommandJSON(ctx, "ios", "show version", iosShowVersion)
		var v map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &v))
		assert.Equal(t, "cisco_ios", v["platform"])
		assert.Equal(t, "show_version", v["commandKey"])
	})
}

func TestServiceTracing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	svc := quietService(t, WithTracer(tp.Tracer("netcli-test")))

	_ = svc.ParseJSON(context.Background(), "cisco_ios", "show_version", iosShowVersion)
	_ = svc.ParseJSON(context.Background(), "drivenets_dnos", "show_version", "text")

	spans := sr.Ended()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, "netcli.parse", span.Name())
	}
	// The failed parse records its error on the span.
	assert.NotEmpty(t, spans[1].Events())
}

func TestBuiltinRegistryShared(t *testing.T) {
	assert.Same(t, BuiltinRegistry(), BuiltinRegistry())
}

func TestErrorEnvelope(t *testing.T) {
	out := ErrorEnvelope("TemplateNotFound", `no template for "x"`)
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, false, v["ok"])
}
