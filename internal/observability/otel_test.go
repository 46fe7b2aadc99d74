package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/pawdesk/go-vet-backend/internal/config"
)

// saveGlobals restores the process-wide tracer provider and propagator after
// each test so cases stay independent.
func saveGlobals(t *testing.T) {
	t.Helper()
	tp, prop := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(prop)
	})
}

func enabledCfg() config.OTELConfig {
	return config.OTELConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		Insecure:    true,
		ServiceName: "go-vet-backend",
		SampleRatio: 1.0,
	}
}

func TestSetupOTel_DisabledIsNoOp(t *testing.T) {
	saveGlobals(t)
	before := otel.GetTracerProvider()

	shutdown, err := SetupOTel(context.Background(), config.OTELConfig{Enabled: false}, "dev")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Fatal("disabled setup must not replace the tracer provider")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("no-op shutdown: %v", err)
	}
}

func TestSetupOTel_InstallsProviderAndPropagator(t *testing.T) {
	saveGlobals(t)

	shutdown, err := SetupOTel(context.Background(), enabledCfg(), "v1.0.0")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); !ok {
		t.Fatalf("tracer provider = %T, want *sdktrace.TracerProvider", otel.GetTracerProvider())
	}

	// Propagation must round-trip the trace context.
	carrier := propagation.MapCarrier{}
	ctx, span := otel.Tracer("t").Start(context.Background(), "probe")
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	span.End()
	if carrier.Get("traceparent") == "" {
		t.Fatal("traceparent header was not injected")
	}
}

func TestSetupOTel_SecureEndpointUsesTLS(t *testing.T) {
	saveGlobals(t)

	cfg := enabledCfg()
	cfg.Insecure = false // exercises the TLS credential branch; nothing dials yet
	shutdown, err := SetupOTel(context.Background(), cfg, "v1.0.0")
	if err != nil {
		t.Fatalf("SetupOTel: %v", err)
	}
	_ = shutdown(context.Background())
}

func TestSetupOTel_ExporterFailure(t *testing.T) {
	saveGlobals(t)

	orig := exporterFactory
	t.Cleanup(func() { exporterFactory = orig })
	exporterFactory = func(context.Context, otlptrace.Client) (*otlptrace.Exporter, error) {
		return nil, errors.New("collector unreachable")
	}

	if _, err := SetupOTel(context.Background(), enabledCfg(), "v1.0.0"); err == nil {
		t.Fatal("expected exporter construction error")
	}
}

func TestSetupOTel_ResourceFailure(t *testing.T) {
	saveGlobals(t)

	orig := resourceFactory
	t.Cleanup(func() { resourceFactory = orig })
	resourceFactory = func(context.Context, string, string) (*resource.Resource, error) {
		return nil, errors.New("bad resource attributes")
	}

	if _, err := SetupOTel(context.Background(), enabledCfg(), "v1.0.0"); err == nil {
		t.Fatal("expected resource construction error")
	}
}
