package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/proconsult/onboard/internal/config"
)

func TestNewProvider_DisabledIsNoop(t *testing.T) {
	p, err := NewProvider(config.TracingConfig{Enabled: false, Exporter: "file"})
	require.NoError(t, err)
	require.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), "x")
	require.False(t, span.IsRecording())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "zipkin"})
	require.ErrorContains(t, err, "unsupported exporter type")
}

func TestNewProvider_FileExporterWritesSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "out.jsonl")
	p, err := NewProvider(config.TracingConfig{Enabled: true, Exporter: "file", FilePath: path, SampleRate: 1})
	require.NoError(t, err)
	require.True(t, p.Enabled())

	ctx, span := StartRequest(context.Background(), p.Tracer(), "POST", "/Registration/send-otp", "req-1")
	require.True(t, trace.SpanFromContext(ctx).SpanContext().IsValid())
	EndRequest(span, 200, nil)

	require.NoError(t, p.Shutdown(context.Background()))

	records := readRecords(t, path)
	require.Len(t, records, 1)
	require.Equal(t, "api.POST /Registration/send-otp", records[0].Name)
	require.Equal(t, "client", records[0].Kind)
	require.Equal(t, "OK", records[0].Status)
	require.Equal(t, "req-1", records[0].Attributes[AttrHTTPRequestID])
	require.EqualValues(t, 200, records[0].Attributes[AttrHTTPStatusCode])
}

func TestStartRequest_NilTracer(t *testing.T) {
	ctx := context.Background()
	got, span := StartRequest(ctx, nil, "GET", "/x", "id")
	require.Equal(t, ctx, got)
	require.False(t, span.IsRecording())
	EndRequest(span, 500, errors.New("boom"))
}

func TestEndRequest_RecordsError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	_, span := StartRequest(context.Background(), tp.Tracer("test"), "GET", "/Currency/GetAllCurrencies", "abc")
	EndRequest(span, 0, errors.New("Network error"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status.Code)
	require.Equal(t, "Network error", spans[0].Status.Description)
	for _, kv := range spans[0].Attributes {
		require.NotEqual(t, attribute.Key(AttrHTTPStatusCode), kv.Key, "status 0 is not recorded")
	}
}

func TestFileExporter_AppendsAndShutdownTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"existing"}`+"\n"), 0o600))

	exp, err := NewFileExporter(path)
	require.NoError(t, err)

	stub := tracetest.SpanStub{
		Name:      "api.GET /x",
		SpanKind:  trace.SpanKindClient,
		StartTime: time.Now(),
		EndTime:   time.Now().Add(50 * time.Millisecond),
		Status:    sdktrace.Status{Code: codes.Error, Description: "HTTP Error: 500"},
		Events: []sdktrace.Event{{
			Name:       "exception",
			Attributes: []attribute.KeyValue{attribute.String("exception.message", "HTTP Error: 500")},
		}},
	}
	require.NoError(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))
	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))
	require.Error(t, exp.ExportSpans(context.Background(), []sdktrace.ReadOnlySpan{stub.Snapshot()}))

	records := readRecords(t, path)
	require.Len(t, records, 2)
	require.Equal(t, "existing", records[0].Name)
	require.Equal(t, "ERROR", records[1].Status)
	require.Equal(t, []string{"HTTP Error: 500"}, records[1].Errors)
	require.Greater(t, records[1].DurationMs, 0.0)
}

func readRecords(t *testing.T, path string) []SpanRecord {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []SpanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec SpanRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	require.NoError(t, sc.Err())
	return out
}
