package logger

import (
	"context"
	"fmt"
	"os"
	"reflect"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var severities = map[LogLevel]otellog.Severity{
	LogLevelDebug: otellog.SeverityDebug,
	LogLevelInfo:  otellog.SeverityInfo,
	LogLevelWarn:  otellog.SeverityWarn,
	LogLevelError: otellog.SeverityError,
	LogLevelFatal: otellog.SeverityFatal,
}

// OTELLogger ships entries to an OTLP collector over gRPC. Entries below the
// configured level are dropped before they reach the batch processor.
type OTELLogger struct {
	logger      otellog.Logger
	provider    *sdklog.LoggerProvider
	minSeverity otellog.Severity
	exit        func(code int)
}

func initializeOtelLogger(opts Options) (Logger, error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(
		opts.Endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(provider)

	return newOTELLogger(provider, opts.ServiceName, opts.Level), nil
}

func newOTELLogger(provider *sdklog.LoggerProvider, serviceName string, level LogLevel) *OTELLogger {
	return &OTELLogger{
		logger:      provider.Logger(serviceName),
		provider:    provider,
		minSeverity: severities[ParseLevel(string(level))],
		exit:        os.Exit,
	}
}

func (l *OTELLogger) enabled(level LogLevel) bool {
	return severities[level] >= l.minSeverity
}

func (l *OTELLogger) Log(ctx context.Context, entry LogEntry) {
	if !l.enabled(entry.Level) {
		return
	}
	l.logger.Emit(ctx, toRecord(entry))

	if entry.Level == LogLevelFatal {
		// the batch processor would lose the entry on exit
		_ = l.provider.ForceFlush(ctx)
		l.exit(1)
	}
}

func toRecord(entry LogEntry) otellog.Record {
	var logRecord otellog.Record
	logRecord.SetTimestamp(entry.Timestamp)
	logRecord.SetBody(otellog.StringValue(entry.Message))
	logRecord.SetSeverityText(string(entry.Level))
	logRecord.SetSeverity(severities[entry.Level])

	attrs := make([]otellog.KeyValue, 0, len(entry.Attributes)+1)
	for key, value := range entry.Attributes {
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: toValue(value)})
	}
	if entry.Error != nil {
		attrs = append(attrs, otellog.String("error", entry.Error.Error()))
	}

	logRecord.AddAttributes(attrs...)
	return logRecord
}

// toValue keeps numeric attributes numeric, including named integer types
// such as product IDs, so they stay queryable in the collector.
func toValue(value any) otellog.Value {
	switch v := value.(type) {
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case float64:
		return otellog.Float64Value(v)
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return otellog.Int64Value(rv.Int())
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return otellog.Int64Value(int64(rv.Uint()))
	case reflect.Float32:
		return otellog.Float64Value(rv.Float())
	default:
		return otellog.StringValue(fmt.Sprintf("%v", value))
	}
}

func (l *OTELLogger) Shutdown(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}
