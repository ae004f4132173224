package lockstep

import (
	"github.com/rs/zerolog"
	"github.com/viant/lockstep/progress"
	"github.com/viant/lockstep/service/event"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service.
type Option func(o *options)

type options struct {
	config        *Config
	logger        zerolog.Logger
	onProgress    func(progress.Progress)
	onTick        func(*event.Event[event.Tick])
	traceExporter sdktrace.SpanExporter
}

// WithConfig replaces DefaultConfig.
func WithConfig(config *Config) Option {
	return func(o *options) {
		if config == nil {
			o.config = nil
			return
		}
		cfg := *config
		o.config = &cfg
	}
}

// WithLogger sets the logger shared by the conductor, threads and listeners.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProgressListener registers a callback invoked after every tick.
func WithProgressListener(listener func(progress.Progress)) Option {
	return func(o *options) {
		o.onProgress = listener
	}
}

// WithTickListener enables tick events and consumes them with listener.
func WithTickListener(listener func(*event.Event[event.Tick])) Option {
	return func(o *options) {
		o.onTick = listener
	}
}

// WithTracing enables tracing with the stdout exporter. If outputFile is
// empty spans are written to os.Stdout.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(o *options) {
		o.ensureConfig()
		o.config.Tracing = TracingConfig{
			Enabled:        true,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}
	}
}

// WithTracingExporter enables tracing with a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.ensureConfig()
		o.config.Tracing.Enabled = true
		o.config.Tracing.ServiceName = serviceName
		o.config.Tracing.ServiceVersion = serviceVersion
		o.traceExporter = exporter
	}
}

func (o *options) ensureConfig() {
	if o.config == nil {
		o.config = DefaultConfig()
	}
}
