package lockstep

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/lockstep/guard"
	"github.com/viant/lockstep/service/conductor"
	"gopkg.in/yaml.v3"
)

// Snapshot store vendors.
const (
	SnapshotMemory = "memory"
	SnapshotFs     = "fs"
)

// Config is a serialisable representation of the engine configuration. The
// zero-value of every nested field inherits its package default.
type Config struct {
	Conductor ConductorConfig `json:"conductor" yaml:"conductor"`
	Thread    ThreadConfig    `json:"thread" yaml:"thread"`
	Tracing   TracingConfig   `json:"tracing" yaml:"tracing"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Snapshot  SnapshotConfig  `json:"snapshot" yaml:"snapshot"`
}

type ConductorConfig struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Guard is either "checked" or "trusted".
	Guard string `json:"guard,omitempty" yaml:"guard,omitempty"`
	// Order is either "forward" or "inverse"; used by Run.
	Order string `json:"order,omitempty" yaml:"order,omitempty"`
	// Interval paces Run; zero runs ticks back to back.
	Interval time.Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
	// Ticks bounds Run; zero runs until the context is done.
	Ticks int `json:"ticks,omitempty" yaml:"ticks,omitempty"`
}

type ThreadConfig struct {
	LockOSThread bool `json:"lockOSThread,omitempty" yaml:"lockOSThread,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

type EventsConfig struct {
	Enabled     bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	QueueBuffer int  `json:"queueBuffer,omitempty" yaml:"queueBuffer,omitempty"`
}

type SnapshotConfig struct {
	Vendor   string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	BasePath string `json:"basePath,omitempty" yaml:"basePath,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Conductor: ConductorConfig{
			Guard: guard.ModeChecked,
			Order: string(conductor.OrderForward),
		},
		Tracing: TracingConfig{
			ServiceName:    "lockstep",
			ServiceVersion: "0.1.0",
		},
		Events: EventsConfig{
			QueueBuffer: 128,
		},
		Snapshot: SnapshotConfig{
			Vendor:   SnapshotMemory,
			BasePath: "/tmp/lockstep/snapshot",
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := guard.ValidateMode(c.Conductor.Guard); err != nil {
		return fmt.Errorf("conductor.guard: %w", err)
	}
	if _, err := conductor.ParseOrder(c.Conductor.Order); err != nil {
		return fmt.Errorf("conductor.order: %w", err)
	}
	if c.Conductor.Interval < 0 {
		return fmt.Errorf("conductor.interval must be >= 0")
	}
	if c.Conductor.Ticks < 0 {
		return fmt.Errorf("conductor.ticks must be >= 0")
	}
	if c.Events.Enabled && c.Events.QueueBuffer <= 0 {
		return fmt.Errorf("events.queueBuffer must be > 0")
	}
	switch strings.ToLower(c.Snapshot.Vendor) {
	case "", SnapshotMemory:
	case SnapshotFs:
		if c.Snapshot.BasePath == "" {
			return fmt.Errorf("snapshot.basePath is required for %q vendor", SnapshotFs)
		}
	default:
		return fmt.Errorf("unsupported snapshot vendor: %q", c.Snapshot.Vendor)
	}
	return nil
}

// LoadConfig reads a YAML configuration from URL on top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	return DecodeConfig(data)
}

// DecodeConfig parses YAML bytes on top of DefaultConfig.
func DecodeConfig(data []byte) (*Config, error) {
	ret := DefaultConfig()
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
