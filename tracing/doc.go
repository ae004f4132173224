// Package tracing wraps OpenTelemetry so that the conductor can emit one span
// per tick and one child span per phase without the rest of the module
// importing the upstream packages. Tracing is opt-in: until Init is called the
// global provider is a no-op.
package tracing
