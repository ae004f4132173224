// Package idgen wraps the UUID generator used for thread identifiers so that
// it can be stubbed in tests. Callers should treat identifiers as opaque
// strings.
package idgen
