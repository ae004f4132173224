// Package progress defines a lightweight tracker that aggregates tick and
// phase counters of a running conductor so that callers can observe the
// engine without touching the state it drives.
package progress
