// Package thread provides the orchestrator-facing handle to one dedicated
// goroutine hosting a processor.
//
// Workers are registered as constructors before the thread is started; the
// constructors run inside the spawned goroutine, so a worker whose internal
// state is bound to that goroutine (for example one relying on
// runtime.LockOSThread) can be built safely.
package thread
