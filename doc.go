// Package lockstep provides a barrier-synchronized, double-phase state update
// engine.
//
// A fixed set of threads, each hosting its own workers on a dedicated
// goroutine, repeatedly read one shared state concurrently (the cycle phase)
// and then mutate it exclusively, one thread at a time (the apply phase),
// under the control of a single conductor:
//
//	srv, _ := lockstep.New(0)
//	srv.NewThread(func() worker.Worker[int] { return &counter{} })
//	srv.NewThread(func() worker.Worker[int] { return &counter{} })
//	srv.Start()
//	for i := 0; i < 3; i++ {
//		srv.Cycle()
//	}
//	fmt.Println(*srv.State())
//
// The Service façade wires the conductor with configuration, logging,
// tracing, tick events and state snapshots. The lower level building blocks
// live in the worker, service/thread and service/conductor packages.
package lockstep
