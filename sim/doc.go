// Package sim is a small event driven VHDL simulator that implements
// abi.Native in process.
//
// It elaborates a Design (usually loaded from YAML) into a hierarchy of
// regions and signals, runs stimulus and clock transactions in delta cycles,
// and fires VHPI callbacks with the same ownership rules a real simulator
// applies: handles in callback data are borrowed, iterators free themselves
// when exhausted, and removing a callback frees its handle.
//
// # Main Types
//
//   - Design: hierarchy, types, stimulus and clocks
//   - Simulator: the abi.Native implementation and the scheduler
//   - Stats: handle and callback bookkeeping for ownership checks
//
// # Thread Safety
//
// A Simulator is NOT safe for concurrent use. Callbacks run on the goroutine
// that called Run.
//
// # Example
//
//	d, _ := sim.LoadDesignFile("counter.yaml")
//	s, _ := sim.New(sim.Config{Design: d, Output: os.Stdout})
//	rt := vhpi.New(s)
//	defer rt.Close()
//	// register callbacks
//	_ = s.Run(ctx)
//
// # Fault Injection
//
// Config.Faults makes named entry points fail with an Error diagnostic, which
// exercises a client's failure paths without a real simulator.
package sim
