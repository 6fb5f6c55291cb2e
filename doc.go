// Package vhpi is the root of a Go toolkit for writing VHPI plugins, the C
// procedural interface IEEE 1076 VHDL simulators expose to foreign code.
//
// This package holds no code; the work is done in its subpackages.
//
// # Architecture Overview
//
//	vhpi/                Module root (this overview)
//	├── abi/             Numeric VHPI enumerations and the Native backend interface
//	├── vhpi/            Handles, iterators, properties, values and callbacks
//	├── native/          cgo binding of abi.Native to the simulator's vhpi_* symbols
//	├── sim/             Reference simulator implementing abi.Native in Go
//	├── simtime/         64-bit simulation time and physical values
//	├── logic/           Nine-valued std_logic scalars and vectors
//	├── resource/        Token table that keeps callback closures alive
//	├── errors/          Structured errors and simulator diagnostics
//	└── cmd/vhpirun/     Command line runner and hierarchy browser for sim designs
//
// # Quick Start
//
// A plugin registers startup work and is built as a shared library:
//
//	func init() {
//	    native.OnStartup(func(rt *vhpi.Runtime) {
//	        root := rt.Handle(abi.RootInst, nil)
//	        defer root.Release()
//
//	        clk := root.ByName("clk")
//	        rt.RegisterCb(abi.CbValueChange, func(cb *vhpi.CbData) {
//	            v, _ := cb.Obj.GetValue(abi.LogicVal)
//	            rt.Printf("clk=%s at %s\n", v, cb.Time)
//	        }, vhpi.WithObject(clk))
//	    })
//	}
//
//	go build -buildmode=c-shared -o plugin.so .
//
// The same code runs without a simulator against package sim:
//
//	d, _ := sim.LoadDesignFile("design.yaml")
//	s, _ := sim.New(sim.Config{Design: d, Output: os.Stdout})
//	rt := vhpi.New(s)
//	defer rt.Close()
//	...
//	s.Run(ctx)
//
// # Threading
//
// VHPI is single threaded. Every call into a Runtime must happen on the
// simulator's thread, during plugin startup or inside a callback. Nothing in
// this module starts goroutines.
//
// # Memory Model
//
// Owned handles are released explicitly and exactly once; there are no
// finalizers. Value buffers handed to the simulator are pinned for the
// duration of the call and returned to a pool afterwards.
package vhpi
