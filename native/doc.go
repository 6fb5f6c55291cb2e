// Package native binds abi.Native to the vhpi_* functions of the simulator
// that loads the plugin. It requires cgo.
//
// Build the plugin as a shared library and register startup work from an init
// function; the simulator finds the vhpi_startup_routines table this package
// exports:
//
//	package main
//
//	import (
//	    "github.com/wippyai/vhpi/native"
//	    "github.com/wippyai/vhpi/vhpi"
//	)
//
//	func init() {
//	    native.OnStartup(func(rt *vhpi.Runtime) {
//	        rt.RegisterCb(abi.CbStartOfSimulation, func(*vhpi.CbData) {
//	            rt.Printf("hello from Go\n")
//	        })
//	    })
//	}
//
//	func main() {}
//
//	go build -buildmode=c-shared -o plugin.so .
//
// Handles are passed through as integers and never dereferenced in Go.
// Callback registrations all use one C trampoline that forwards to the
// dispatcher bound with Bind; the time and value records given to
// vhpi_register_cb are allocated in C and freed when the callback is removed
// or its handle released.
//
// On macOS the vhpi_* symbols are resolved when the simulator loads the
// library (-undefined dynamic_lookup).
//
// The package tests link against a small C simulator in stub.c that provides
// the vhpi_* symbols in process:
//
//	go test -tags vhpistub ./native
package native
