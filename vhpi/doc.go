// Package vhpi is a safe layer over the VHPI procedural interface of a VHDL
// simulator.
//
// A Runtime wraps one abi.Native backend: the cgo binding in package native
// when loaded into a real simulator, or the reference simulator in package
// sim. Everything runs on the simulator's thread, either at plugin startup or
// inside a callback.
//
// # Handles
//
// Queries return owned handles which the caller releases once. Handles
// delivered in callback data are borrowed and become null when the callback
// returns:
//
//	root := rt.Handle(abi.RootInst, nil)
//	defer root.Release()
//
//	clk := root.ByName("clk")
//	if clk.IsNull() {
//	    return // not found is not an error
//	}
//
//	for sig := range root.Each(abi.SigDecls) {
//	    fmt.Println(sig.Name())
//	    sig.Release()
//	}
//
// # Values
//
// GetValue negotiates buffer sizes with the simulator and decodes into one
// of the Value types; PutValue encodes and deposits or forces:
//
//	v, err := rt.GetValue(bus, abi.ObjTypeVal)
//	if vec, ok := v.(vhpi.LogicVec); ok {
//	    n, _ := logic.Vec(vec).Uint()
//	}
//	err = rt.PutValue(bus, vhpi.LogicVec(logic.FromUint(5, 8)), abi.DepositPropagate)
//
// # Callbacks
//
// Closures are kept in a token table; the token travels through the
// callback's user data and a single dispatcher looks the closure up again:
//
//	_, err := rt.RegisterAfterDelay(simtime.Of(10, simtime.Nanosecond), func(cb *vhpi.CbData) {
//	    fmt.Println("fired at", cb.Time)
//	})
//
// One-shot reasons retire their registration after firing. Persistent
// reasons stay registered until Registration.Cancel or Runtime.Close.
// Panics in callbacks are recovered and logged.
package vhpi
