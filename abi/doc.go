// Package abi mirrors the VHPI procedural interface at the ABI level.
//
// It holds the integer constants of the C header (value formats, callback
// reasons, relations, properties, class kinds, put modes, control commands),
// Go mirrors of the value, callback-data and error-info records, and the
// Native interface that a simulator backend implements.
//
// Nothing in this package is safe to use on its own: references are raw,
// buffers are unowned, and no call checks the error channel. Package vhpi wraps
// it.
package abi
