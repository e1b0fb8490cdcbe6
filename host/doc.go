// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package host exposes born arrays to a dynamically-typed host runtime.
//
// A Runtime is a table of named functions. Callers pass loosely-typed host
// values (nil, bool, numbers, strings, lists and array handles) and get
// host values back; arrays always travel as *Ref handles.
//
// # Basic Usage
//
//	rt := host.New()
//	defer rt.Close()
//
//	a, _ := rt.Call("array", []any{[]any{1.0, 2.0}, []any{3.0, 4.0}})
//	s, _ := rt.Call("sum", a, 1.0)
//	fmt.Println(s) // array([3, 7], dtype=float32)
//
// # Asynchronous evaluation
//
// "evalAsync" returns a *Future settled by the runtime's cooperative loop.
// The host drives the loop with Poll or waits with Await; neither blocks
// the device queue.
//
//	f, _ := rt.Call("evalAsync", a, s)
//	_, err := rt.Await(ctx, f.(*host.Future))
//
// # Errors
//
// Argument conversion failures are returned synchronously before any
// native work starts and wrap convert.ErrTypeMismatch or
// convert.ErrInvalidAxis. Failures inside the native library are returned
// as *NativeError, synchronously for immediate calls and as the rejection
// reason of the future for asynchronous ones.
package host
