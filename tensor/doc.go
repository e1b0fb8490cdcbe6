// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the native array model behind born-host.
//
// # Overview
//
// Arrays are RawTensor values: a data type, a shape and a reference-counted
// CPU buffer. Operations live on a Backend; the host runtime in package
// host converts loosely-typed host values into the arguments those
// operations expect.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/born-host/backend/cpu"
//	    "github.com/born-ml/born-host/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    defer backend.Release()
//
//	    x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	    y := backend.Sum(x, []int{1}, false)
//	    fmt.Println(y) // array([3, 7], dtype=float32)
//	}
//
// # Data Types
//
// Supported data types:
//   - Float32, Float64: floating point (Float32 is the default for scalars)
//   - Int32, Int64, Uint8: integers
//   - Bool: booleans
package tensor
