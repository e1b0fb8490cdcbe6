// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - NumPy-compatible broadcasting for element-wise operations
//   - Multi-axis Sum, Mean and Max reductions
//   - A device queue that runs submitted work on a worker goroutine
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
//	    y := backend.Add(x, x)
//	    _ = backend.Synchronize()
//	}
//
// # Device queue
//
// Eval and Submit enqueue work and return immediately; the completion
// callback runs on the queue's worker goroutine. Commands run in
// submission order. Release drains the queue.
package cpu
