// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/born-host/internal/backend/cpu"
	"github.com/born-ml/born-host/internal/parallel"
	"github.com/born-ml/born-host/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Config controls how kernels split work across goroutines.
type Config = parallel.Config

// Compile-time checks.
var (
	_ tensor.Backend   = (*Backend)(nil)
	_ tensor.Evaluator = (*Backend)(nil)
)

// New creates a new CPU backend with the default parallel configuration.
func New() *Backend {
	return internalcpu.New()
}

// NewWithConfig creates a CPU backend with a custom parallel configuration.
func NewWithConfig(cfg Config) *Backend {
	return internalcpu.NewWithConfig(cfg)
}

// DefaultConfig returns the default parallel configuration.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}
