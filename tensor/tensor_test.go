// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-host/backend/cpu"
	"github.com/born-ml/born-host/tensor"
)

func TestPublicAPI(t *testing.T) {
	backend := cpu.New()
	defer backend.Release()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	y := backend.Sum(x, []int{1}, false)
	assert.Equal(t, "array([3, 7], dtype=float32)", y.String())

	dt, err := tensor.ParseDataType("int64")
	require.NoError(t, err)
	assert.Equal(t, tensor.Int64, dt)
	assert.Equal(t, tensor.Float32, tensor.Scalar(1, tensor.DefaultFloat).DType())
}
