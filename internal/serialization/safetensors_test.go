package serialization

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/born-host/internal/tensor"
)

func TestWriteRead(t *testing.T) {
	w, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	mask, err := tensor.FromSlice([]bool{true, false}, tensor.Shape{2})
	require.NoError(t, err)
	step := tensor.Scalar(7, tensor.Int64)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, map[string]*tensor.RawTensor{
		"weight": w, "mask": mask, "step": step,
	}, map[string]string{"format": "pt"}))

	arrays, meta, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"format": "pt"}, meta)
	require.Len(t, arrays, 3)

	assert.Equal(t, tensor.Shape{2, 3}, arrays["weight"].Shape())
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, arrays["weight"].AsFloat32())
	assert.Equal(t, []bool{true, false}, arrays["mask"].AsBool())
	assert.Equal(t, 0, arrays["step"].Rank())
	assert.Equal(t, []int64{7}, arrays["step"].AsInt64())
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.safetensors")
	x, err := tensor.FromSlice([]int32{3, 1, 2}, tensor.Shape{3})
	require.NoError(t, err)

	require.NoError(t, Save(path, map[string]*tensor.RawTensor{"x": x}, nil))
	arrays, meta, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, meta)
	assert.Equal(t, []int32{3, 1, 2}, arrays["x"].AsInt32())
}

func TestWriteReleased(t *testing.T) {
	x := tensor.Scalar(1, tensor.Float32)
	x.Release()
	err := Write(&bytes.Buffer{}, map[string]*tensor.RawTensor{"x": x}, nil)
	assert.ErrorIs(t, err, ErrInvalidTensor)
}

func TestReadValidation(t *testing.T) {
	encode := func(header string, data []byte) *bytes.Buffer {
		var buf bytes.Buffer
		_ = binary.Write(&buf, binary.LittleEndian, uint64(len(header)))
		buf.WriteString(header)
		buf.Write(data)
		return &buf
	}

	tests := []struct {
		name   string
		header string
		data   []byte
		want   error
	}{
		{"OutOfBounds", `{"x":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}}`, make([]byte, 4), ErrOutOfBounds},
		{"SizeMismatch", `{"x":{"dtype":"F32","shape":[2],"data_offsets":[0,4]}}`, make([]byte, 4), ErrInvalidTensor},
		{"UnknownDType", `{"x":{"dtype":"F16","shape":[2],"data_offsets":[0,4]}}`, make([]byte, 4), ErrUnsupportedDType},
		{"HugeShape", `{"x":{"dtype":"F32","shape":[1099511627776],"data_offsets":[0,0]}}`, nil, ErrInvalidTensor},
		{"OverflowingShape", `{"x":{"dtype":"U8","shape":[4294967296,4294967296],"data_offsets":[0,0]}}`, nil, ErrInvalidTensor},
		{"NegativeDim", `{"x":{"dtype":"F32","shape":[-1],"data_offsets":[0,4]}}`, make([]byte, 4), ErrInvalidTensor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Read(encode(tt.header, tt.data))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "x", ve.Tensor)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("ZeroSizedDimension", func(t *testing.T) {
		arrays, _, err := Read(encode(`{"x":{"dtype":"F32","shape":[0,3],"data_offsets":[0,0]}}`, nil))
		require.NoError(t, err)
		assert.Equal(t, 0, arrays["x"].NumElements())
	})

	t.Run("HeaderTooLarge", func(t *testing.T) {
		var buf bytes.Buffer
		_ = binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1))
		_, _, err := Read(&buf)
		assert.ErrorIs(t, err, ErrHeaderTooLarge)
	})
}
