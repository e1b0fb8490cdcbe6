package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/born-ml/born-host/internal/tensor"
)

// MaxHeaderSize bounds the JSON header read from a file.
const MaxHeaderSize = 100 * 1024 * 1024

const metadataKey = "__metadata__"

type tensorEntry struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

var dtypeNames = map[tensor.DataType]string{
	tensor.Float32: "F32",
	tensor.Float64: "F64",
	tensor.Int32:   "I32",
	tensor.Int64:   "I64",
	tensor.Uint8:   "U8",
	tensor.Bool:    "BOOL",
}

func parseDType(name string) (tensor.DataType, bool) {
	for dt, n := range dtypeNames {
		if n == name {
			return dt, true
		}
	}
	return 0, false
}

// Write encodes arrays and metadata. Arrays are laid out in name order.
func Write(w io.Writer, arrays map[string]*tensor.RawTensor, metadata map[string]string) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	slices.Sort(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[metadataKey] = metadata
	}
	var offset int64
	for _, name := range names {
		raw := arrays[name]
		if raw.Released() {
			return &ValidationError{Tensor: name, Err: ErrInvalidTensor, Detail: "array has been released"}
		}
		shape := make([]int64, raw.Rank())
		for i, d := range raw.Shape() {
			shape[i] = int64(d)
		}
		size := int64(raw.ByteSize())
		header[name] = tensorEntry{
			DType:       dtypeNames[raw.DType()],
			Shape:       shape,
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, name := range names {
		if _, err := w.Write(arrays[name].Data()); err != nil {
			return fmt.Errorf("write tensor %s: %w", name, err)
		}
	}
	return nil
}

// Read decodes every array and the metadata from r.
func Read(r io.Reader) (map[string]*tensor.RawTensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}
	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse header: %w", err)
	}
	var metadata map[string]string
	if m, ok := raw[metadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, fmt.Errorf("parse metadata: %w", err)
		}
		delete(raw, metadataKey)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read tensor data: %w", err)
	}

	arrays := make(map[string]*tensor.RawTensor, len(raw))
	for name, msg := range raw {
		var entry tensorEntry
		if err := json.Unmarshal(msg, &entry); err != nil {
			return nil, nil, &ValidationError{Tensor: name, Err: ErrInvalidTensor, Detail: err.Error()}
		}
		t, err := decodeTensor(name, entry, data)
		if err != nil {
			return nil, nil, err
		}
		arrays[name] = t
	}
	return arrays, metadata, nil
}

func decodeTensor(name string, e tensorEntry, data []byte) (*tensor.RawTensor, error) {
	dtype, ok := parseDType(e.DType)
	if !ok {
		return nil, &ValidationError{Tensor: name, Err: ErrUnsupportedDType, Detail: e.DType}
	}

	start, end := e.DataOffsets[0], e.DataOffsets[1]
	if start < 0 || end < start || end > int64(len(data)) {
		return nil, &ValidationError{Tensor: name, Err: ErrOutOfBounds,
			Detail: fmt.Sprintf("offsets [%d, %d) with %d data bytes", start, end, len(data))}
	}
	if err := checkByteSize(e.Shape, dtype, end-start); err != nil {
		return nil, &ValidationError{Tensor: name, Err: ErrInvalidTensor, Detail: err.Error()}
	}

	shape := make(tensor.Shape, len(e.Shape))
	for i, d := range e.Shape {
		shape[i] = int(d)
	}
	t, err := tensor.NewRaw(shape, dtype, tensor.CPU)
	if err != nil {
		return nil, &ValidationError{Tensor: name, Err: ErrInvalidTensor, Detail: err.Error()}
	}
	copy(t.Data(), data[start:end])
	return t, nil
}

// checkByteSize verifies that shape holds exactly n bytes of dtype. The
// running product never exceeds n, so it cannot overflow.
func checkByteSize(shape []int64, dtype tensor.DataType, n int64) error {
	size := int64(dtype.Size())
	for _, d := range shape {
		if d < 0 {
			return fmt.Errorf("negative dimension %d in shape %v", d, shape)
		}
		if d != 0 && size > n/d {
			return fmt.Errorf("shape %v of %s exceeds %d data bytes", shape, dtype, n)
		}
		size *= d
	}
	if size != n {
		return fmt.Errorf("%d bytes for shape %v of %s", n, shape, dtype)
	}
	return nil
}

// Save writes arrays and metadata to the file at path.
func Save(path string, arrays map[string]*tensor.RawTensor, metadata map[string]string) (err error) {
	//nolint:gosec // G304: path is chosen by the caller
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, arrays, metadata)
}

// Load reads every array and the metadata from the file at path.
func Load(path string) (map[string]*tensor.RawTensor, map[string]string, error) {
	//nolint:gosec // G304: path is chosen by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
