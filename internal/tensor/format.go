package tensor

import (
	"strconv"
	"strings"
)

// String renders the tensor in its canonical text form, for example
//
//	array([[1, 2],
//	       [3, 4]], dtype=float32)
//
// A released tensor renders without touching its buffer.
func (r *RawTensor) String() string {
	if r.Released() {
		return "array(<released>, dtype=" + r.dtype.String() + ")"
	}

	var sb strings.Builder
	sb.WriteString("array(")
	if r.Rank() == 0 {
		sb.WriteString(r.formatElem(0))
	} else {
		r.writeDim(&sb, 0, 0, len("array("))
	}
	sb.WriteString(", dtype=")
	sb.WriteString(r.dtype.String())
	sb.WriteByte(')')
	return sb.String()
}

func (r *RawTensor) writeDim(sb *strings.Builder, dim, offset, indent int) {
	sb.WriteByte('[')
	n := r.shape[dim]
	last := dim == r.Rank()-1
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
			if last {
				sb.WriteByte(' ')
			} else {
				sb.WriteString(strings.Repeat("\n", r.Rank()-1-dim))
				sb.WriteString(strings.Repeat(" ", indent+dim+1))
			}
		}
		if last {
			sb.WriteString(r.formatElem(offset + i))
		} else {
			r.writeDim(sb, dim+1, offset+i*r.stride[dim], indent)
		}
	}
	sb.WriteByte(']')
}

func (r *RawTensor) formatElem(i int) string {
	switch r.dtype {
	case Bool:
		if r.AsBool()[i] {
			return "true"
		}
		return "false"
	case Float32:
		return strconv.FormatFloat(r.Float64At(i), 'g', -1, 32)
	case Float64:
		return strconv.FormatFloat(r.Float64At(i), 'g', -1, 64)
	case Int64:
		return strconv.FormatInt(r.AsInt64()[i], 10)
	default:
		return strconv.FormatInt(int64(r.Float64At(i)), 10)
	}
}
