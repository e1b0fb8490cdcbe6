package convert

import "github.com/born-ml/born-host/internal/tensor"

// NormalizeShapeArg returns the canonical list form of a shape argument.
// A list is returned as is; callers must not rely on it being a copy.
func NormalizeShapeArg(s IntOrShape) tensor.Shape {
	if s.single {
		return tensor.Shape{s.dim}
	}
	return s.shape
}

// NormalizeAxis maps axis from [-rank, rank) into [0, rank).
func NormalizeAxis(axis, rank int) (int, error) {
	a := axis
	if a < 0 {
		a += rank
	}
	if a < 0 || a >= rank {
		return 0, &AxisError{Axis: axis, Rank: rank}
	}
	return a, nil
}

// ResolveReduceAxes turns a reduction axis argument into concrete axes for
// an array of the given rank. Absent axes select every dimension in order.
// Listed axes keep their input order and duplicates are passed through for
// the native reduction to judge.
func ResolveReduceAxes(axes OptionalAxes, rank int) ([]int, error) {
	switch axes.kind {
	case AxesSingle:
		a, err := NormalizeAxis(axes.axis, rank)
		if err != nil {
			return nil, err
		}
		return []int{a}, nil
	case AxesList:
		out := make([]int, len(axes.list))
		for i, axis := range axes.list {
			a, err := NormalizeAxis(axis, rank)
			if err != nil {
				return nil, err
			}
			out[i] = a
		}
		return out, nil
	default:
		out := make([]int, rank)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
}
