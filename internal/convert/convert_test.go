package convert

import (
	"testing"

	"github.com/born-ml/born-host/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRef struct {
	obj  any
	live bool
}

func (r fakeRef) Native() (any, bool) { return r.obj, r.live }

func TestPrimitives(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		for _, v := range []any{3.0, 3, int64(-7), float32(2)} {
			_, ok := Int.From(v)
			assert.True(t, ok, "%T(%v)", v, v)
		}
		for _, v := range []any{3.5, true, "3", nil, float64(1 << 40)} {
			_, ok := Int.From(v)
			assert.False(t, ok, "%T(%v)", v, v)
		}
	})

	t.Run("FloatRejectsBool", func(t *testing.T) {
		_, ok := Float.From(true)
		assert.False(t, ok)
		f, ok := Float.From(2)
		require.True(t, ok)
		assert.Equal(t, 2.0, f)
	})

	t.Run("DataType", func(t *testing.T) {
		dt, err := DataType.FromHost("int32")
		require.NoError(t, err)
		assert.Equal(t, tensor.Int32, dt)
		assert.Equal(t, "int32", DataType.ToHost(dt))

		_, err = DataType.FromHost("complex64")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("Array", func(t *testing.T) {
		arr := tensor.Scalar(1, tensor.Float32)
		array := Array(nil)

		got, ok := array.From(arr)
		require.True(t, ok)
		assert.Same(t, arr, got)

		got, ok = array.From(fakeRef{obj: arr, live: true})
		require.True(t, ok)
		assert.Same(t, arr, got)

		_, ok = array.From(fakeRef{obj: arr, live: false})
		assert.False(t, ok)

		dead := tensor.Scalar(1, tensor.Float32)
		dead.Release()
		_, ok = array.From(dead)
		assert.False(t, ok)
	})
}

func TestSequence(t *testing.T) {
	ints := Sequence[[]int](Int, Growable{})

	t.Run("PreservesOrder", func(t *testing.T) {
		got, err := ints.FromHost([]any{3.0, 1.0, 2.0})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2}, got)
		assert.Equal(t, []any{3.0, 1.0, 2.0}, ints.ToHost(got))
	})

	t.Run("AnySliceKind", func(t *testing.T) {
		got, err := ints.FromHost([]int{4, 5})
		require.NoError(t, err)
		assert.Equal(t, []int{4, 5}, got)
	})

	t.Run("NoPartialResult", func(t *testing.T) {
		got, ok := ints.From([]any{1.0, "x", 3.0})
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("NotAList", func(t *testing.T) {
		_, ok := ints.From(5.0)
		assert.False(t, ok)
		_, ok = ints.From("12")
		assert.False(t, ok)
	})

	t.Run("Capacity", func(t *testing.T) {
		small := Sequence[tensor.Shape](Int, Inline{N: 4})
		got, err := small.FromHost([]any{2.0})
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{2}, got)
		assert.Equal(t, 4, cap(got))

		got, err = small.FromHost([]any{1.0, 2.0, 3.0, 4.0, 5.0})
		require.NoError(t, err)
		assert.Len(t, got, 5)

		fixed := Sequence[[]int](Int, Fixed{N: 2})
		_, err = fixed.FromHost([]any{1.0, 2.0})
		require.NoError(t, err)
		_, err = fixed.FromHost([]any{1.0, 2.0, 3.0})
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestScalarOrArray(t *testing.T) {
	arr := tensor.Scalar(2, tensor.Int32)
	operand := ScalarOrArrayOf(Array(nil))

	assert.Equal(t, "Boolean | Number | Tensor", operand.Name)

	v, err := operand.FromHost(true)
	require.NoError(t, err)
	assert.Equal(t, KindBool, v.Kind())
	assert.True(t, v.Bool())

	v, err = operand.FromHost(3.14)
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())
	assert.Equal(t, 3.14, v.Float())

	v, err = operand.FromHost(arr)
	require.NoError(t, err)
	assert.Equal(t, KindArray, v.Kind())
	assert.Same(t, arr, v.Array())
	assert.Same(t, arr, operand.ToHost(v))

	_, err = operand.FromHost("1")
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "Boolean | Number | Tensor", tm.Expected)
}

func TestResolveReduceAxes(t *testing.T) {
	t.Run("AbsentSelectsAll", func(t *testing.T) {
		for rank := 0; rank < 5; rank++ {
			got, err := ResolveReduceAxes(NoAxes(), rank)
			require.NoError(t, err)
			want := make([]int, rank)
			for i := range want {
				want[i] = i
			}
			assert.Equal(t, want, got)
		}
	})

	t.Run("NegativeSingle", func(t *testing.T) {
		got, err := ResolveReduceAxes(SingleAxis(-1), 3)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, got)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		_, err := ResolveReduceAxes(SingleAxis(5), 3)
		var axisErr *AxisError
		require.ErrorAs(t, err, &axisErr)
		assert.Equal(t, 5, axisErr.Axis)
		assert.Equal(t, 3, axisErr.Rank)
		assert.ErrorIs(t, err, ErrInvalidAxis)

		_, err = ResolveReduceAxes(SingleAxis(-4), 3)
		assert.ErrorIs(t, err, ErrInvalidAxis)
	})

	t.Run("ListKeepsOrder", func(t *testing.T) {
		got, err := ResolveReduceAxes(AxisList([]int{-1, 0}), 3)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 0}, got)
	})

	t.Run("ListKeepsDuplicates", func(t *testing.T) {
		got, err := ResolveReduceAxes(AxisList([]int{0, -3}), 3)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0}, got)
	})

	t.Run("ListFailsOnFirstBadAxis", func(t *testing.T) {
		_, err := ResolveReduceAxes(AxisList([]int{0, 7, 9}), 3)
		var axisErr *AxisError
		require.ErrorAs(t, err, &axisErr)
		assert.Equal(t, 7, axisErr.Axis)
	})
}

func TestAxesVariant(t *testing.T) {
	a, err := Axes.FromHost(nil)
	require.NoError(t, err)
	assert.Equal(t, AxesAbsent, a.Kind())

	a, err = Axes.FromHost(1.0)
	require.NoError(t, err)
	assert.Equal(t, AxesSingle, a.Kind())
	assert.Equal(t, 1, a.Axis())

	a, err = Axes.FromHost([]any{0.0, -1.0})
	require.NoError(t, err)
	assert.Equal(t, AxesList, a.Kind())
	assert.Equal(t, []int{0, -1}, a.List())

	_, err = Axes.FromHost(0.5)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNormalizeShapeArg(t *testing.T) {
	s, err := Shape.FromHost(5.0)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{5}, NormalizeShapeArg(s))

	s, err = Shape.FromHost([]any{1.0, 2.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 3}, NormalizeShapeArg(s))
}

func TestCollect(t *testing.T) {
	t.Run("StopsAtFirstMismatch", func(t *testing.T) {
		args := NewArguments(1.0, 2.0, "x", 3.0)
		got, err := Collect(args, Int)
		assert.Nil(t, got)

		var tm *TypeMismatchError
		require.ErrorAs(t, err, &tm)
		assert.Equal(t, "Integer", tm.Expected)
		assert.Equal(t, 2, tm.Index)
		assert.Equal(t, "x", tm.Value)
	})

	t.Run("AfterRequired", func(t *testing.T) {
		args := NewArguments("int32", 1.0, 2.0)
		dt, err := Next(args, DataType)
		require.NoError(t, err)
		assert.Equal(t, tensor.Int32, dt)

		got, err := Collect(args, Int)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, got)
		assert.Zero(t, args.Remaining())
	})

	t.Run("Empty", func(t *testing.T) {
		got, err := Collect(NewArguments(), Int)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestArgumentsNext(t *testing.T) {
	args := NewArguments(1.0)
	_, err := Next(args, Int)
	require.NoError(t, err)

	// Missing arguments read as nil, which Axes accepts as absent.
	axes, err := Next(args, Axes)
	require.NoError(t, err)
	assert.Equal(t, AxesAbsent, axes.Kind())

	_, err = Next(args, Int)
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, 1, tm.Index)
	assert.Equal(t, "argument 1: expected Integer, got nothing", err.Error())

	args = NewArguments(nil, true)
	_, ok, err := Optional(args, Bool)
	require.NoError(t, err)
	assert.False(t, ok)
	b, ok, err := Optional(args, Bool)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, b)
}

func TestToArray(t *testing.T) {
	t.Run("BoolScalar", func(t *testing.T) {
		a := ToArray(BoolOperand(true))
		assert.Equal(t, 0, a.Rank())
		assert.Equal(t, tensor.Bool, a.DType())
		assert.Equal(t, true, a.Item())
	})

	t.Run("FloatScalar", func(t *testing.T) {
		a := ToArray(FloatOperand(3.14))
		assert.Equal(t, 0, a.Rank())
		assert.Equal(t, tensor.DefaultFloat, a.DType())
		assert.InDelta(t, 3.14, a.Item(), 1e-6)
	})

	t.Run("ScalarWithTarget", func(t *testing.T) {
		a := ToArrayAs(FloatOperand(2), tensor.Int64, nil)
		assert.Equal(t, tensor.Int64, a.DType())
		assert.Equal(t, 2.0, a.Item())
	})

	t.Run("SameDtypeNoCast", func(t *testing.T) {
		mock := tensor.NewMockBackend()
		arr := tensor.Scalar(1, tensor.Float32)
		assert.Same(t, arr, ToArray(ArrayOperand(arr)))
		assert.Same(t, arr, ToArrayAs(ArrayOperand(arr), tensor.Float32, mock))
		assert.Zero(t, mock.Calls("Cast"))
	})

	t.Run("DifferentDtypeCasts", func(t *testing.T) {
		mock := tensor.NewMockBackend()
		arr := tensor.Scalar(1.5, tensor.Float32)
		got := ToArrayAs(ArrayOperand(arr), tensor.Float64, mock)
		assert.NotSame(t, arr, got)
		assert.Equal(t, tensor.Float64, got.DType())
		assert.Equal(t, tensor.Float32, arr.DType())
		assert.Equal(t, 1, mock.Calls("Cast"))
	})
}

func TestNested(t *testing.T) {
	t.Run("Matrix", func(t *testing.T) {
		a, err := FromNested([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}})
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{2, 2}, a.Shape())
		assert.Equal(t, tensor.DefaultFloat, a.DType())
		assert.Equal(t, []any{[]any{1.0, 2.0}, []any{3.0, 4.0}}, ToNested(a))
	})

	t.Run("Bools", func(t *testing.T) {
		a, err := FromNested([]any{true, false})
		require.NoError(t, err)
		assert.Equal(t, tensor.Bool, a.DType())
		assert.Equal(t, []any{true, false}, ToNested(a))
	})

	t.Run("Scalar", func(t *testing.T) {
		a, err := FromNestedAs(7.0, tensor.Int32)
		require.NoError(t, err)
		assert.Equal(t, 0, a.Rank())
		assert.Equal(t, 7.0, ToNested(a))
	})

	t.Run("Empty", func(t *testing.T) {
		a, err := FromNested([]any{})
		require.NoError(t, err)
		assert.Equal(t, tensor.Shape{0}, a.Shape())
		assert.Equal(t, []any{}, ToNested(a))
	})

	t.Run("Ragged", func(t *testing.T) {
		_, err := FromNested([]any{[]any{1.0}, []any{1.0, 2.0}})
		assert.ErrorIs(t, err, ErrRagged)
		_, err = FromNested([]any{1.0, []any{2.0}})
		assert.ErrorIs(t, err, ErrRagged)
	})

	t.Run("BadLeaf", func(t *testing.T) {
		_, err := FromNested([]any{1.0, "two"})
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestMap(t *testing.T) {
	strs := Map(String)

	got, err := strs.FromHost(map[string]any{"a": "x", "b": "y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "x", "b": "y"}, got)
	assert.Equal(t, map[string]any{"a": "x", "b": "y"}, strs.ToHost(got))

	_, err = strs.FromHost(map[string]any{"a": 1.0})
	assert.ErrorIs(t, err, ErrTypeMismatch)
	_, err = strs.FromHost([]any{"a"})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
