package convert

import (
	"strings"

	"github.com/born-ml/born-host/internal/tensor"
)

// Alternative is one arm of a OneOf: its type name and a conversion into
// the variant's Go representation.
type Alternative[V any] struct {
	Name string
	From func(v any) (V, bool)
}

// Arm lifts t into an alternative of V using wrap.
func Arm[V, T any](t Type[T], wrap func(T) V) Alternative[V] {
	return Alternative[V]{
		Name: t.Name,
		From: func(v any) (V, bool) {
			out, ok := t.From(v)
			if !ok {
				var zero V
				return zero, false
			}
			return wrap(out), true
		},
	}
}

// OneOf tries each alternative in order and keeps the first that accepts
// the value. The order is part of the contract: a host value matching more
// than one arm always resolves to the earliest.
func OneOf[V any](to func(V) any, alts ...Alternative[V]) Type[V] {
	names := make([]string, len(alts))
	for i, a := range alts {
		names[i] = a.Name
	}
	return Type[V]{
		Name: strings.Join(names, " | "),
		From: func(v any) (V, bool) {
			for _, a := range alts {
				if out, ok := a.From(v); ok {
					return out, true
				}
			}
			var zero V
			return zero, false
		},
		To: to,
	}
}

// ScalarKind identifies the active arm of a ScalarOrArray.
type ScalarKind int

// ScalarOrArray arms, in resolution order.
const (
	KindBool ScalarKind = iota
	KindFloat
	KindArray
)

// ScalarOrArray is an operand that is a bool, a number or a native array.
type ScalarOrArray struct {
	kind  ScalarKind
	b     bool
	f     float64
	array *tensor.RawTensor
}

// BoolOperand, FloatOperand and ArrayOperand build each arm.
func BoolOperand(b bool) ScalarOrArray { return ScalarOrArray{kind: KindBool, b: b} }

func FloatOperand(f float64) ScalarOrArray { return ScalarOrArray{kind: KindFloat, f: f} }

func ArrayOperand(a *tensor.RawTensor) ScalarOrArray {
	return ScalarOrArray{kind: KindArray, array: a}
}

// Kind returns the active arm.
func (s ScalarOrArray) Kind() ScalarKind { return s.kind }

// Bool returns the bool arm.
func (s ScalarOrArray) Bool() bool { return s.b }

// Float returns the float arm.
func (s ScalarOrArray) Float() float64 { return s.f }

// Array returns the array arm, or nil for scalars.
func (s ScalarOrArray) Array() *tensor.RawTensor { return s.array }

// ScalarOrArrayOf builds the ScalarOrArray type over the given array type.
func ScalarOrArrayOf(array Type[*tensor.RawTensor]) Type[ScalarOrArray] {
	return OneOf(
		func(s ScalarOrArray) any {
			switch s.kind {
			case KindBool:
				return Bool.ToHost(s.b)
			case KindFloat:
				return Float.ToHost(s.f)
			default:
				return array.ToHost(s.array)
			}
		},
		Arm(Bool, BoolOperand),
		Arm(Float, FloatOperand),
		Arm(array, ArrayOperand),
	)
}

// AxesKind identifies the active arm of OptionalAxes.
type AxesKind int

// OptionalAxes arms, in resolution order.
const (
	AxesAbsent AxesKind = iota
	AxesSingle
	AxesList
)

// OptionalAxes is a reduction axis argument: absent, one axis, or a list.
type OptionalAxes struct {
	kind AxesKind
	axis int
	list []int
}

// NoAxes, SingleAxis and AxisList build each arm.
func NoAxes() OptionalAxes { return OptionalAxes{} }

func SingleAxis(axis int) OptionalAxes { return OptionalAxes{kind: AxesSingle, axis: axis} }

func AxisList(axes []int) OptionalAxes { return OptionalAxes{kind: AxesList, list: axes} }

// Kind returns the active arm.
func (a OptionalAxes) Kind() AxesKind { return a.kind }

// Axis returns the single-axis arm.
func (a OptionalAxes) Axis() int { return a.axis }

// List returns the list arm.
func (a OptionalAxes) List() []int { return a.list }

var absent = Alternative[OptionalAxes]{
	Name: "undefined",
	From: func(v any) (OptionalAxes, bool) { return NoAxes(), v == nil },
}

// Axes converts an OptionalAxes argument.
var Axes = OneOf(
	func(a OptionalAxes) any {
		switch a.kind {
		case AxesSingle:
			return Int.ToHost(a.axis)
		case AxesList:
			return Sequence[[]int](Int, Inline{N: 4}).ToHost(a.list)
		default:
			return nil
		}
	},
	absent,
	Arm(Int, SingleAxis),
	Arm(Sequence[[]int](Int, Inline{N: 4}), AxisList),
)

// IntOrShape is a shape argument given either as one dimension or a list.
type IntOrShape struct {
	single bool
	dim    int
	shape  tensor.Shape
}

// Dim and ShapeOf build each arm.
func Dim(d int) IntOrShape { return IntOrShape{single: true, dim: d} }

func ShapeOf(s tensor.Shape) IntOrShape { return IntOrShape{shape: s} }

// Shape converts an IntOrShape argument.
var Shape = OneOf(
	func(s IntOrShape) any {
		if s.single {
			return Int.ToHost(s.dim)
		}
		return Sequence[tensor.Shape](Int, Inline{N: 4}).ToHost(s.shape)
	},
	Arm(Int, Dim),
	Arm(Sequence[tensor.Shape](Int, Inline{N: 4}), ShapeOf),
)
