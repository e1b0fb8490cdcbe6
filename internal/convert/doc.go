// Package convert moves values across the host boundary.
//
// Host values are the dynamic runtime's vocabulary expressed as Go values:
// nil (absent), bool, numbers (float64, plus any Go integer or float32
// kind), string, lists (any slice, normally []any) and native objects.
//
// A [Type] converts one native Go type in both directions. Types compose:
//
//   - [Sequence] converts host lists element-wise under a [Capacity] strategy.
//   - [OneOf] tries alternatives in a fixed order; [ScalarOrArray],
//     [OptionalAxes] and [IntOrShape] are the closed variants built on it.
//   - [Arguments] reads call-site arguments one at a time; [Collect] gathers
//     a trailing run of homogeneously-typed arguments.
//
// Conversion failures are reported as [*TypeMismatchError] and axis range
// failures as [*AxisError]; both are raised before any native call is made.
package convert
