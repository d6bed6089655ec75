// Package flow computes flow (wrap) layouts for a sequence of boxes.
//
// # Overview
//
// A flow layout packs an ordered list of children into horizontal lines,
// left to right, starting a new line whenever the next child would not fit
// in the remaining width. Lines are then stacked top to bottom. Every layout
// cycle runs in two passes:
//
//  1. Measure: each child resolves its own size under the container's
//     constraints ([Resolve]), and the occupied sizes (size plus margins)
//     are packed greedily into lines ([BuildLines]).
//  2. Layout: every child gets an absolute rectangle by walking the lines
//     ([Position]).
//
// Both passes are O(n) and allocate fresh state on every call. A
// [Measurement] is a value: measuring twice with the same input yields two
// equal partitions and never accumulates lines from an earlier cycle.
//
// # Constraints
//
// Each axis carries a [Constraint] with a [Mode]:
//
//   - [ModeExact]: the caller dictates the container size on that axis
//   - [ModeAtMost]: the caller gives an upper bound
//   - [ModeUnspecified]: no limit, the size follows the content
//
// The width constraint's size is the wrap bound under Exact and AtMost.
// Under Unspecified the bound is infinite and everything lands on one line.
// Children see the container constraints unchanged; nothing is narrowed
// per child.
//
// # Packing Rules
//
//   - The overflow test is strict: a child that exactly fills the remaining
//     width stays on the current line.
//   - A child wider than the bound is never split. It is placed alone on its
//     own line and that line overflows the bound.
//   - The container's width is the widest line and its height is the sum of
//     line heights, unless the axis is Exact.
//
// # Usage
//
//	l := flow.New(
//	    flow.Child{Measurer: flow.Fixed(30, 10)},
//	    flow.Child{Measurer: flow.Fixed(40, 10), Margin: flow.Margins{Left: 5}},
//	)
//	m, err := l.Measure(flow.AtMost(100), flow.Unspecified())
//	if err != nil {
//	    return err
//	}
//	placements, err := m.Layout(flow.Rect{Right: m.Width, Bottom: m.Height})
package flow
