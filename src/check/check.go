// Package check holds the pure type-compatibility predicates the semantic
// walker (src/sema) consults while visiting the tree. BinOpResult is a
// lookup-table query over sym.BasicType, grounded on the teacher's
// lutExp/lutAssign tables (src/ir/validate.go) — a data table, not a chain
// of if-statements, keeps every combination visible at a glance; the other
// predicates compare the two types directly. Unlike the
// teacher, these tables never widen: spec.md's check_binary_op/check_assign_op
// are literal `l == r` equality predicates, confirmed by the ground-truth
// original (analyser/src/typer.rs's check_binary_operations/check_assign_operation
// both reject any l != r pairing outright), so every row below is the
// identity relation rather than an int/float promotion.
package check

import "splc/src/sym"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// BinOp enumerates the binary operator classes lutBinOp is indexed by.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	nBinOp
)

// -------------------
// ----- Globals -----
// -------------------

// lutBinOp answers "is basic-type op basic-type legal" for the two scalar
// numeric kinds the grammar allows in a CompExpr (spec.md §4.6): int and
// float. Operands must match exactly (spec.md:144-146); the bitwise
// operators further require both operands to be int.
var lutBinOp = [2][2][nBinOp]bool{
	{
		// op1 is int.
		{ // op2 is int.
			OpAdd: true, OpSub: true, OpMul: true, OpDiv: true, OpMod: true,
			OpBitAnd: true, OpBitOr: true, OpBitXor: true,
		},
		{ // op2 is float.
			OpAdd: false, OpSub: false, OpMul: false, OpDiv: false, OpMod: false,
			OpBitAnd: false, OpBitOr: false, OpBitXor: false,
		},
	},
	{
		// op1 is float.
		{ // op2 is int.
			OpAdd: false, OpSub: false, OpMul: false, OpDiv: false, OpMod: false,
			OpBitAnd: false, OpBitOr: false, OpBitXor: false,
		},
		{ // op2 is float.
			OpAdd: true, OpSub: true, OpMul: true, OpDiv: true, OpMod: false,
			OpBitAnd: false, OpBitOr: false, OpBitXor: false,
		},
	},
}

// lutAssign answers "can a value of basic-type op2 be assigned to a
// variable of basic-type op1": spec.md's check_assign_op requires the two
// types to match exactly, so there is no int/float widening either way.
var lutAssign = [2][2]bool{
	{true, false}, // int := int ok, int := float not ok.
	{false, true}, // float := int not ok, float := float ok.
}

// numIdx maps a sym.BasicType to its row/column index into the numeric
// lookup tables above; ok is false for a non-numeric type.
func numIdx(b sym.BasicType) (int, bool) {
	switch b {
	case sym.TInt:
		return 0, true
	case sym.TFloat:
		return 1, true
	default:
		return 0, false
	}
}

// ---------------------
// ----- Functions -----
// ---------------------

// BinOpResult reports whether op is legal between scalars of basic type a
// and b, and if so the basic type the result carries. spec.md's
// check_binary_op is an exact-equality predicate (spec.md:144-146): a and b
// must be the identical basic type, and the result carries that same type.
func BinOpResult(a, b sym.BasicType, op BinOp) (sym.BasicType, bool) {
	ia, ok := numIdx(a)
	if !ok {
		return 0, false
	}
	ib, ok := numIdx(b)
	if !ok {
		return 0, false
	}
	if !lutBinOp[ia][ib][op] {
		return 0, false
	}
	return a, true
}

// Comparable reports whether a and b may appear as the two operands of a
// Condition (spec.md's JudgeOperator family). spec.md's Testable Property 7
// requires `a:T, b:T` — the identical type on both sides for every
// comparison operator, int/int or float/float only, matching the ground
// truth's check_condition.
func Comparable(a, b sym.BasicType) bool {
	if a != b {
		return false
	}
	_, ok := numIdx(a)
	return ok
}

// Assignable reports whether a value of basic type rhs may be assigned to
// a variable of basic type lhs. spec.md's check_assign_op is exact-equality
// only: no implicit int<->float widening in either direction.
func Assignable(lhs, rhs sym.BasicType) bool {
	return lhs == rhs
}

// ParamCompatible reports whether an argument of basic type arg may bind
// to a formal parameter declared with basic type param: exact match only.
func ParamCompatible(param, arg sym.BasicType) bool {
	return Assignable(param, arg)
}

// ReturnCompatible reports whether a `return expr;` of basic type got
// satisfies a function declared to return want: exact match only.
func ReturnCompatible(want, got sym.BasicType) bool {
	return Assignable(want, got)
}
