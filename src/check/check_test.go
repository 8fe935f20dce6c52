// Tests the type-compatibility lookup tables against spec.md's exact-equality
// contract (spec.md:144-146, Testable Property 7): binary operators, a
// Condition's two operands, assignment, parameter binding and return types
// all require the identical basic type — no int/float widening.

package check

import (
	"testing"

	"splc/src/sym"
)

func TestBinOpResultRequiresExactTypeMatch(t *testing.T) {
	if _, ok := BinOpResult(sym.TInt, sym.TFloat, OpAdd); ok {
		t.Fatalf("expected mixed int/float + to be rejected")
	}
	got, ok := BinOpResult(sym.TInt, sym.TInt, OpAdd)
	if !ok || got != sym.TInt {
		t.Fatalf("got (%v, %v), want (int, true)", got, ok)
	}
	got, ok = BinOpResult(sym.TFloat, sym.TFloat, OpAdd)
	if !ok || got != sym.TFloat {
		t.Fatalf("got (%v, %v), want (float, true)", got, ok)
	}
}

func TestBinOpResultBitwiseRequiresInt(t *testing.T) {
	if _, ok := BinOpResult(sym.TFloat, sym.TFloat, OpBitAnd); ok {
		t.Fatalf("expected bitwise AND of two floats to be rejected")
	}
	if _, ok := BinOpResult(sym.TInt, sym.TInt, OpBitXor); !ok {
		t.Fatalf("expected bitwise XOR of two ints to be legal")
	}
}

func TestBinOpResultModRequiresInt(t *testing.T) {
	if _, ok := BinOpResult(sym.TFloat, sym.TFloat, OpMod); ok {
		t.Fatalf("expected float %% float to be rejected")
	}
}

func TestBinOpResultNonNumericRejected(t *testing.T) {
	if _, ok := BinOpResult(sym.TString, sym.TInt, OpAdd); ok {
		t.Fatalf("expected string + int to be rejected")
	}
}

func TestComparableRequiresExactTypeMatch(t *testing.T) {
	if Comparable(sym.TInt, sym.TFloat) {
		t.Fatalf("expected int and float to be non-comparable (exact type match only)")
	}
	if !Comparable(sym.TInt, sym.TInt) {
		t.Fatalf("expected int and int to be comparable")
	}
	if Comparable(sym.TString, sym.TString) {
		t.Fatalf("expected two strings to be non-comparable (int/int or float/float only)")
	}
	if Comparable(sym.TString, sym.TInt) {
		t.Fatalf("expected string and int to be non-comparable")
	}
}

func TestAssignableRequiresExactTypeMatch(t *testing.T) {
	if Assignable(sym.TFloat, sym.TInt) {
		t.Fatalf("expected int assigned into a float variable to be rejected")
	}
	if Assignable(sym.TInt, sym.TFloat) {
		t.Fatalf("expected float assigned into an int variable to be rejected")
	}
	if !Assignable(sym.TInt, sym.TInt) {
		t.Fatalf("expected int := int to be legal")
	}
	if !Assignable(sym.TString, sym.TString) {
		t.Fatalf("expected string := string to be legal")
	}
	if Assignable(sym.TString, sym.TInt) {
		t.Fatalf("expected int := string to be rejected")
	}
}

func TestParamAndReturnCompatibleMatchAssignable(t *testing.T) {
	if ParamCompatible(sym.TFloat, sym.TInt) {
		t.Fatalf("expected an int argument to be rejected for a float parameter")
	}
	if !ParamCompatible(sym.TFloat, sym.TFloat) {
		t.Fatalf("expected a float argument to bind to a float parameter")
	}
	if ReturnCompatible(sym.TFloat, sym.TInt) {
		t.Fatalf("expected an int return value to fail a float return type")
	}
	if !ReturnCompatible(sym.TInt, sym.TInt) {
		t.Fatalf("expected an int return value to satisfy an int return type")
	}
}
