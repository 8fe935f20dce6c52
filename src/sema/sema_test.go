// Tests the semantic walker end-to-end: source text goes in through
// src/parser, diagnostics come out of Walk. This exercises the walker
// against real trees rather than hand-built ast fixtures, the way an
// integration test over a compiler's front end is usually written.

package sema

import (
	"os"
	"path/filepath"
	"testing"

	"splc/src/parser"
)

func walk(t *testing.T, src string) []string {
	t.Helper()
	return walkAt(t, "test.spl", src)
}

func walkAt(t *testing.T, path, src string) []string {
	t.Helper()
	prog, parseDiags := parser.Parse(path, src)
	if parseDiags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, parseDiags.Sorted())
	}
	diags := Walk(prog, src, path)
	out := make([]string, 0, diags.Len())
	for _, d := range diags.Sorted() {
		out = append(out, d.Error())
	}
	return out
}

func TestSemaWellTypedProgramHasNoDiagnostics(t *testing.T) {
	src := "int add(int a, int b) { return a + b; } int main() { int c = add(1, 2); return c; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics", got)
	}
}

func TestSemaUndeclaredIdentifier(t *testing.T) {
	src := "int main() { return missing; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want exactly one diagnostic", got)
	}
}

func TestSemaRedeclaredVariableInSameScope(t *testing.T) {
	src := "int main() { int a = 1; int a = 2; return a; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want exactly one redefinition diagnostic", got)
	}
}

func TestSemaShadowingInNestedScopeIsAllowed(t *testing.T) {
	src := "int main() { int a = 1; { int a = 2; } return a; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (shadowing is legal)", got)
	}
}

func TestSemaIntAssignedToFloatIsRejected(t *testing.T) {
	src := "int main() { float f = 1; return 0; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one assignability diagnostic (no int->float widening)", got)
	}
}

func TestSemaFloatAssignedToIntIsRejected(t *testing.T) {
	src := "int main() { int i = 1.5; return 0; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want exactly one assignability diagnostic", got)
	}
}

func TestSemaCompoundAssignmentTypeChecksLikeItsOperator(t *testing.T) {
	src := "int main() { int a = 1; a &= 2; return a; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (int &= int is legal)", got)
	}

	bad := "int main() { float f = 1.0; f &= 2; return 0; }"
	got := walk(t, bad)
	if len(got) != 1 {
		t.Fatalf("got %v, want one diagnostic (float &= is not bitwise-legal)", got)
	}
}

func TestSemaBreakOutsideLoopIsRejected(t *testing.T) {
	src := "int main() { break; return 0; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one 'break outside of a loop' diagnostic", got)
	}
}

func TestSemaBreakInsideLoopIsAccepted(t *testing.T) {
	src := "int main() { while (1 == 1) { break; } return 0; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics", got)
	}
}

func TestSemaCallArgCountMismatch(t *testing.T) {
	src := "int add(int a, int b) { return a + b; } int main() { return add(1); }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one argument-count diagnostic", got)
	}
}

func TestSemaCallArgTypeMismatch(t *testing.T) {
	src := "int f(int a) { return a; } int main() { return f(\"hi\"); }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one argument-type diagnostic", got)
	}
}

func TestSemaStructFieldAccess(t *testing.T) {
	src := "struct Point { int x; int y; }; int main() { struct Point p; p.x = 1; return p.x; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics", got)
	}
}

func TestSemaUnknownStructFieldIsRejected(t *testing.T) {
	src := "struct Point { int x; }; int main() { struct Point p; return p.z; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one 'no field' diagnostic", got)
	}
}

func TestSemaReturnTypeMismatch(t *testing.T) {
	src := "int f() { return \"oops\"; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one return-type diagnostic", got)
	}
}

func TestSemaIncludeMissingFileIsReported(t *testing.T) {
	dir := t.TempDir()
	src := "#include \"nope.spl\"\nint main() { return 0; }"
	got := walkAt(t, filepath.Join(dir, "main.spl"), src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one unresolved-#include diagnostic", got)
	}
}

func TestSemaIncludeExistingFileIsAccepted(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "helper.spl"), []byte(""), 0o644); err != nil {
		t.Fatalf("could not write fixture file: %s", err)
	}
	src := "#include \"helper.spl\"\nint main() { return 0; }"
	got := walkAt(t, filepath.Join(dir, "main.spl"), src)
	if len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (helper.spl exists alongside main.spl)", got)
	}
}

func TestSemaPrintfAcceptsAnyArgumentList(t *testing.T) {
	src := `struct Fruit { int weight; float cost; };
int main() { struct Fruit apple; apple.weight = 100;
printf("%d %s %f\n", apple.weight, "apples", apple.cost); return 0; }`
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (printf is never declared in source)", got)
	}
}

func TestSemaLiteralArrayIndexOutOfBoundsIsRejected(t *testing.T) {
	src := "int main() { int arr[4]; arr[4] = 1; return 0; }"
	got := walk(t, src)
	if len(got) != 1 {
		t.Fatalf("got %v, want one out-of-bounds diagnostic", got)
	}
}

func TestSemaLiteralArrayIndexInBoundsIsAccepted(t *testing.T) {
	src := "int main() { int arr[4]; arr[3] = 1; return arr[0]; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (index 3 is within a size-4 array)", got)
	}
}

func TestSemaNonLiteralArrayIndexIsNotBoundsChecked(t *testing.T) {
	src := "int main() { int arr[4]; int i = 10; arr[i] = 1; return 0; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (only literal indices are compile-time bounds-checked)", got)
	}
}

func TestSemaEnumMembersAreIntConstants(t *testing.T) {
	src := "enum Color { Red, Green, Blue }; int main() { return Green; }"
	if got := walk(t, src); len(got) != 0 {
		t.Fatalf("got %v, want no diagnostics (enum members are in-scope int constants)", got)
	}
}
