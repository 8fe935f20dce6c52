// Tests LLVM emission by checking the textual module dump GenLLVM returns
// for structural markers: declared function/global names, control-flow
// basic-block labels, and the header format spec.md §4.7 requires. These
// assertions are deliberately shallow string checks rather than IR
// execution, since nothing in this module runs the LLVM toolchain.

package ir

import (
	"strings"
	"testing"

	"splc/src/parser"
)

func genLLVM(t *testing.T, src string) string {
	t.Helper()
	prog, diags := parser.Parse("test.spl", src)
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, diags.Sorted())
	}
	out, err := GenLLVM(prog, "test", "")
	if err != nil {
		t.Fatalf("GenLLVM error: %v", err)
	}
	return out
}

func TestGenLLVMModuleHeader(t *testing.T) {
	out := genLLVM(t, "int main() { return 0; }")
	if !strings.Contains(out, "source_filename") {
		t.Fatalf("module dump missing source_filename header:\n%s", out)
	}
	if !strings.Contains(out, "define i32 @main()") {
		t.Fatalf("module dump missing main's definition:\n%s", out)
	}
}

func TestGenLLVMFunctionCall(t *testing.T) {
	src := "int add(int a, int b) { return a + b; } int main() { return add(1, 2); }"
	out := genLLVM(t, src)
	if !strings.Contains(out, "define i32 @add(i32 %a, i32 %b)") {
		t.Fatalf("module dump missing add's definition:\n%s", out)
	}
	if !strings.Contains(out, "call i32 @add(") {
		t.Fatalf("module dump missing the call site:\n%s", out)
	}
}

func TestGenLLVMIfElseBasicBlocks(t *testing.T) {
	src := "int f(int a) { if (a > 0) { return 1; } else { return 0; } }"
	out := genLLVM(t, src)
	for _, label := range []string{"if.then", "if.else", "if.end"} {
		if !strings.Contains(out, label) {
			t.Fatalf("module dump missing basic block %q:\n%s", label, out)
		}
	}
}

func TestGenLLVMWhileLoopBasicBlocks(t *testing.T) {
	src := "int f() { int i = 0; while (i < 10) { i++; } return i; }"
	out := genLLVM(t, src)
	for _, label := range []string{"while.head", "while.body", "while.end"} {
		if !strings.Contains(out, label) {
			t.Fatalf("module dump missing basic block %q:\n%s", label, out)
		}
	}
}

func TestGenLLVMForLoopBasicBlocks(t *testing.T) {
	src := "int f() { int s = 0; for (int i = 0; i < 10; i++) { s += i; } return s; }"
	out := genLLVM(t, src)
	for _, label := range []string{"for.head", "for.body", "for.step", "for.end"} {
		if !strings.Contains(out, label) {
			t.Fatalf("module dump missing basic block %q:\n%s", label, out)
		}
	}
}

func TestGenLLVMGlobalWithLiteralInitialiser(t *testing.T) {
	src := "int counter = 42; int main() { return counter; }"
	out := genLLVM(t, src)
	if !strings.Contains(out, "@counter") {
		t.Fatalf("module dump missing global @counter:\n%s", out)
	}
	if !strings.Contains(out, "i32 42") {
		t.Fatalf("module dump missing the folded literal initialiser:\n%s", out)
	}
}

func TestGenLLVMStructFieldGEP(t *testing.T) {
	src := "struct Point { int x; int y; }; int main() { struct Point p; p.x = 3; return p.x; }"
	out := genLLVM(t, src)
	if !strings.Contains(out, "%Point = type") {
		t.Fatalf("module dump missing the named struct type:\n%s", out)
	}
	if !strings.Contains(out, "getelementptr") {
		t.Fatalf("module dump missing a GEP for the field access:\n%s", out)
	}
}

func TestGenLLVMTargetTripleOverride(t *testing.T) {
	prog, diags := parser.Parse("test.spl", "int main() { return 0; }")
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", diags.Sorted())
	}
	out, err := GenLLVM(prog, "test", "x86_64-unknown-linux-gnu")
	if err != nil {
		t.Fatalf("GenLLVM error: %v", err)
	}
	if !strings.Contains(out, "x86_64-unknown-linux-gnu") {
		t.Fatalf("module dump missing the overridden target triple:\n%s", out)
	}
}

func TestGenLLVMPrintfIsLazilyDeclaredVariadic(t *testing.T) {
	src := `int main() { printf("%d\n", 1); printf("%d\n", 2); return 0; }`
	out := genLLVM(t, src)
	if strings.Count(out, "declare") != 1 || !strings.Contains(out, "@printf(") {
		t.Fatalf("want printf declared exactly once (lazy, shared across both calls):\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Fatalf("want printf declared variadic:\n%s", out)
	}
	if strings.Count(out, "@printf(") < 3 {
		t.Fatalf("want one declaration plus two call sites against printf:\n%s", out)
	}
}

func TestGenLLVMFloatArithmeticEmitsFAdd(t *testing.T) {
	src := "float f(float a, float b) { return a + b; }"
	out := genLLVM(t, src)
	if !strings.Contains(out, "fadd float") {
		t.Fatalf("module dump missing the float add for same-typed float operands:\n%s", out)
	}
	if strings.Contains(out, "sitofp") {
		t.Fatalf("did not expect an int-to-float conversion (src/check requires identical operand types):\n%s", out)
	}
}

func TestGenLLVMCompoundAssignmentEmitsBinOp(t *testing.T) {
	src := "int f() { int a = 1; a += 2; return a; }"
	out := genLLVM(t, src)
	if !strings.Contains(out, "add i32") {
		t.Fatalf("module dump missing the desugared add for 'a += 2':\n%s", out)
	}
}
