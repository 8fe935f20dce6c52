// Tests the scoped symbol table: definition/lookup, scope shadowing, and
// the global-only restriction on functions and structs.

package sym

import "testing"

func TestScopeStackVarShadowing(t *testing.T) {
	s := NewScopeStack()
	if !s.DefineVar("a", VarType{Base: TInt}, 1) {
		t.Fatalf("first definition of 'a' should succeed")
	}
	if s.DefineVar("a", VarType{Base: TFloat}, 2) {
		t.Fatalf("redefinition of 'a' in the same scope should fail")
	}

	s.ExtendScope()
	if !s.DefineVar("a", VarType{Base: TFloat}, 3) {
		t.Fatalf("shadowing 'a' in a nested scope should succeed")
	}
	got, ok := s.GetVar("a")
	if !ok || got.Data.Base != TFloat {
		t.Fatalf("got %+v, want the innermost 'a' (float)", got)
	}
	s.ExitScope()

	got, ok = s.GetVar("a")
	if !ok || got.Data.Base != TInt {
		t.Fatalf("got %+v, want the outer 'a' (int) after ExitScope", got)
	}
}

func TestScopeStackGetVarMissing(t *testing.T) {
	s := NewScopeStack()
	if _, ok := s.GetVar("nope"); ok {
		t.Fatalf("expected GetVar to fail for an undeclared name")
	}
}

func TestScopeStackExitGlobalPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected ExitScope on the global scope to panic")
		}
	}()
	s := NewScopeStack()
	s.ExitScope()
}

func TestScopeStackFuncsAreGlobalOnly(t *testing.T) {
	s := NewScopeStack()
	s.ExtendScope()
	ft := FuncType{Params: []VarType{{Base: TInt}}, Return: VarType{Base: TInt}}
	if !s.DefineFunc("square", ft, 1) {
		t.Fatalf("DefineFunc should succeed even from a nested scope")
	}
	got, ok := s.GetFunc("square")
	if !ok || len(got.Data.Params) != 1 {
		t.Fatalf("got %+v, want the registered function type", got)
	}
	s.ExitScope()
	if _, ok := s.GetFunc("square"); !ok {
		t.Fatalf("function declarations must survive scope exit (global-only)")
	}
}

func TestStructTypeFieldType(t *testing.T) {
	st := &StructType{
		Name: "Point",
		Fields: []Symbol[VarType]{
			{Name: "x", Data: VarType{Base: TInt}},
			{Name: "y", Data: VarType{Base: TInt}},
		},
	}
	if typ, ok := st.FieldType("x"); !ok || typ.Base != TInt {
		t.Fatalf("got %+v, ok=%v, want TInt field 'x'", typ, ok)
	}
	if _, ok := st.FieldType("z"); ok {
		t.Fatalf("expected lookup of a nonexistent field to fail")
	}
}

func TestVarTypeString(t *testing.T) {
	scalar := VarType{Base: TInt}
	if scalar.String() != "int" {
		t.Fatalf("got %q, want %q", scalar.String(), "int")
	}
	arr := VarType{Base: TFloat, ArrayDims: 2}
	if arr.String() != "float[][]" {
		t.Fatalf("got %q, want %q", arr.String(), "float[][]")
	}
	st := VarType{Base: TStruct, StructName: "Point"}
	if st.String() != "Point" {
		t.Fatalf("got %q, want %q", st.String(), "Point")
	}
}
