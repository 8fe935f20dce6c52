// Package sym implements the scoped symbol table that backs semantic
// analysis: variables, functions and struct types are registered into a
// stack of scopes and looked up innermost-scope-first. The scope stack
// itself is a sequential, non-concurrent adaptation of the teacher's
// linked-list util.Stack (src/util/stack.go) — the mutex and arbitrary
// interface{} payload it carried for parallel worker threads are dropped
// since analysis is single-threaded (see DESIGN.md), and the payload is
// narrowed to a typed map of symbols per scope.
package sym

import "splc/src/token"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Symbol pairs a declared name with the payload type T (VarType for
// variables and struct fields, FuncType for functions). Struct definitions
// are stored as *StructType directly, not wrapped in a Symbol.
type Symbol[T any] struct {
	Name string
	Data T
	Line int // Source line of the declaration, for diagnostics.
}

// BasicType names a scalar spl type.
type BasicType int

const (
	TInt BasicType = iota
	TFloat
	TChar
	TString
	TVoid
	TBool
	TStruct
)

// String renders a BasicType the way diagnostics report it.
func (b BasicType) String() string {
	switch b {
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TChar:
		return "char"
	case TString:
		return "string"
	case TVoid:
		return "void"
	case TBool:
		return "bool"
	case TStruct:
		return "struct"
	default:
		return "?"
	}
}

// BasicTypeOf maps a type token to the BasicType it denotes.
func BasicTypeOf(k token.Kind) BasicType {
	switch k {
	case token.TyInt:
		return TInt
	case token.TyFloat:
		return TFloat
	case token.TyChar:
		return TChar
	case token.TyString:
		return TString
	case token.TyVoid:
		return TVoid
	default:
		return TInt
	}
}

// VarType is the type of a declared variable: a BasicType or TStruct, an
// array dimension count, and, for TStruct, the struct type's name.
// ArraySizes holds, for each remaining dimension, its declared literal size
// (spec.md §4.5 check_type's `dims` vector), or -1 where the declaration's
// size expression was not a literal and so cannot be bounds-checked at
// compile time. len(ArraySizes) == ArrayDims always.
type VarType struct {
	Base       BasicType
	StructName string // valid when Base == TStruct
	ArrayDims  int    // 0 for a scalar
	ArraySizes []int
}

// String renders a VarType for diagnostics.
func (v VarType) String() string {
	s := v.Base.String()
	if v.Base == TStruct {
		s = v.StructName
	}
	for i1 := 0; i1 < v.ArrayDims; i1++ {
		s += "[]"
	}
	return s
}

// FuncType is the type of a declared function: its parameter types in
// declaration order and its return type.
type FuncType struct {
	Params []VarType
	Return VarType
}

// StructType is the type of a declared struct: its fields in declaration
// order, looked up by name for member access.
type StructType struct {
	Name   string
	Fields []Symbol[VarType]
}

// FieldType returns the type of the named field and true, or the zero
// value and false if no such field exists.
func (s *StructType) FieldType(name string) (VarType, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Data, true
		}
	}
	return VarType{}, false
}

// scope is one nested lexical scope: flat maps from name to symbol, since
// a single scope never shadows itself.
type scope struct {
	vars   map[string]Symbol[VarType]
	funcs  map[string]Symbol[FuncType]
	structs map[string]*StructType
}

func newScope() *scope {
	return &scope{
		vars:    make(map[string]Symbol[VarType]),
		funcs:   make(map[string]Symbol[FuncType]),
		structs: make(map[string]*StructType),
	}
}

// ScopeStack is the nested-scope symbol table driving semantic analysis
// (spec.md §5 component C4). Scopes are pushed on function/block entry and
// popped on exit; lookups walk from the innermost scope outward.
type ScopeStack struct {
	scopes []*scope
}

// NewScopeStack returns a ScopeStack seeded with a single global scope.
func NewScopeStack() *ScopeStack {
	return &ScopeStack{scopes: []*scope{newScope()}}
}

// ExtendScope pushes a new, empty scope.
func (s *ScopeStack) ExtendScope() {
	s.scopes = append(s.scopes, newScope())
}

// ExitScope pops the innermost scope. Popping the last (global) scope is a
// programming error and panics, since every push is matched by exactly one
// pop in the semantic walker.
func (s *ScopeStack) ExitScope() {
	if len(s.scopes) <= 1 {
		panic("sym: ExitScope called on the global scope")
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Depth returns the number of scopes currently on the stack, 1 for just
// the global scope.
func (s *ScopeStack) Depth() int { return len(s.scopes) }

func (s *ScopeStack) top() *scope { return s.scopes[len(s.scopes)-1] }

// DefineVar registers name in the innermost scope. It reports ok=false
// without overwriting the existing entry if name is already declared in
// that same scope (spec.md §5: redefinition in the same scope is an
// error; shadowing an outer scope is allowed).
func (s *ScopeStack) DefineVar(name string, typ VarType, line int) bool {
	top := s.top()
	if _, exists := top.vars[name]; exists {
		return false
	}
	top.vars[name] = Symbol[VarType]{Name: name, Data: typ, Line: line}
	return true
}

// GetVar looks up name from the innermost scope outward.
func (s *ScopeStack) GetVar(name string) (Symbol[VarType], bool) {
	for i1 := len(s.scopes) - 1; i1 >= 0; i1-- {
		if sym, ok := s.scopes[i1].vars[name]; ok {
			return sym, true
		}
	}
	return Symbol[VarType]{}, false
}

// DefineFunc registers a function in the global scope (spl has no nested
// function declarations). It reports ok=false if name is already declared.
func (s *ScopeStack) DefineFunc(name string, typ FuncType, line int) bool {
	global := s.scopes[0]
	if _, exists := global.funcs[name]; exists {
		return false
	}
	global.funcs[name] = Symbol[FuncType]{Name: name, Data: typ, Line: line}
	return true
}

// GetFunc looks up a function declaration by name.
func (s *ScopeStack) GetFunc(name string) (Symbol[FuncType], bool) {
	sym, ok := s.scopes[0].funcs[name]
	return sym, ok
}

// DefineStruct registers a struct type in the global scope.
func (s *ScopeStack) DefineStruct(name string, typ *StructType, line int) bool {
	global := s.scopes[0]
	if _, exists := global.structs[name]; exists {
		return false
	}
	global.structs[name] = typ
	return true
}

// GetStruct looks up a struct type declaration by name.
func (s *ScopeStack) GetStruct(name string) (*StructType, bool) {
	t, ok := s.scopes[0].structs[name]
	return t, ok
}
