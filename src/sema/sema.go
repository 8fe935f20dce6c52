// Package sema implements the sequential tree walk that drives
// symbol-table construction and type checking (spec.md §5 component C7):
// one src/sym.ScopeStack, one src/check type-compatibility query per
// expression, one src/diag.Bag of ordered diagnostics. It keeps the
// teacher's two-pass shape (src/ir/validate.go populates a global table
// before validating function bodies): Walk first collects globals, structs,
// enums and function signatures, then walks each function body. Both
// passes run one after the other with no parallel validate phase, since
// analysis here is single-threaded.
package sema

import (
	"os"
	"path/filepath"

	"splc/src/ast"
	"splc/src/check"
	"splc/src/diag"
	"splc/src/sym"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Walker carries the state threaded through one semantic analysis pass.
type Walker struct {
	scopes    *sym.ScopeStack
	diags     diag.Bag
	source    string
	path      string
	curReturn sym.VarType
	loopDepth int
}

// ---------------------
// ----- Functions -----
// ---------------------

// Walk performs semantic analysis on prog and returns the accumulated
// diagnostics. It never halts early on an individual error (spec.md §5):
// a malformed declaration is skipped and analysis continues with the rest
// of the program. path is the compiled file's own path, used to resolve
// `#include` targets relative to its directory (SPEC_FULL.md supplemented
// feature, following the original's include resolution).
func Walk(prog *ast.Program, source, path string) *diag.Bag {
	w := &Walker{scopes: sym.NewScopeStack(), source: source, path: path}
	w.collectGlobals(prog)
	w.walkFunctions(prog)
	return &w.diags
}

func (w *Walker) errorf(line int, format string, args ...interface{}) {
	w.diags.Add(diag.New(diag.ClassB, line, format, args...))
}

func (w *Walker) line(n ast.Node) int { return n.Span().Line(w.source) }

// ------------------------------------
// ----- pass 1: global signatures -----
// ------------------------------------

func (w *Walker) collectGlobals(prog *ast.Program) {
	for _, part := range prog.Parts {
		switch v := part.(type) {
		case ast.StatementPart:
			w.collectStatement(v.Stmt)
		case ast.FunctionPart:
			if fd, ok := v.Func.(*ast.FuncDeclaration); ok {
				w.collectFuncSignature(fd)
			}
		}
	}
}

func (w *Walker) collectStatement(s ast.Statement) {
	switch v := s.(type) {
	case ast.StructStmt:
		def, ok := v.Var.(*ast.StructDefinition)
		if !ok {
			return
		}
		st := &sym.StructType{Name: def.Name}
		for _, f := range def.Fields {
			fd, ok := f.(*ast.VarDeclaration)
			if !ok {
				continue
			}
			st.Fields = append(st.Fields, sym.Symbol[sym.VarType]{
				Name: fd.Name,
				Data: sym.VarType{Base: sym.BasicTypeOf(fd.Type), ArrayDims: len(fd.Dims), ArraySizes: literalDimSizes(fd.Dims)},
				Line: w.line(fd),
			})
		}
		if !w.scopes.DefineStruct(def.Name, st, w.line(def)) {
			w.errorf(w.line(def), "struct %q redefined", def.Name)
		}
	case ast.GlobalVariable:
		for _, vv := range v.Vars {
			if decl, ok := vv.(*ast.VarDeclaration); ok {
				w.defineVar(decl.Name, sym.VarType{Base: sym.BasicTypeOf(decl.Type), ArrayDims: len(decl.Dims), ArraySizes: literalDimSizes(decl.Dims)}, w.line(decl))
			}
		}
	case ast.Enum:
		for _, m := range v.Members {
			w.defineVar(m, sym.VarType{Base: sym.TInt}, w.line(v))
		}
	case ast.Include:
		w.checkInclude(v)
	}
}

// checkInclude resolves an #include's quoted path relative to the
// compiled file's own directory and reports an unresolvable target as a
// diagnostic, non-fatal to the rest of analysis (SPEC_FULL.md
// supplemented feature: the include is never expanded, only checked).
func (w *Walker) checkInclude(inc ast.Include) {
	if inc.Path == "" {
		return
	}
	dir := filepath.Dir(w.path)
	if w.path == "" {
		dir = "."
	}
	full := filepath.Join(dir, inc.Path)
	if _, err := os.Stat(full); err != nil {
		w.errorf(w.line(inc), "system error: cannot resolve #include %q: %s", inc.Path, err)
	}
}

func (w *Walker) defineVar(name string, typ sym.VarType, line int) {
	if !w.scopes.DefineVar(name, typ, line) {
		w.errorf(line, "variable %q redefined", name)
	}
}

func (w *Walker) collectFuncSignature(fd *ast.FuncDeclaration) {
	ft := sym.FuncType{Return: sym.VarType{Base: sym.BasicTypeOf(fd.ReturnType)}}
	for _, p := range fd.Params {
		if fp, ok := p.(*ast.FormalParameter); ok {
			ft.Params = append(ft.Params, sym.VarType{Base: sym.BasicTypeOf(fp.Type), ArrayDims: len(fp.Dims), ArraySizes: literalDimSizes(fp.Dims)})
		}
	}
	if !w.scopes.DefineFunc(fd.Name, ft, w.line(fd)) {
		w.errorf(w.line(fd), "function %q redefined", fd.Name)
	}
}

// ------------------------------------
// ----- pass 2: function bodies  -----
// ------------------------------------

func (w *Walker) walkFunctions(prog *ast.Program) {
	for _, part := range prog.Parts {
		fp, ok := part.(ast.FunctionPart)
		if !ok {
			continue
		}
		fd, ok := fp.Func.(*ast.FuncDeclaration)
		if !ok || fd.Body == nil {
			continue
		}
		w.scopes.ExtendScope()
		for _, p := range fd.Params {
			if fp, ok := p.(*ast.FormalParameter); ok {
				w.defineVar(fp.Name, sym.VarType{Base: sym.BasicTypeOf(fp.Type), ArrayDims: len(fp.Dims), ArraySizes: literalDimSizes(fp.Dims)}, w.line(fp))
			}
		}
		w.curReturn = sym.VarType{Base: sym.BasicTypeOf(fd.ReturnType)}
		w.walkBody(fd.Body)
		w.scopes.ExitScope()
	}
}

func (w *Walker) walkBody(b *ast.Body) {
	if b == nil || b.Err {
		return
	}
	for _, e := range b.Exprs {
		w.walkExpr(e)
	}
}

func (w *Walker) walkExpr(e ast.Expr) {
	switch v := e.(type) {
	case ast.IfStmt:
		w.walkIf(v.If)
	case ast.LoopStmt:
		w.walkLoop(v.Loop)
	case ast.VarManagement:
		w.walkVarManagement(v.Vars)
	case ast.FuncCallStmt:
		w.checkCall(v.Call, w.line(v))
	case ast.NestedBody:
		w.scopes.ExtendScope()
		w.walkBody(v.Body)
		w.scopes.ExitScope()
	case ast.BreakStmt:
		if w.loopDepth == 0 {
			w.errorf(w.line(v), "break outside of a loop")
		}
	case ast.ContinueStmt:
		if w.loopDepth == 0 {
			w.errorf(w.line(v), "continue outside of a loop")
		}
	case ast.ReturnStmt:
		if v.E == nil {
			if w.curReturn.Base != sym.TVoid {
				w.errorf(w.line(v), "missing return value for function returning %s", w.curReturn)
			}
			return
		}
		got, ok := w.exprType(v.E)
		if ok && !check.ReturnCompatible(w.curReturn.Base, got.Base) {
			w.errorf(w.line(v), "cannot return %s from function declared to return %s", got, w.curReturn)
		}
	case ast.ErrorExprStmt:
		// Already reported by the parser.
	}
}

func (w *Walker) walkIf(i ast.If) {
	switch v := i.(type) {
	case *ast.IfExpr:
		w.checkCond(v.Cond)
		w.scopes.ExtendScope()
		w.walkBody(v.Then)
		w.scopes.ExitScope()
	case *ast.IfElseExpr:
		w.checkCond(v.Cond)
		w.scopes.ExtendScope()
		w.walkBody(v.Then)
		w.scopes.ExitScope()
		w.scopes.ExtendScope()
		w.walkBody(v.Else)
		w.scopes.ExitScope()
	}
}

func (w *Walker) walkLoop(l ast.Loop) {
	w.loopDepth++
	defer func() { w.loopDepth-- }()
	switch v := l.(type) {
	case *ast.WhileExpr:
		w.checkCond(v.Cond)
		w.scopes.ExtendScope()
		w.walkBody(v.Body)
		w.scopes.ExitScope()
	case *ast.ForExpr:
		w.scopes.ExtendScope()
		if v.Init != nil {
			w.walkVarManagement(v.Init.Vars)
		}
		if v.Cond != nil {
			w.checkCond(v.Cond)
		}
		if v.Step != nil {
			w.walkVarManagement(v.Step.Vars)
		}
		w.walkBody(v.Body)
		w.scopes.ExitScope()
	}
}

func (w *Walker) walkVarManagement(vars []ast.Variable) {
	for _, vv := range vars {
		switch v := vv.(type) {
		case *ast.VarDeclaration:
			w.defineVar(v.Name, sym.VarType{Base: sym.BasicTypeOf(v.Type), ArrayDims: len(v.Dims), ArraySizes: literalDimSizes(v.Dims)}, w.line(v))
		case *ast.StructDeclaration:
			if _, ok := w.scopes.GetStruct(v.StructName); !ok {
				w.errorf(w.line(v), "undeclared struct type %q", v.StructName)
			}
			w.defineVar(v.InstanceName, sym.VarType{Base: sym.TStruct, StructName: v.StructName, ArrayDims: len(v.Dims), ArraySizes: literalDimSizes(v.Dims)}, w.line(v))
		case *ast.StructDefinition:
			w.collectStatement(ast.StructStmt{Var: v})
		case *ast.VarAssignment:
			w.checkAssign(v)
		case ast.IncDecStmt:
			if _, ok := w.varType(v.Target); !ok {
				w.errorf(w.line(v), "undeclared variable in increment/decrement")
			}
		}
	}
}

func (w *Walker) checkAssign(v *ast.VarAssignment) {
	lt, ok := w.varType(v.Lhs)
	if !ok {
		w.errorf(w.line(v), "assignment to undeclared variable")
		return
	}
	if al, ok := v.Rhs.(ast.ArrayLiteral); ok {
		for _, elem := range al.Elems {
			if et, ok := w.exprType(elem); ok && !check.Assignable(lt.Base, et.Base) {
				w.errorf(w.line(v), "cannot initialise %s array element with %s", lt.Base, et.Base)
			}
		}
		return
	}
	rt, ok := w.exprType(v.Rhs)
	if !ok {
		return
	}
	opBase := lt.Base
	if v.Compound != nil {
		if _, ok := check.BinOpResult(lt.Base, rt.Base, binOpOf(*v.Compound)); !ok {
			w.errorf(w.line(v), "operator not defined for %s and %s", lt.Base, rt.Base)
			return
		}
	}
	if !check.Assignable(opBase, rt.Base) {
		w.errorf(w.line(v), "cannot assign %s to variable of type %s", rt.Base, lt.Base)
	}
}

func (w *Walker) checkCond(c ast.CondExpr) {
	switch v := c.(type) {
	case ast.BoolCond:
		if t, ok := w.exprType(v.E); ok && t.Base != sym.TBool && t.Base != sym.TInt {
			w.errorf(w.line(v), "condition expects a boolean-valued expression, got %s", t.Base)
		}
	case ast.UnaryCondition:
		w.checkCond(v.E)
	case ast.BinaryCondition:
		w.checkCond(v.L)
		w.checkCond(v.R)
	case ast.Condition:
		lt, lok := w.exprType(v.L)
		rt, rok := w.exprType(v.R)
		if lok && rok && !check.Comparable(lt.Base, rt.Base) {
			w.errorf(w.line(v), "cannot compare %s with %s", lt.Base, rt.Base)
		}
	}
}

// exprType computes the VarType of a CompExpr, recording any type errors
// found along the way. ok is false when the subtree is unresolvable
// (undeclared identifier, already-reported parse error), in which case
// the caller should not report a secondary error on top of it.
func (w *Walker) exprType(e ast.CompExpr) (sym.VarType, bool) {
	switch v := e.(type) {
	case ast.ValueExpr:
		return valueType(v.Val), true
	case ast.VariableExpr:
		return w.varType(v.Var)
	case ast.FuncCallExpr:
		return w.checkCall(v.Call, w.line(v))
	case ast.UnaryOperation:
		t, ok := w.exprType(v.E)
		if !ok {
			return t, false
		}
		switch v.Op {
		case ast.Ref, ast.Deref:
			return t, true
		default:
			return t, true
		}
	case ast.BinaryOperation:
		lt, lok := w.exprType(v.L)
		rt, rok := w.exprType(v.R)
		if !lok || !rok {
			return sym.VarType{}, false
		}
		res, ok := check.BinOpResult(lt.Base, rt.Base, binOpOf(v.Op))
		if !ok {
			w.errorf(w.line(v), "operator not defined for %s and %s", lt.Base, rt.Base)
			return sym.VarType{}, false
		}
		return sym.VarType{Base: res}, true
	case ast.ArrayLiteral:
		if len(v.Elems) == 0 {
			return sym.VarType{}, false
		}
		return w.exprType(v.Elems[0])
	default:
		// ErrorExpr, InvalidExpr, MissingRP: already reported by the parser.
		return sym.VarType{}, false
	}
}

func valueType(v ast.Value) sym.VarType {
	switch v.(type) {
	case ast.IntegerValue:
		return sym.VarType{Base: sym.TInt}
	case ast.FloatValue:
		return sym.VarType{Base: sym.TFloat}
	case ast.StringValue:
		return sym.VarType{Base: sym.TString}
	case ast.CharValue:
		return sym.VarType{Base: sym.TChar}
	case ast.BoolValue:
		return sym.VarType{Base: sym.TBool}
	default:
		return sym.VarType{Base: sym.TInt}
	}
}

func binOpOf(op ast.BinaryOperator) check.BinOp {
	switch op {
	case ast.Add:
		return check.OpAdd
	case ast.Sub:
		return check.OpSub
	case ast.Mul:
		return check.OpMul
	case ast.Div:
		return check.OpDiv
	case ast.Mod:
		return check.OpMod
	case ast.BitwiseAnd, ast.And:
		return check.OpBitAnd
	case ast.BitwiseOr, ast.Or:
		return check.OpBitOr
	case ast.BitwiseXor, ast.Pow:
		return check.OpBitXor
	default:
		return check.OpAdd
	}
}

// varType resolves the VarType of a Variable used in expression or
// assignment position, reducing ArrayDims by the number of subscripts
// applied and following struct member chains. Every literal subscript is
// bounds-checked against the declaration's literal dimension sizes
// (spec.md §4.5 check_type, Testable Property 8): a literal index that is
// not less than its dimension's declared size is an error.
func (w *Walker) varType(v ast.Variable) (sym.VarType, bool) {
	switch r := v.(type) {
	case *ast.VarReference:
		sy, ok := w.scopes.GetVar(r.Name)
		if !ok {
			w.errorf(w.line(r), "undeclared identifier %q", r.Name)
			return sym.VarType{}, false
		}
		t := sy.Data
		if len(r.Dims) > t.ArrayDims {
			w.errorf(w.line(r), "too many subscripts on %q", r.Name)
			return sym.VarType{}, false
		}
		w.checkIndexBounds(r.Name, t.ArraySizes, r.Dims)
		t.ArrayDims -= len(r.Dims)
		if len(t.ArraySizes) >= len(r.Dims) {
			t.ArraySizes = t.ArraySizes[len(r.Dims):]
		}
		return t, true
	case *ast.StructReference:
		if len(r.Path) == 0 {
			return sym.VarType{}, false
		}
		cur, ok := w.varType(r.Path[0])
		if !ok {
			return sym.VarType{}, false
		}
		for _, hop := range r.Path[1:] {
			if cur.Base != sym.TStruct {
				w.errorf(w.line(hop), "member access on non-struct value")
				return sym.VarType{}, false
			}
			st, ok := w.scopes.GetStruct(cur.StructName)
			if !ok {
				return sym.VarType{}, false
			}
			ft, ok := st.FieldType(hop.Name)
			if !ok {
				w.errorf(w.line(hop), "struct %q has no field %q", cur.StructName, hop.Name)
				return sym.VarType{}, false
			}
			if len(hop.Dims) > ft.ArrayDims {
				w.errorf(w.line(hop), "too many subscripts on %q", hop.Name)
				return sym.VarType{}, false
			}
			w.checkIndexBounds(hop.Name, ft.ArraySizes, hop.Dims)
			ft.ArrayDims -= len(hop.Dims)
			if len(ft.ArraySizes) >= len(hop.Dims) {
				ft.ArraySizes = ft.ArraySizes[len(hop.Dims):]
			}
			cur = ft
		}
		return cur, true
	case *ast.VarDeclaration:
		return sym.VarType{Base: sym.BasicTypeOf(r.Type), ArrayDims: len(r.Dims), ArraySizes: literalDimSizes(r.Dims)}, true
	default:
		return sym.VarType{}, false
	}
}

// checkIndexBounds reports a diagnostic for each literal index that is not
// less than its dimension's declared literal size. Non-literal indices and
// dimensions whose declared size was not itself a literal are not checked,
// since the bound is only known at compile time for literals (spec.md §4.5:
// "bounds are compile-time if the index is a literal").
func (w *Walker) checkIndexBounds(name string, sizes []int, indices []ast.CompExpr) {
	for i1, idx := range indices {
		if i1 >= len(sizes) || sizes[i1] < 0 {
			continue
		}
		iv, ok := literalIndexValue(idx)
		if !ok {
			continue
		}
		if iv < 0 || iv >= sizes[i1] {
			w.errorf(w.line(idx), "array index %d out of bounds for %q (declared size %d)", iv, name, sizes[i1])
		}
	}
}

// literalDimSizes extracts each declared dimension's literal size from a
// VarDeclaration/FormalParameter/StructDeclaration's Dims, or -1 where the
// size expression is not an integer literal (its bound cannot be checked at
// compile time, per spec.md §4.5).
func literalDimSizes(dims []ast.CompExpr) []int {
	sizes := make([]int, len(dims))
	for i1, d := range dims {
		if v, ok := literalIndexValue(d); ok {
			sizes[i1] = v
		} else {
			sizes[i1] = -1
		}
	}
	return sizes
}

// literalIndexValue reports the integer value of e if it is a bare integer
// literal, or ok=false otherwise.
func literalIndexValue(e ast.CompExpr) (int, bool) {
	if v, ok := e.(ast.ValueExpr); ok {
		if iv, ok := v.Val.(ast.IntegerValue); ok {
			return int(iv), true
		}
	}
	return 0, false
}

// checkCall validates a call's argument count and types against the
// declared function signature and returns its return type. The host
// runtime's printf/scanf (spec.md §4.6) are special-cased: they accept any
// argument list and are never declared in source, so they bypass the
// scope-stack lookup entirely and always type as Int.
func (w *Walker) checkCall(call *ast.FuncReference, line int) (sym.VarType, bool) {
	if call.Name == "printf" || call.Name == "scanf" {
		for _, arg := range call.Args {
			w.exprType(arg)
		}
		return sym.VarType{Base: sym.TInt}, true
	}
	f, ok := w.scopes.GetFunc(call.Name)
	if !ok {
		w.errorf(line, "undeclared function %q", call.Name)
		return sym.VarType{}, false
	}
	if len(call.Args) != len(f.Data.Params) {
		w.errorf(line, "function %q expects %d arguments, got %d", call.Name, len(f.Data.Params), len(call.Args))
		return f.Data.Return, true
	}
	for i1, arg := range call.Args {
		at, ok := w.exprType(arg)
		if !ok {
			continue
		}
		if !check.ParamCompatible(f.Data.Params[i1].Base, at.Base) {
			w.errorf(line, "function %q parameter %d expects %s, got %s", call.Name, i1+1, f.Data.Params[i1].Base, at.Base)
		}
	}
	return f.Data.Return, true
}
