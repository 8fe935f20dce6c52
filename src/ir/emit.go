// Package ir lowers a type-checked src/ast.Program to LLVM IR using
// tinygo.org/x/go-llvm. The walk shape (a builder tracking one insert
// point, a symbol table mapping names to alloca'd llvm.Value pointers, a
// basic-block-per-construct strategy for if/while/for) is grounded on the
// teacher's src/ir/llvm/transform.go (genFuncBody, genExpression,
// genAssign, genIf, genWhile). Unlike that file, analysis here is
// sequential (spec.md §5), so the per-thread mutex-guarded symbol table
// is replaced with a plain scope stack of maps, and there is exactly one
// llvm.Builder for the whole emission, not one per worker.
package ir

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"splc/src/ast"
	"splc/src/token"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Emitter holds the LLVM context, module and builder live for one
// GenLLVM call, plus the name-to-value symbol tables it threads through
// the tree walk.
type Emitter struct {
	ctx     llvm.Context
	builder llvm.Builder
	module  llvm.Module

	structDefs  map[string]*ast.StructDefinition
	structTypes map[string]llvm.Type

	globals map[string]llvm.Value
	funcs   map[string]llvm.Value
	scopes  []map[string]llvm.Value

	curFunc    llvm.Value
	curRetType token.Kind

	loopHead []llvm.BasicBlock // continue target, innermost last
	loopExit []llvm.BasicBlock // break target, innermost last

	err error
}

// ---------------------
// ----- Functions -----
// ---------------------

// GenLLVM lowers prog to LLVM IR and returns its textual module dump
// (spec.md §4.7's required format: a module carrying `; ModuleID = ...`
// and `source_filename = ...` headers is exactly what LLVM's own printer
// emits). moduleName is typically the source file's base name. triple, if
// non-empty, is recorded as the module's target triple; an empty triple
// leaves LLVM's module-level default (no explicit "target triple" line).
func GenLLVM(prog *ast.Program, moduleName, triple string) (string, error) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	b := ctx.NewBuilder()
	defer b.Dispose()
	m := ctx.NewModule(moduleName)
	defer m.Dispose()
	if triple != "" {
		m.SetTarget(triple)
	}

	e := &Emitter{
		ctx:         ctx,
		builder:     b,
		module:      m,
		structDefs:  make(map[string]*ast.StructDefinition),
		structTypes: make(map[string]llvm.Type),
		globals:     make(map[string]llvm.Value),
		funcs:       make(map[string]llvm.Value),
	}

	e.collectStructs(prog)
	e.declareGlobalsAndFuncs(prog)
	e.emitFuncBodies(prog)
	if e.err != nil {
		return "", e.err
	}
	return m.String(), nil
}

func (e *Emitter) fail(format string, args ...interface{}) {
	if e.err == nil {
		e.err = fmt.Errorf(format, args...)
	}
}

// -------------------------------
// ----- type table plumbing -----
// -------------------------------

// genType maps a type token and array dimension count to the LLVM type it
// lowers to. Array dimensions must be literal integers (spec.md §4.6); a
// non-literal dimension falls back to a pointer to the element type,
// which models a dynamically sized buffer without a known static layout.
func (e *Emitter) genType(k token.Kind, dims []ast.CompExpr) llvm.Type {
	base := e.scalarType(k)
	t := base
	for i1 := len(dims) - 1; i1 >= 0; i1-- {
		if n, ok := literalArrayLen(dims[i1]); ok {
			t = llvm.ArrayType(t, n)
		} else {
			t = llvm.PointerType(t, 0)
		}
	}
	return t
}

func (e *Emitter) scalarType(k token.Kind) llvm.Type {
	switch k {
	case token.TyInt:
		return e.ctx.Int32Type()
	case token.TyFloat:
		return e.ctx.FloatType()
	case token.TyChar:
		return e.ctx.Int8Type()
	case token.TyString:
		return llvm.PointerType(e.ctx.Int8Type(), 0)
	case token.TyVoid:
		return e.ctx.VoidType()
	default:
		return e.ctx.Int32Type()
	}
}

func literalArrayLen(e ast.CompExpr) (int, bool) {
	ve, ok := e.(ast.ValueExpr)
	if !ok {
		return 0, false
	}
	iv, ok := ve.Val.(ast.IntegerValue)
	if !ok {
		return 0, false
	}
	return int(iv), true
}

// collectStructs registers every struct definition's LLVM struct type
// before any function body is emitted, so mutually referencing structs
// and functions resolve regardless of declaration order.
func (e *Emitter) collectStructs(prog *ast.Program) {
	for _, part := range prog.Parts {
		sp, ok := part.(ast.StatementPart)
		if !ok {
			continue
		}
		ss, ok := sp.Stmt.(ast.StructStmt)
		if !ok {
			continue
		}
		def, ok := ss.Var.(*ast.StructDefinition)
		if !ok {
			continue
		}
		e.structDefs[def.Name] = def
	}
	for name, def := range e.structDefs {
		fieldTypes := make([]llvm.Type, 0, len(def.Fields))
		for _, f := range def.Fields {
			fd, ok := f.(*ast.VarDeclaration)
			if !ok {
				continue
			}
			fieldTypes = append(fieldTypes, e.genType(fd.Type, fd.Dims))
		}
		st := e.ctx.StructCreateNamed(name)
		st.StructSetBody(fieldTypes, false)
		e.structTypes[name] = st
	}
}

// declareGlobalsAndFuncs emits every global variable and function
// signature, so a function may reference a global or call a sibling
// function declared later in the source.
func (e *Emitter) declareGlobalsAndFuncs(prog *ast.Program) {
	for _, part := range prog.Parts {
		switch v := part.(type) {
		case ast.StatementPart:
			e.declareStatement(v.Stmt)
		case ast.FunctionPart:
			if fd, ok := v.Func.(*ast.FuncDeclaration); ok {
				e.declareFunc(fd)
			}
		}
	}
}

func (e *Emitter) declareStatement(s ast.Statement) {
	switch v := s.(type) {
	case ast.GlobalVariable:
		for _, vv := range v.Vars {
			switch decl := vv.(type) {
			case *ast.VarDeclaration:
				t := e.genType(decl.Type, decl.Dims)
				g := llvm.AddGlobal(e.module, t, decl.Name)
				g.SetInitializer(llvm.ConstNull(t))
				e.globals[decl.Name] = g
			case *ast.VarAssignment:
				// Only a literal initialiser can be folded into the global's
				// SetInitializer; a non-constant global initialiser would need
				// a runtime init routine ahead of main, which is out of scope.
				ref, ok := decl.Lhs.(*ast.VarReference)
				if !ok {
					continue
				}
				g, ok := e.globals[ref.Name]
				if !ok {
					continue
				}
				if ve, ok := decl.Rhs.(ast.ValueExpr); ok {
					g.SetInitializer(e.emitValue(ve.Val))
				}
			}
		}
	case ast.Enum:
		for i1, m := range v.Members {
			t := e.ctx.Int32Type()
			g := llvm.AddGlobal(e.module, t, m)
			g.SetInitializer(llvm.ConstInt(t, uint64(i1), false))
			g.SetGlobalConstant(true)
			e.globals[m] = g
		}
	}
}

func (e *Emitter) declareFunc(fd *ast.FuncDeclaration) {
	paramTypes := make([]llvm.Type, 0, len(fd.Params))
	paramNames := make([]string, 0, len(fd.Params))
	for _, p := range fd.Params {
		fp, ok := p.(*ast.FormalParameter)
		if !ok {
			continue
		}
		paramTypes = append(paramTypes, e.genType(fp.Type, fp.Dims))
		paramNames = append(paramNames, fp.Name)
	}
	ret := e.scalarType(fd.ReturnType)
	ftyp := llvm.FunctionType(ret, paramTypes, false)
	fn := llvm.AddFunction(e.module, fd.Name, ftyp)
	for i1, param := range fn.Params() {
		param.SetName(paramNames[i1])
	}
	e.funcs[fd.Name] = fn
}

// ------------------------------
// ----- function bodies -----
// ------------------------------

func (e *Emitter) emitFuncBodies(prog *ast.Program) {
	for _, part := range prog.Parts {
		fp, ok := part.(ast.FunctionPart)
		if !ok {
			continue
		}
		fd, ok := fp.Func.(*ast.FuncDeclaration)
		if !ok || fd.Body == nil {
			continue
		}
		e.emitFunc(fd)
	}
}

func (e *Emitter) emitFunc(fd *ast.FuncDeclaration) {
	fn := e.funcs[fd.Name]
	e.curFunc = fn
	e.curRetType = fd.ReturnType

	entry := llvm.AddBasicBlock(fn, "entry")
	e.builder.SetInsertPointAtEnd(entry)

	e.pushScope()
	defer e.popScope()

	for i1, param := range fn.Params() {
		alloc := e.builder.CreateAlloca(param.Type(), param.Name())
		e.builder.CreateStore(param, alloc)
		e.define(paramName(fd.Params[i1]), alloc)
	}

	e.emitBody(fd.Body)

	// A fall-through block at the end of a non-void function with no
	// trailing return is undefined behaviour at the source level; emit an
	// unreachable terminator so the module still verifies.
	if block := e.builder.GetInsertBlock(); block.LastInstruction().IsNil() || !isTerminator(block) {
		if fd.ReturnType == token.TyVoid {
			e.builder.CreateRetVoid()
		} else {
			e.builder.CreateUnreachable()
		}
	}
}

func paramName(v ast.Variable) string {
	if fp, ok := v.(*ast.FormalParameter); ok {
		return fp.Name
	}
	return ""
}

func isTerminator(bb llvm.BasicBlock) bool {
	last := bb.LastInstruction()
	if last.IsNil() {
		return false
	}
	switch last.InstructionOpcode() {
	case llvm.Ret, llvm.Br, llvm.Switch, llvm.Unreachable:
		return true
	default:
		return false
	}
}

func (e *Emitter) pushScope() { e.scopes = append(e.scopes, make(map[string]llvm.Value)) }
func (e *Emitter) popScope()  { e.scopes = e.scopes[:len(e.scopes)-1] }

func (e *Emitter) define(name string, v llvm.Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

// lookup resolves name to its storage location, innermost scope first,
// then globals.
func (e *Emitter) lookup(name string) (llvm.Value, bool) {
	for i1 := len(e.scopes) - 1; i1 >= 0; i1-- {
		if v, ok := e.scopes[i1][name]; ok {
			return v, true
		}
	}
	if v, ok := e.globals[name]; ok {
		return v, true
	}
	return llvm.Value{}, false
}

func (e *Emitter) emitBody(b *ast.Body) {
	if b == nil || b.Err {
		return
	}
	for _, stmt := range b.Exprs {
		e.emitStmt(stmt)
	}
}

func (e *Emitter) emitStmt(s ast.Expr) {
	switch v := s.(type) {
	case ast.IfStmt:
		e.emitIf(v.If)
	case ast.LoopStmt:
		e.emitLoop(v.Loop)
	case ast.VarManagement:
		e.emitVarManagement(v.Vars)
	case ast.FuncCallStmt:
		e.emitCall(v.Call)
	case ast.NestedBody:
		e.pushScope()
		e.emitBody(v.Body)
		e.popScope()
	case ast.BreakStmt:
		if len(e.loopExit) > 0 {
			e.builder.CreateBr(e.loopExit[len(e.loopExit)-1])
		}
	case ast.ContinueStmt:
		if len(e.loopHead) > 0 {
			e.builder.CreateBr(e.loopHead[len(e.loopHead)-1])
		}
	case ast.ReturnStmt:
		if v.E == nil {
			e.builder.CreateRetVoid()
			return
		}
		val := e.emitExpr(v.E)
		e.builder.CreateRet(val)
	}
}

func (e *Emitter) emitVarManagement(vars []ast.Variable) {
	for _, vv := range vars {
		switch v := vv.(type) {
		case *ast.VarDeclaration:
			t := e.genType(v.Type, v.Dims)
			alloc := e.builder.CreateAlloca(t, v.Name)
			e.define(v.Name, alloc)
		case *ast.StructDeclaration:
			t, ok := e.structTypes[v.StructName]
			if !ok {
				e.fail("undeclared struct type %q", v.StructName)
				continue
			}
			alloc := e.builder.CreateAlloca(t, v.InstanceName)
			e.define(v.InstanceName, alloc)
		case *ast.VarAssignment:
			e.emitAssign(v)
		case ast.IncDecStmt:
			e.emitIncDec(v.Target, v.Op)
		}
	}
}

func (e *Emitter) emitIncDec(target ast.Variable, op ast.UnaryOperator) {
	ptr, t := e.addrOf(target)
	if ptr.IsNil() {
		return
	}
	cur := e.builder.CreateLoad(t, ptr, "")
	var next llvm.Value
	if t.TypeKind() == llvm.FloatTypeKind {
		one := llvm.ConstFloat(t, 1.0)
		if op == ast.Inc {
			next = e.builder.CreateFAdd(cur, one, "")
		} else {
			next = e.builder.CreateFSub(cur, one, "")
		}
	} else {
		one := llvm.ConstInt(t, 1, false)
		if op == ast.Inc {
			next = e.builder.CreateAdd(cur, one, "")
		} else {
			next = e.builder.CreateSub(cur, one, "")
		}
	}
	e.builder.CreateStore(next, ptr)
}

func (e *Emitter) emitAssign(v *ast.VarAssignment) {
	ptr, t := e.addrOf(v.Lhs)
	if ptr.IsNil() {
		return
	}
	if al, ok := v.Rhs.(ast.ArrayLiteral); ok {
		for i1, elem := range al.Elems {
			idx := []llvm.Value{
				llvm.ConstInt(e.ctx.Int32Type(), 0, false),
				llvm.ConstInt(e.ctx.Int32Type(), uint64(i1), false),
			}
			ep := e.builder.CreateGEP(t, ptr, idx, "")
			e.builder.CreateStore(e.emitExpr(elem), ep)
		}
		return
	}
	rhs := e.emitExpr(v.Rhs)
	if v.Compound != nil {
		cur := e.builder.CreateLoad(t, ptr, "")
		rhs = e.emitBinOp(*v.Compound, cur, rhs)
	}
	e.builder.CreateStore(rhs, ptr)
}

// addrOf resolves a Variable to its storage pointer and pointee type,
// following array subscripts and struct member hops via GEP.
func (e *Emitter) addrOf(v ast.Variable) (llvm.Value, llvm.Type) {
	switch r := v.(type) {
	case *ast.VarReference:
		ptr, ok := e.lookup(r.Name)
		if !ok {
			e.fail("undeclared identifier %q", r.Name)
			return llvm.Value{}, llvm.Type{}
		}
		t := ptr.AllocatedType()
		for _, dim := range r.Dims {
			idx := []llvm.Value{
				llvm.ConstInt(e.ctx.Int32Type(), 0, false),
				e.emitExpr(dim),
			}
			ptr = e.builder.CreateGEP(t, ptr, idx, "")
			t = t.ElementType()
		}
		return ptr, t
	case *ast.StructReference:
		if len(r.Path) == 0 {
			return llvm.Value{}, llvm.Type{}
		}
		ptr, t := e.addrOf(r.Path[0])
		for _, hop := range r.Path[1:] {
			name := structNameOf(t)
			def, ok := e.structDefs[name]
			if !ok {
				e.fail("unknown struct layout for %q", name)
				return llvm.Value{}, llvm.Type{}
			}
			idx, fieldType, ok := fieldIndex(def, hop.Name, e)
			if !ok {
				e.fail("struct %q has no field %q", name, hop.Name)
				return llvm.Value{}, llvm.Type{}
			}
			gep := []llvm.Value{
				llvm.ConstInt(e.ctx.Int32Type(), 0, false),
				llvm.ConstInt(e.ctx.Int32Type(), uint64(idx), false),
			}
			ptr = e.builder.CreateGEP(t, ptr, gep, "")
			t = fieldType
		}
		return ptr, t
	default:
		return llvm.Value{}, llvm.Type{}
	}
}

func structNameOf(t llvm.Type) string {
	if t.TypeKind() != llvm.StructTypeKind {
		return ""
	}
	return t.StructName()
}

func fieldIndex(def *ast.StructDefinition, name string, e *Emitter) (int, llvm.Type, bool) {
	for i1, f := range def.Fields {
		fd, ok := f.(*ast.VarDeclaration)
		if !ok {
			continue
		}
		if fd.Name == name {
			return i1, e.genType(fd.Type, fd.Dims), true
		}
	}
	return 0, llvm.Type{}, false
}

// ------------------------------
// ----- control flow  ----------
// ------------------------------

func (e *Emitter) emitIf(i ast.If) {
	switch v := i.(type) {
	case *ast.IfExpr:
		cond := e.emitCond(v.Cond)
		thenBB := llvm.AddBasicBlock(e.curFunc, "if.then")
		contBB := llvm.AddBasicBlock(e.curFunc, "if.end")
		e.builder.CreateCondBr(cond, thenBB, contBB)
		e.builder.SetInsertPointAtEnd(thenBB)
		e.pushScope()
		e.emitBody(v.Then)
		e.popScope()
		e.branchIfOpen(contBB)
		e.builder.SetInsertPointAtEnd(contBB)
	case *ast.IfElseExpr:
		cond := e.emitCond(v.Cond)
		thenBB := llvm.AddBasicBlock(e.curFunc, "if.then")
		elseBB := llvm.AddBasicBlock(e.curFunc, "if.else")
		contBB := llvm.AddBasicBlock(e.curFunc, "if.end")
		e.builder.CreateCondBr(cond, thenBB, elseBB)
		e.builder.SetInsertPointAtEnd(thenBB)
		e.pushScope()
		e.emitBody(v.Then)
		e.popScope()
		e.branchIfOpen(contBB)
		e.builder.SetInsertPointAtEnd(elseBB)
		e.pushScope()
		e.emitBody(v.Else)
		e.popScope()
		e.branchIfOpen(contBB)
		e.builder.SetInsertPointAtEnd(contBB)
	}
}

// branchIfOpen emits an unconditional branch to target unless the current
// block already ends in a terminator (e.g. a `return` inside the branch).
func (e *Emitter) branchIfOpen(target llvm.BasicBlock) {
	if !isTerminator(e.builder.GetInsertBlock()) {
		e.builder.CreateBr(target)
	}
}

func (e *Emitter) emitLoop(l ast.Loop) {
	switch v := l.(type) {
	case *ast.WhileExpr:
		headBB := llvm.AddBasicBlock(e.curFunc, "while.head")
		bodyBB := llvm.AddBasicBlock(e.curFunc, "while.body")
		exitBB := llvm.AddBasicBlock(e.curFunc, "while.end")
		e.branchIfOpen(headBB)
		e.builder.SetInsertPointAtEnd(headBB)
		cond := e.emitCond(v.Cond)
		e.builder.CreateCondBr(cond, bodyBB, exitBB)
		e.builder.SetInsertPointAtEnd(bodyBB)
		e.loopHead = append(e.loopHead, headBB)
		e.loopExit = append(e.loopExit, exitBB)
		e.pushScope()
		e.emitBody(v.Body)
		e.popScope()
		e.loopHead = e.loopHead[:len(e.loopHead)-1]
		e.loopExit = e.loopExit[:len(e.loopExit)-1]
		e.branchIfOpen(headBB)
		e.builder.SetInsertPointAtEnd(exitBB)
	case *ast.ForExpr:
		e.pushScope()
		if v.Init != nil {
			e.emitVarManagement(v.Init.Vars)
		}
		headBB := llvm.AddBasicBlock(e.curFunc, "for.head")
		bodyBB := llvm.AddBasicBlock(e.curFunc, "for.body")
		stepBB := llvm.AddBasicBlock(e.curFunc, "for.step")
		exitBB := llvm.AddBasicBlock(e.curFunc, "for.end")
		e.branchIfOpen(headBB)
		e.builder.SetInsertPointAtEnd(headBB)
		if v.Cond != nil {
			cond := e.emitCond(v.Cond)
			e.builder.CreateCondBr(cond, bodyBB, exitBB)
		} else {
			e.builder.CreateBr(bodyBB)
		}
		e.builder.SetInsertPointAtEnd(bodyBB)
		e.loopHead = append(e.loopHead, stepBB)
		e.loopExit = append(e.loopExit, exitBB)
		e.emitBody(v.Body)
		e.loopHead = e.loopHead[:len(e.loopHead)-1]
		e.loopExit = e.loopExit[:len(e.loopExit)-1]
		e.branchIfOpen(stepBB)
		e.builder.SetInsertPointAtEnd(stepBB)
		if v.Step != nil {
			e.emitVarManagement(v.Step.Vars)
		}
		e.branchIfOpen(headBB)
		e.builder.SetInsertPointAtEnd(exitBB)
		e.popScope()
	}
}

// ------------------------------
// ----- expressions  ------------
// ------------------------------

func (e *Emitter) emitCond(c ast.CondExpr) llvm.Value {
	switch v := c.(type) {
	case ast.BoolCond:
		return e.emitExpr(v.E)
	case ast.UnaryCondition:
		val := e.emitCond(v.E)
		return e.builder.CreateNot(val, "")
	case ast.BinaryCondition:
		l := e.emitCond(v.L)
		r := e.emitCond(v.R)
		if v.Op == ast.LogAnd {
			return e.builder.CreateAnd(l, r, "")
		}
		return e.builder.CreateOr(l, r, "")
	case ast.Condition:
		l := e.emitExpr(v.L)
		r := e.emitExpr(v.R)
		if l.Type().TypeKind() == llvm.FloatTypeKind {
			return e.builder.CreateFCmp(fcmpOp(v.Cmp), l, r, "")
		}
		return e.builder.CreateICmp(icmpOp(v.Cmp), l, r, "")
	default:
		return llvm.ConstInt(e.ctx.Int1Type(), 0, false)
	}
}

func icmpOp(j ast.JudgeOperator) llvm.IntPredicate {
	switch j {
	case ast.GT:
		return llvm.IntSGT
	case ast.GE:
		return llvm.IntSGE
	case ast.LT:
		return llvm.IntSLT
	case ast.LE:
		return llvm.IntSLE
	case ast.EQ:
		return llvm.IntEQ
	default:
		return llvm.IntNE
	}
}

func fcmpOp(j ast.JudgeOperator) llvm.FloatPredicate {
	switch j {
	case ast.GT:
		return llvm.FloatOGT
	case ast.GE:
		return llvm.FloatOGE
	case ast.LT:
		return llvm.FloatOLT
	case ast.LE:
		return llvm.FloatOLE
	case ast.EQ:
		return llvm.FloatOEQ
	default:
		return llvm.FloatONE
	}
}

func (e *Emitter) emitExpr(expr ast.CompExpr) llvm.Value {
	switch v := expr.(type) {
	case ast.ValueExpr:
		return e.emitValue(v.Val)
	case ast.VariableExpr:
		ptr, t := e.addrOf(v.Var)
		if ptr.IsNil() {
			return llvm.ConstInt(e.ctx.Int32Type(), 0, false)
		}
		return e.builder.CreateLoad(t, ptr, "")
	case ast.FuncCallExpr:
		return e.emitCall(v.Call)
	case ast.UnaryOperation:
		return e.emitUnary(v)
	case ast.BinaryOperation:
		l := e.emitExpr(v.L)
		r := e.emitExpr(v.R)
		return e.emitBinOp(v.Op, l, r)
	default:
		return llvm.ConstInt(e.ctx.Int32Type(), 0, false)
	}
}

func (e *Emitter) emitUnary(v ast.UnaryOperation) llvm.Value {
	switch v.Op {
	case ast.Ref:
		if vr, ok := v.E.(ast.VariableExpr); ok {
			ptr, _ := e.addrOf(vr.Var)
			return ptr
		}
	case ast.Deref:
		val := e.emitExpr(v.E)
		t := val.Type().ElementType()
		return e.builder.CreateLoad(t, val, "")
	}
	return e.emitExpr(v.E)
}

func (e *Emitter) emitValue(v ast.Value) llvm.Value {
	switch val := v.(type) {
	case ast.IntegerValue:
		return llvm.ConstInt(e.ctx.Int32Type(), uint64(val), false)
	case ast.FloatValue:
		return llvm.ConstFloat(e.ctx.FloatType(), float64(val))
	case ast.CharValue:
		return llvm.ConstInt(e.ctx.Int8Type(), uint64(val), false)
	case ast.BoolValue:
		b := uint64(0)
		if val {
			b = 1
		}
		return llvm.ConstInt(e.ctx.Int1Type(), b, false)
	case ast.StringValue:
		return e.builder.CreateGlobalStringPtr(string(val), "")
	default:
		return llvm.ConstInt(e.ctx.Int32Type(), 0, false)
	}
}

func (e *Emitter) emitCall(call *ast.FuncReference) llvm.Value {
	fn, ok := e.funcs[call.Name]
	if !ok {
		if call.Name == "printf" || call.Name == "scanf" {
			fn = e.hostFunc(call.Name)
		} else {
			e.fail("undeclared function %q", call.Name)
			return llvm.ConstInt(e.ctx.Int32Type(), 0, false)
		}
	}
	args := make([]llvm.Value, 0, len(call.Args))
	for _, a := range call.Args {
		args = append(args, e.emitExpr(a))
	}
	return e.builder.CreateCall(fn.GlobalValueType(), fn, args, "")
}

// hostFunc returns the lazily declared signature for the host runtime's
// printf/scanf (spec.md §4.7: "Lazy declarations of host printf/scanf"),
// declaring it on first use as `i32 @name(i8*, ...)` and caching it in
// e.funcs so a second call reuses the same llvm.Value.
func (e *Emitter) hostFunc(name string) llvm.Value {
	if fn, ok := e.funcs[name]; ok {
		return fn
	}
	paramTypes := []llvm.Type{llvm.PointerType(e.ctx.Int8Type(), 0)}
	ftyp := llvm.FunctionType(e.ctx.Int32Type(), paramTypes, true)
	fn := llvm.AddFunction(e.module, name, ftyp)
	e.funcs[name] = fn
	return fn
}

// emitBinOp lowers a binary operator applied to two already-evaluated
// operands. src/check's BinOpResult requires the two operands to carry the
// identical basic type (no int/float widening), so l and r are always both
// int or both float here; isFloat need only inspect one of them.
func (e *Emitter) emitBinOp(op ast.BinaryOperator, l, r llvm.Value) llvm.Value {
	isFloat := l.Type().TypeKind() == llvm.FloatTypeKind
	switch op {
	case ast.Add:
		if isFloat {
			return e.builder.CreateFAdd(l, r, "")
		}
		return e.builder.CreateAdd(l, r, "")
	case ast.Sub:
		if isFloat {
			return e.builder.CreateFSub(l, r, "")
		}
		return e.builder.CreateSub(l, r, "")
	case ast.Mul:
		if isFloat {
			return e.builder.CreateFMul(l, r, "")
		}
		return e.builder.CreateMul(l, r, "")
	case ast.Div:
		if isFloat {
			return e.builder.CreateFDiv(l, r, "")
		}
		return e.builder.CreateSDiv(l, r, "")
	case ast.Mod:
		return e.builder.CreateSRem(l, r, "")
	case ast.BitwiseAnd, ast.And:
		return e.builder.CreateAnd(l, r, "")
	case ast.BitwiseOr, ast.Or:
		return e.builder.CreateOr(l, r, "")
	case ast.BitwiseXor, ast.Pow:
		return e.builder.CreateXor(l, r, "")
	default:
		return l
	}
}
