// Package ast defines the algebraic syntax tree produced by src/parser:
// sealed Go interfaces stand in for the grammar's tagged unions (spec.md
// §3), and every node that carries source text also carries a Span.
//
// Dispatch over these families is a case-analysis on concrete type (a type
// switch), never a virtual method per family member — see spec.md §9's note
// that dynamic dispatch is a tagged union plus switch, not an inheritance
// hierarchy.
package ast

import "splc/src/token"

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Span is re-exported from package token so callers of package ast do not
// need to import both.
type Span = token.Span

// Node is implemented by every syntax tree node that carries a Span.
type Node interface {
	Span() Span
}

// NodeBase embeds the common Span field shared by every concrete node type.
type NodeBase struct{ Sp Span }

// Span implements Node.
func (b NodeBase) Span() Span { return b.Sp }

// Program is the root of a translation unit.
type Program struct {
	Parts []ProgramPart
}

// ProgramPart = Statement(s) | Function(f)
type ProgramPart interface {
	Node
	progPart()
}

// StatementPart wraps a top-level Statement.
type StatementPart struct {
	NodeBase
	Stmt Statement
}

func (StatementPart) progPart() {}

// FunctionPart wraps a top-level Function.
type FunctionPart struct {
	NodeBase
	Func Function
}

func (FunctionPart) progPart() {}

// Statement = Include | GlobalVariable | Struct | Enum | Error
type Statement interface {
	Node
	stmt()
}

// Include records a "#include \"path\"" directive; the path is never
// expanded (spec.md §6), only recorded and, per SPEC_FULL.md's
// supplemented-features section, resolved for diagnostic purposes.
type Include struct {
	NodeBase
	Path string
}

func (Include) stmt() {}

// GlobalVariable is a top-level `VarManagement`-shaped list of global
// variable declarations/initialisations.
type GlobalVariable struct {
	NodeBase
	Vars []Variable
}

func (GlobalVariable) stmt() {}

// StructStmt declares a struct type at file scope.
type StructStmt struct {
	NodeBase
	Var Variable // always a *StructDefinition
}

func (StructStmt) stmt() {}

// Enum declares a set of int-valued global constants 0..n-1 (SPEC_FULL.md
// supplemented feature).
type Enum struct {
	NodeBase
	Name    string
	Members []string
}

func (Enum) stmt() {}

// ErrorStmt marks a statement the parser could not make sense of; parsing
// resynchronises at the next ';' or '}' (spec.md §4.2 recovery pattern 5).
type ErrorStmt struct{ NodeBase }

func (ErrorStmt) stmt() {}

// Variable = VarReference | VarDeclaration | VarAssignment | StructDefinition
// | StructDeclaration | StructReference | FormalParameter | Error
type Variable interface {
	Node
	variable()
}

// VarReference names a variable, optionally indexed by Dims (array
// subscripts); len(Dims) == 0 for a bare reference.
type VarReference struct {
	NodeBase
	Name string
	Dims []CompExpr
}

func (VarReference) variable() {}

// VarDeclaration declares a new variable of the given type token, with
// array dimensions given as compile-time-sized CompExpr (literal or not;
// see spec.md §4.6 "Dimension evaluation").
type VarDeclaration struct {
	NodeBase
	Name string
	Type token.Kind
	Dims []CompExpr
}

func (VarDeclaration) variable() {}

// CompoundOp names the compound-assignment operator of a desugared
// "a op= b;" statement (SPEC_FULL.md supplemented feature); nil for a
// plain "a = b;".
type CompoundOp = BinaryOperator

// VarAssignment assigns Rhs to Lhs. If Compound is non-nil the walker and
// emitter desugar this to `Lhs = Lhs <Compound> Rhs`.
type VarAssignment struct {
	NodeBase
	Lhs      Variable
	Rhs      CompExpr
	Compound *CompoundOp
}

func (VarAssignment) variable() {}

// StructDefinition introduces a named record type with ordered fields.
// Each field is a *VarDeclaration (a name, a type token and optional array
// dims).
type StructDefinition struct {
	NodeBase
	Name   string
	Fields []Variable
}

func (StructDefinition) variable() {}

// StructDeclaration declares InstanceName as an instance of StructName,
// optionally as an array of instances (Dims).
type StructDeclaration struct {
	NodeBase
	StructName   string
	InstanceName string
	Dims         []CompExpr
}

func (StructDeclaration) variable() {}

// StructReference is a member-access chain a.b.c[...]; Path[0] is always a
// *VarReference, later entries name member hops (themselves *VarReference
// carrying the member name and any index dims for that hop).
type StructReference struct {
	NodeBase
	Path []*VarReference
}

func (StructReference) variable() {}

// FormalParameter is one function parameter: a name, type token and
// optional array dims.
type FormalParameter struct {
	NodeBase
	Name string
	Type token.Kind
	Dims []CompExpr
}

func (FormalParameter) variable() {}

// IncDecStmt is a standalone `a++;`/`a--;` statement or for-loop step,
// distinct from UnaryOperation (which is the same operator used in value
// position inside a larger expression).
type IncDecStmt struct {
	NodeBase
	Target Variable
	Op     UnaryOperator // Inc or Dec
}

func (IncDecStmt) variable() {}

// ErrorVar marks a variable-position parse the parser could not recover a
// concrete shape for.
type ErrorVar struct{ NodeBase }

func (ErrorVar) variable() {}

// Function = FuncReference | FuncDeclaration | Error
type Function interface {
	Node
	function()
}

// FuncReference is a call expression: name(args...).
type FuncReference struct {
	NodeBase
	Name string
	Args []CompExpr
}

func (FuncReference) function() {}

// FuncDeclaration defines a function: its parameters, declared return
// type token and body.
type FuncDeclaration struct {
	NodeBase
	Name       string
	Params     []Variable // []*FormalParameter
	ReturnType token.Kind
	Body       *Body
}

func (FuncDeclaration) function() {}

// ErrorFunc marks a function-position parse the parser could not recover.
type ErrorFunc struct{ NodeBase }

func (ErrorFunc) function() {}

// CompExpr = Value | Variable | FuncCall | UnaryOperation | BinaryOperation
// | Error | Invalid | MissingRP
type CompExpr interface {
	Node
	compExpr()
}

// ValueExpr wraps a literal Value.
type ValueExpr struct {
	NodeBase
	Val Value
}

func (ValueExpr) compExpr() {}

// VariableExpr wraps a Variable read in expression position (a
// *VarReference or *StructReference).
type VariableExpr struct {
	NodeBase
	Var Variable
}

func (VariableExpr) compExpr() {}

// FuncCallExpr wraps a function call used as a value.
type FuncCallExpr struct {
	NodeBase
	Call *FuncReference
}

func (FuncCallExpr) compExpr() {}

// UnaryOperation applies a UnaryOperator to an operand expression.
type UnaryOperation struct {
	NodeBase
	Op UnaryOperator
	E  CompExpr
}

func (UnaryOperation) compExpr() {}

// BinaryOperation applies a BinaryOperator to two operand expressions.
type BinaryOperation struct {
	NodeBase
	Op   BinaryOperator
	L, R CompExpr
}

func (BinaryOperation) compExpr() {}

// ErrorExpr marks a missing right operand of a binary operator (spec.md
// §4.2 recovery pattern 4).
type ErrorExpr struct{ NodeBase }

func (ErrorExpr) compExpr() {}

// InvalidExpr marks an unrecognised token found in expression position
// (spec.md §4.2 recovery pattern 3).
type InvalidExpr struct{ NodeBase }

func (InvalidExpr) compExpr() {}

// MissingRP marks a parenthesised expression missing its closing ')'
// (spec.md §4.2 recovery pattern 1).
type MissingRP struct{ NodeBase }

func (MissingRP) compExpr() {}

// ArrayLiteral is a brace-enclosed initialiser list `{1, 2, 3}` used as
// the right-hand side of a VarAssignment that declares an array.
type ArrayLiteral struct {
	NodeBase
	Elems []CompExpr
}

func (ArrayLiteral) compExpr() {}

// CondExpr = Bool | UnaryCondition | BinaryCondition | Condition | Error
type CondExpr interface {
	Node
	condExpr()
}

// BoolCond wraps a bool-valued CompExpr used directly as a condition: a
// literal true/false, a bool variable reference, or a function call
// returning bool. (spec.md's grammar names this variant "Bool(b)"; b is
// generalised here from a literal to any bool-typed CompExpr so that a
// bare bool variable can be used as a while/if condition without forcing
// an explicit comparison.)
type BoolCond struct {
	NodeBase
	E CompExpr
}

func (BoolCond) condExpr() {}

// UnaryCondition applies UnaryOperator Not to a sub-condition.
type UnaryCondition struct {
	NodeBase
	Op UnaryOperator
	E  CondExpr
}

func (UnaryCondition) condExpr() {}

// LogicalOperator differentiates && and || in BinaryCondition.
type LogicalOperator int

const (
	LogAnd LogicalOperator = iota
	LogOr
)

// BinaryCondition combines two sub-conditions with && or ||.
type BinaryCondition struct {
	NodeBase
	Op   LogicalOperator
	L, R CondExpr
}

func (BinaryCondition) condExpr() {}

// Condition compares two CompExpr operands with a JudgeOperator, yielding
// a boolean.
type Condition struct {
	NodeBase
	L   CompExpr
	Cmp JudgeOperator
	R   CompExpr
}

func (Condition) condExpr() {}

// ErrorCond marks a condition the parser could not recover.
type ErrorCond struct{ NodeBase }

func (ErrorCond) condExpr() {}

// If = IfExpr | IfElseExpr | Error
type If interface {
	Node
	ifExpr()
}

// IfExpr is a condition-then construct with no else branch.
type IfExpr struct {
	NodeBase
	Cond CondExpr
	Then *Body
}

func (IfExpr) ifExpr() {}

// IfElseExpr is a condition-then-else construct.
type IfElseExpr struct {
	NodeBase
	Cond CondExpr
	Then *Body
	Else *Body
}

func (IfElseExpr) ifExpr() {}

// ErrorIf marks an if-construct the parser could not recover.
type ErrorIf struct{ NodeBase }

func (ErrorIf) ifExpr() {}

// Loop = WhileExpr | ForExpr | Error
type Loop interface {
	Node
	loop()
}

// WhileExpr is a pre-tested loop.
type WhileExpr struct {
	NodeBase
	Cond CondExpr
	Body *Body
}

func (WhileExpr) loop() {}

// ForExpr is a C-style three-clause loop. Init and Step are each an
// optional VarManagement (declarations/assignments/inc-dec); either may
// be nil for an omitted clause.
type ForExpr struct {
	NodeBase
	Init *VarManagement
	Cond CondExpr
	Step *VarManagement
	Body *Body
}

func (ForExpr) loop() {}

// ErrorLoop marks a loop construct the parser could not recover.
type ErrorLoop struct{ NodeBase }

func (ErrorLoop) loop() {}

// Body is a braced sequence of Expr statements. Err is set when the parser
// could not recover the contents of the braces at all.
type Body struct {
	Sp    Span
	Exprs []Expr
	Err   bool
}

// Span implements Node.
func (b *Body) Span() Span { return b.Sp }

// Expr is one statement inside a Body.
// Expr = If | Loop | VarManagement | FuncCall | Body | Break | Continue
// | Return | Error
type Expr interface {
	Node
	expr()
}

// IfStmt wraps an If construct used as a body statement.
type IfStmt struct {
	NodeBase
	If If
}

func (IfStmt) expr() {}

// LoopStmt wraps a Loop construct used as a body statement.
type LoopStmt struct {
	NodeBase
	Loop Loop
}

func (LoopStmt) expr() {}

// VarManagement is a sequence of variable declarations/assignments
// produced by one source declaration line; spec.md §3's invariant: `int a
// = 1, b;` becomes [VarDecl(a), VarAssign(a,1), VarDecl(b)].
type VarManagement struct {
	NodeBase
	Vars []Variable
}

func (VarManagement) expr() {}

// FuncCallStmt is a function call used as a statement (its value
// discarded).
type FuncCallStmt struct {
	NodeBase
	Call *FuncReference
}

func (FuncCallStmt) expr() {}

// NestedBody is a bare `{ ... }` block nested inside another body.
type NestedBody struct {
	NodeBase
	Body *Body
}

func (NestedBody) expr() {}

// BreakStmt is a `break;` statement.
type BreakStmt struct{ NodeBase }

func (BreakStmt) expr() {}

// ContinueStmt is a `continue;` statement.
type ContinueStmt struct{ NodeBase }

func (ContinueStmt) expr() {}

// ReturnStmt is a `return [expr];` statement. E is nil for a bare return
// from a void function.
type ReturnStmt struct {
	NodeBase
	E CompExpr
}

func (ReturnStmt) expr() {}

// ErrorExprStmt marks a body statement the parser could not recover
// (spec.md §4.2 recovery pattern 5, applied inside a Body).
type ErrorExprStmt struct{ NodeBase }

func (ErrorExprStmt) expr() {}

// Value is a literal value carried by a ValueExpr.
// Value = Integer | Float | String | Char | Bool | Struct | Pointer | Null
type Value interface {
	value()
}

type IntegerValue uint32
type FloatValue float32
type StringValue string
type CharValue byte
type BoolValue bool

// StructValue names a struct type used as a bare value (e.g. the implicit
// zero-value of a struct-typed expression).
type StructValue struct{ Name string }

// PointerValue wraps the Value an address-of expression points to.
type PointerValue struct{ Inner Value }

type NullValue struct{}

func (IntegerValue) value()  {}
func (FloatValue) value()    {}
func (StringValue) value()   {}
func (CharValue) value()     {}
func (BoolValue) value()     {}
func (StructValue) value()   {}
func (PointerValue) value()  {}
func (NullValue) value()     {}

// BinaryOperator enumerates CompExpr's arithmetic/bitwise operators.
//
// And/Or here and BitwiseAnd/BitwiseOr are the same runtime operation:
// spec.md §3 lists both because the grammar merges two source variants
// (the same ambiguity as Pow vs BitwiseXor, noted in spec.md §9). The
// parser only ever produces BitwiseAnd/BitwiseOr/BitwiseXor; And/Or/Pow
// are kept in the enum for completeness with spec.md's data model but are
// never emitted — see DESIGN.md.
type BinaryOperator int

const (
	Add BinaryOperator = iota
	Sub
	Mul
	Div
	Mod
	And
	Or
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	Pow
)

// UnaryOperator enumerates CompExpr/CondExpr's unary operators.
type UnaryOperator int

const (
	Not UnaryOperator = iota
	Inc
	Dec
	Ref
	Deref
)

// JudgeOperator enumerates Condition's comparison operators.
type JudgeOperator int

const (
	GT JudgeOperator = iota
	GE
	LT
	LE
	EQ
	NE
)
