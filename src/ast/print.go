package ast

import (
	"fmt"
	"strings"
)

// Print writes a depth-indented textual dump of p to a strings.Builder and
// returns the text; used for -d/--debug output. Mirrors the shape of the
// teacher's Node.Print debug dumper: one line per node, no attempt at
// round-tripping back to source syntax.
func Print(p *Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for _, part := range p.Parts {
		printNode(&sb, part, 1)
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	for i1 := 0; i1 < depth; i1++ {
		sb.WriteString("  ")
	}
}

func printNode(sb *strings.Builder, n Node, depth int) {
	indent(sb, depth)
	switch v := n.(type) {
	case StatementPart:
		sb.WriteString("Statement\n")
		printNode(sb, v.Stmt, depth+1)
	case FunctionPart:
		sb.WriteString("Function\n")
		printNode(sb, v.Func, depth+1)
	case *FuncDeclaration:
		fmt.Fprintf(sb, "FuncDeclaration %s\n", v.Name)
		for _, p1 := range v.Params {
			printNode(sb, p1, depth+1)
		}
		if v.Body != nil {
			printBody(sb, v.Body, depth+1)
		}
	case Include:
		fmt.Fprintf(sb, "Include %q\n", v.Path)
	case GlobalVariable:
		sb.WriteString("GlobalVariable\n")
		for _, v1 := range v.Vars {
			printNode(sb, v1, depth+1)
		}
	case StructStmt:
		sb.WriteString("Struct\n")
		printNode(sb, v.Var, depth+1)
	case Enum:
		fmt.Fprintf(sb, "Enum %s %v\n", v.Name, v.Members)
	case *VarDeclaration:
		fmt.Fprintf(sb, "VarDeclaration %s dims=%d\n", v.Name, len(v.Dims))
	case *VarAssignment:
		sb.WriteString("VarAssignment\n")
		printNode(sb, v.Lhs, depth+1)
	case *FormalParameter:
		fmt.Fprintf(sb, "FormalParameter %s\n", v.Name)
	case *StructDefinition:
		fmt.Fprintf(sb, "StructDefinition %s\n", v.Name)
		for _, f1 := range v.Fields {
			printNode(sb, f1, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%T\n", n)
	}
}

func printBody(sb *strings.Builder, b *Body, depth int) {
	indent(sb, depth)
	sb.WriteString("Body\n")
	for _, e1 := range b.Exprs {
		printNode(sb, e1, depth+1)
	}
}

// Lines renders one canonical textual line per statement in the program,
// recursing into function bodies and nested blocks so that the returned
// slice's length equals the program's total statement count. This backs
// the round-trip golden-test law in spec.md §8: "parsing an error-free
// program then formatting its AST ... yields a string whose line count
// equals the statement count".
func Lines(p *Program) []string {
	var out []string
	for _, part := range p.Parts {
		switch v := part.(type) {
		case StatementPart:
			out = append(out, statementLine(v.Stmt))
		case FunctionPart:
			if fd, ok := v.Func.(*FuncDeclaration); ok {
				out = append(out, fmt.Sprintf("fn %s", fd.Name))
				if fd.Body != nil {
					out = append(out, bodyLines(fd.Body)...)
				}
			}
		}
	}
	return out
}

func statementLine(s Statement) string {
	switch v := s.(type) {
	case Include:
		return fmt.Sprintf("include %q", v.Path)
	case GlobalVariable:
		return "global"
	case StructStmt:
		return "struct"
	case Enum:
		return fmt.Sprintf("enum %s", v.Name)
	default:
		return fmt.Sprintf("%T", s)
	}
}

func bodyLines(b *Body) []string {
	out := make([]string, 0, len(b.Exprs))
	for _, e1 := range b.Exprs {
		switch v := e1.(type) {
		case IfStmt:
			out = append(out, "if")
			switch ifv := v.If.(type) {
			case *IfExpr:
				out = append(out, bodyLines(ifv.Then)...)
			case *IfElseExpr:
				out = append(out, bodyLines(ifv.Then)...)
				out = append(out, bodyLines(ifv.Else)...)
			}
		case LoopStmt:
			out = append(out, "loop")
			switch lv := v.Loop.(type) {
			case *WhileExpr:
				out = append(out, bodyLines(lv.Body)...)
			case *ForExpr:
				out = append(out, bodyLines(lv.Body)...)
			}
		case NestedBody:
			out = append(out, bodyLines(v.Body)...)
		case VarManagement:
			out = append(out, "var")
		case FuncCallStmt:
			out = append(out, fmt.Sprintf("call %s", v.Call.Name))
		case BreakStmt:
			out = append(out, "break")
		case ContinueStmt:
			out = append(out, "continue")
		case ReturnStmt:
			out = append(out, "return")
		default:
			out = append(out, fmt.Sprintf("%T", e1))
		}
	}
	return out
}
