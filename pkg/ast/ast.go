// Package ast defines the CEL abstract syntax tree: a sealed sum type
// of expression variants plus two non-expression records (MapEntry,
// FieldInit). Every node is immutable after construction.
package ast

import "github.com/perbu/celeval/pkg/lexer"

// Position locates a node in the source it was parsed from.
type Position = lexer.Position

// Node is implemented by every expression variant.
type Node interface {
	Pos() Position
	exprNode()
}

// LiteralKind tags the Go value carried by a Literal node.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralUint
	LiteralDouble
	LiteralString
	LiteralBytes
)

// Literal is a constant value spelled directly in the source.
type Literal struct {
	Position Position
	Kind     LiteralKind
	Value    any // nil, bool, int64, uint64, float64, string, []byte
}

func (n *Literal) Pos() Position { return n.Position }
func (*Literal) exprNode()       {}

// Identifier is a bare name looked up in the environment.
type Identifier struct {
	Position Position
	Name     string
}

func (n *Identifier) Pos() Position { return n.Position }
func (*Identifier) exprNode()       {}

// Select is `operand.field` (or, when Operand is nil, a lookup of Field
// directly in the environment; the parser itself always sets Operand)
// and also backs the `has(x.field)` presence-test macro via IsTest.
type Select struct {
	Position Position
	Operand  Node // nil means "select from the environment itself"
	Field    string
	IsTest   bool
}

func (n *Select) Pos() Position { return n.Position }
func (*Select) exprNode()       {}

// Call is either a global function call (Target == nil) or a method /
// macro call on Target. IsMacro marks map/filter/all/exists/existsOne.
type Call struct {
	Position Position
	Target   Node // nil for global function calls
	Function string
	Args     []Node
	IsMacro  bool
}

func (n *Call) Pos() Position { return n.Position }
func (*Call) exprNode()       {}

// ListExpr is a `[e1, e2, ...]` literal.
type ListExpr struct {
	Position Position
	Elements []Node
}

func (n *ListExpr) Pos() Position { return n.Position }
func (*ListExpr) exprNode()       {}

// MapEntry is one `key: value` pair of a MapExpr.
type MapEntry struct {
	Key   Node
	Value Node
}

// MapExpr is a `{k1: v1, k2: v2, ...}` literal.
type MapExpr struct {
	Position Position
	Entries  []MapEntry
}

func (n *MapExpr) Pos() Position { return n.Position }
func (*MapExpr) exprNode()       {}

// FieldInit is one `name: value` initializer of a Struct literal.
type FieldInit struct {
	Name  string
	Value Node
}

// Struct is a `TypeName{field: value, ...}` literal. A nil TypeName is
// semantically a MapExpr with string-literal keys; the parser chooses
// between MapExpr and Struct based purely on syntactic form (a
// preceding (qualified) identifier commits to Struct).
type Struct struct {
	Position Position
	TypeName string
	Fields   []FieldInit
}

func (n *Struct) Pos() Position { return n.Position }
func (*Struct) exprNode()       {}

// UnaryOp is the operator of a Unary node.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpNegate
)

// Unary is `!x` or `-x`.
type Unary struct {
	Position Position
	Op       UnaryOp
	Operand  Node
}

func (n *Unary) Pos() Position { return n.Position }
func (*Unary) exprNode()       {}

// BinaryOp is the operator of a Binary node.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
	OpIn
)

var binaryOpText = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%",
	OpEq: "==", OpNe: "!=", OpLt: "<", OpLe: "<=", OpGt: ">", OpGe: ">=",
	OpAnd: "&&", OpOr: "||", OpIn: "in",
}

func (op BinaryOp) String() string { return binaryOpText[op] }

// Binary is a left-associative binary operator application.
type Binary struct {
	Position Position
	Op       BinaryOp
	Left     Node
	Right    Node
}

func (n *Binary) Pos() Position { return n.Position }
func (*Binary) exprNode()       {}

// Conditional is `cond ? then : else`.
type Conditional struct {
	Position  Position
	Condition Node
	Then      Node
	Else      Node
}

func (n *Conditional) Pos() Position { return n.Position }
func (*Conditional) exprNode()       {}

// Index is `operand[index]`.
type Index struct {
	Position Position
	Operand  Node
	Index    Node
}

func (n *Index) Pos() Position { return n.Position }
func (*Index) exprNode()       {}

// Comprehension is a generalized fold over a list. The parser never
// produces one: the map/filter/all/exists/existsOne macros are Call nodes
// with IsMacro set and are evaluated by their own loops, not through this
// node.
type Comprehension struct {
	Position  Position
	IterVar   string
	Range     Node
	AccumVar  string
	Init      Node
	Condition Node
	Step      Node
	Result    Node
}

func (n *Comprehension) Pos() Position { return n.Position }
func (*Comprehension) exprNode()       {}

var (
	_ Node = (*Literal)(nil)
	_ Node = (*Identifier)(nil)
	_ Node = (*Select)(nil)
	_ Node = (*Call)(nil)
	_ Node = (*ListExpr)(nil)
	_ Node = (*MapExpr)(nil)
	_ Node = (*Struct)(nil)
	_ Node = (*Unary)(nil)
	_ Node = (*Binary)(nil)
	_ Node = (*Conditional)(nil)
	_ Node = (*Index)(nil)
	_ Node = (*Comprehension)(nil)
)
