// Package program is the top-level façade over pkg/lexer, pkg/parser,
// and pkg/interpreter: compile a source string once, evaluate it against
// as many environments as needed, per spec.md section 6's three-operation
// contract.
package program

import (
	"time"

	"github.com/perbu/celeval/pkg/ast"
	"github.com/perbu/celeval/pkg/cel"
	"github.com/perbu/celeval/pkg/events"
	"github.com/perbu/celeval/pkg/functions"
	"github.com/perbu/celeval/pkg/interpreter"
	"github.com/perbu/celeval/pkg/parser"
)

// Env binds identifier names to values for one Evaluate call.
type Env = interpreter.Env

// Registry is the capability a Program dispatches global function and
// method calls through. functions.Standard satisfies it.
type Registry = interpreter.Registry

// Program is a parsed expression paired with the registry it will
// evaluate against. It is immutable once Compile returns and safe to
// evaluate concurrently from multiple goroutines provided each caller
// owns its own Env (see spec.md section 5).
type Program struct {
	source   string
	node     ast.Node
	it       *interpreter.Interpreter
	notifier *events.Publisher
}

// Option configures Compile.
type Option func(*options)

type options struct {
	registry Registry
	notifier *events.Publisher
}

// WithRegistry overrides the default functions.NewStandard() registry.
func WithRegistry(r Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithEvents attaches a lifecycle-event publisher. A nil publisher (the
// zero value of this option) is equivalent to omitting it.
func WithEvents(pub *events.Publisher) Option {
	return func(o *options) { o.notifier = pub }
}

// Compile parses source and returns a reusable Program. Syntax errors are
// returned as *parser.SyntaxError.
func Compile(source string, opts ...Option) (*Program, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = functions.NewStandard()
	}

	o.notifier.Publish(events.CompileStarted{Source: source})
	node, err := parser.Parse(source)
	o.notifier.Publish(events.CompileFinished{Source: source, Err: err})
	if err != nil {
		return nil, err
	}

	return &Program{
		source:   source,
		node:     node,
		it:       interpreter.New(o.registry),
		notifier: o.notifier,
	}, nil
}

// Evaluate runs the compiled expression against env. env is left bitwise
// unchanged once Evaluate returns (see the interpreter's environment
// invariant).
func (p *Program) Evaluate(env Env) (cel.Value, error) {
	p.notifier.Publish(events.EvalStarted{Source: p.source})
	start := time.Now()
	v, err := p.it.Eval(p.node, env)
	p.notifier.Publish(events.EvalFinished{Source: p.source, Err: err, Duration: time.Since(start)})
	return v, err
}

// AST exposes the parsed tree, chiefly so callers can round-trip it
// through ast.Print for diagnostics or the parse(print(N)) invariant.
func (p *Program) AST() ast.Node { return p.node }

// Eval is the one-shot convenience form: compile(source).evaluate(env).
func Eval(source string, env Env, opts ...Option) (cel.Value, error) {
	p, err := Compile(source, opts...)
	if err != nil {
		return cel.Value{}, err
	}
	return p.Evaluate(env)
}
