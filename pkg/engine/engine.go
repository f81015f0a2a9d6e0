// Package engine provides the Lisp scripting surface for Vellum.
// It wraps zygomys in a sandboxed environment and produces a scene
// (plus the trace it emitted) from user source code.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chazu/vellum/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Output is the product of a successful evaluation.
type Output struct {
	Scene *scene.Scene
	Trace []string // every Move/Draw line emitted while the script ran
}

// Engine wraps the zygomys interpreter for Vellum scripts.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment, scene and trace recorder.
type Engine struct {
	gen     generation
	timeout time.Duration
	seed    []scene.Spec
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides DefaultEvalTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithSeed sets the seed used by the (load) builtin.
func WithSeed(specs ...scene.Spec) Option {
	return func(e *Engine) { e.seed = specs }
}

// NewEngine creates a new Engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{timeout: DefaultEvalTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs a Vellum script against a fresh, empty scene.
//
// A script that fails to parse or raises at run time yields EvalErrors and
// a nil Output. The error result is reserved for failures of the run
// itself: ErrTimeout, ErrSuperseded or a recovered panic.
func (e *Engine) Evaluate(source string) (*Output, []EvalError, error) {
	id := e.gen.next()
	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		out, evalErrs, err := e.evaluate(source)
		ch <- evalResult{output: out, errors: evalErrs, err: err}
	}()

	return await(ch, id, &e.gen, e.timeout)
}

// evaluate runs source in a new sandbox bound to a new scene.
func (e *Engine) evaluate(source string) (*Output, []EvalError, error) {
	rec := &scene.Recorder{}
	opts := []scene.Option{scene.WithTrace(rec)}
	if e.seed != nil {
		opts = append(opts, scene.WithSeed(e.seed...))
	}
	sc := scene.New(opts...)

	if strings.TrimSpace(source) == "" {
		return &Output{Scene: sc}, nil, nil
	}

	// The sandbox has no filesystem or system access.
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	registerBuiltins(env, sc, rec)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygomysError(err), nil
	}
	if _, err := env.Run(); err != nil {
		scene.Logger().Debug("engine: script failed", "err", err)
		return nil, parseZygomysError(err), nil
	}
	return &Output{Scene: sc, Trace: rec.Lines()}, nil, nil
}

// linePattern finds the "line N: message" part of a zygomys error, with or
// without the leading "Error on".
var linePattern = regexp.MustCompile(`(?i)\bline (\d+):\s*(.*)`)

// parseZygomysError turns a zygomys error into EvalErrors, keeping the line
// number when the message carries one.
func parseZygomysError(err error) []EvalError {
	msg := strings.TrimSpace(err.Error())
	m := linePattern.FindStringSubmatch(msg)
	if m == nil {
		return []EvalError{{Message: msg}}
	}
	line, _ := strconv.Atoi(m[1])
	return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
}
