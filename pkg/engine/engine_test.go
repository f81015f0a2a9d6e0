package engine

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/chazu/vellum/pkg/scene"
	"github.com/google/go-cmp/cmp"
)

func mustEvaluate(t *testing.T, eng *Engine, src string) *Output {
	t.Helper()
	out, evalErrs, err := eng.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate(%q): fatal: %v", src, err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("Evaluate(%q): %v", src, evalErrs)
	}
	return out
}

func TestEvaluateBlankSource(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{"", "   \n\t  \n  "} {
		out := mustEvaluate(t, eng, src)
		if out.Scene == nil || out.Scene.Root().Len() != 0 {
			t.Errorf("Evaluate(%q): want empty scene", src)
		}
		if len(out.Trace) != 0 {
			t.Errorf("Evaluate(%q): trace = %v", src, out.Trace)
		}
	}
}

func TestEvaluatePlainLisp(t *testing.T) {
	out := mustEvaluate(t, NewEngine(), "(def x 10)\n(def y 20)\n(+ x y)")
	if out.Scene.Root().Len() != 0 {
		t.Error("arithmetic should not touch the scene")
	}
}

func TestEvaluateNonFatalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unmatched paren", "(+ 1 2"},
		{"undefined symbol", "(+ 1 undefined-symbol)"},
		{"builtin arity", "(point 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, evalErrs, err := NewEngine().Evaluate(tt.src)
			if err != nil {
				t.Fatalf("want eval error, got fatal: %v", err)
			}
			if out != nil {
				t.Error("want nil output")
			}
			if len(evalErrs) == 0 || evalErrs[0].Message == "" {
				t.Errorf("evalErrs = %v, want a message", evalErrs)
			}
		})
	}
}

func TestEvalErrorString(t *testing.T) {
	if got := (EvalError{Line: 5, Message: "bad form"}).Error(); got != "line 5: bad form" {
		t.Errorf("Error() = %q", got)
	}
	if got := (EvalError{Message: "no location"}).Error(); got != "no location" {
		t.Errorf("Error() = %q", got)
	}
}

func TestEvaluateIsolatesRuns(t *testing.T) {
	eng := NewEngine()
	for i := 0; i < 3; i++ {
		out := mustEvaluate(t, eng, "(add (point 1 1))")
		if n := out.Scene.Root().Len(); n != 1 {
			t.Errorf("run %d: root has %d children, want 1", i, n)
		}
	}
}

func TestEngineSeedOption(t *testing.T) {
	eng := NewEngine(WithSeed(scene.Spec{Kind: scene.KindPoint, X: 9, Y: 9}))
	out := mustEvaluate(t, eng, "(load) (draw)")
	if diff := cmp.Diff([]string{"Point draw x: 9 y: 9"}, out.Trace); diff != "" {
		t.Errorf("trace (-want +got):\n%s", diff)
	}
}

func TestWithTimeoutIgnoresNonPositive(t *testing.T) {
	if got := NewEngine(WithTimeout(0)).timeout; got != DefaultEvalTimeout {
		t.Errorf("timeout = %s, want %s", got, DefaultEvalTimeout)
	}
	if got := NewEngine(WithTimeout(time.Second)).timeout; got != time.Second {
		t.Errorf("timeout = %s, want 1s", got)
	}
}

func TestAwaitTimeout(t *testing.T) {
	var gen generation
	id := gen.next()
	ch := make(chan evalResult) // never sends

	start := time.Now()
	_, _, err := await(ch, id, &gen, 50*time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s", elapsed)
	}
}

func TestAwaitDiscardsStale(t *testing.T) {
	var gen generation
	id := gen.next()
	gen.next() // a newer run started

	ch := make(chan evalResult, 1)
	ch <- evalResult{output: &Output{}}

	out, _, err := await(ch, id, &gen, time.Second)
	if !errors.Is(err, ErrSuperseded) {
		t.Fatalf("err = %v, want ErrSuperseded", err)
	}
	if out != nil {
		t.Error("stale output should be dropped")
	}
}

func TestAwaitPassesLatest(t *testing.T) {
	var gen generation
	id := gen.next()
	ch := make(chan evalResult, 1)
	want := &Output{Trace: []string{"x"}}
	ch <- evalResult{output: want}

	out, _, err := await(ch, id, &gen, time.Second)
	if err != nil || out != want {
		t.Errorf("await = %v, %v", out, err)
	}
}

func TestParseZygomysError(t *testing.T) {
	tests := []struct {
		msg      string
		wantLine int
		wantMsg  string
	}{
		{"Error on line 5: unexpected token\n", 5, "unexpected token"},
		{"some generic error", 0, "some generic error"},
		{"error on line 12: missing paren", 12, "missing paren"},
		{"line 3: bad form", 3, "bad form"},
	}
	for _, tt := range tests {
		errs := parseZygomysError(errors.New(tt.msg))
		if len(errs) != 1 {
			t.Fatalf("%q: got %d errors", tt.msg, len(errs))
		}
		if errs[0].Line != tt.wantLine || !strings.Contains(errs[0].Message, tt.wantMsg) {
			t.Errorf("%q: got %+v, want line %d message %q", tt.msg, errs[0], tt.wantLine, tt.wantMsg)
		}
	}
}
