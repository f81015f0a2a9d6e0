package main

import (
	"errors"
	"log"
	"sync"

	"github.com/chazu/vellum/pkg/engine"
	"github.com/chazu/vellum/pkg/flatten"
	"github.com/chazu/vellum/pkg/kernel"
	"github.com/chazu/vellum/pkg/kernel/sdfx"
	"github.com/chazu/vellum/pkg/raster"
	"github.com/chazu/vellum/pkg/scene"
)

// errNoScene is returned by the export methods before a successful Evaluate.
var errNoScene = errors.New("no scene has been evaluated")

// App binds the scripting engine to the export and preview paths. The most
// recent successfully evaluated scene is kept for Export and Render.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel

	mu   sync.Mutex
	last *scene.Scene
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Trace    []string        `json:"trace"`
	Tree     *scene.Node     `json:"tree,omitempty"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp(opts ...engine.Option) *App {
	return &App{
		engine: engine.NewEngine(opts...),
		kernel: sdfx.New(),
	}
}

// Evaluate runs a script and returns its trace, a snapshot of the
// resulting tree and any errors. Validation findings on the tree are
// reported too: cycles and a nil root as errors, shared ownership and
// empty groups as warnings.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Trace:    []string{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a scene.
	out, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if out.Trace != nil {
		result.Trace = out.Trace
	}
	root := out.Scene.Root()
	tree := scene.Snapshot(root)
	result.Tree = &tree

	// Step 3: Validate the tree. Plain group-selected may leave an element
	// in two groups; that is reported but does not fail the run.
	for _, v := range scene.Validate(root) {
		d := EvalErrorData{Message: v.Error()}
		if v.Severity == scene.SeverityError && v.Rule != scene.RuleSharedOwnership {
			result.Errors = append(result.Errors, d)
		} else {
			result.Warnings = append(result.Warnings, d)
		}
	}

	a.mu.Lock()
	a.last = out.Scene
	a.mu.Unlock()
	return result
}

func (a *App) current() (*scene.Scene, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.last == nil {
		return nil, errNoScene
	}
	return a.last, nil
}

// Export writes the last evaluated scene as SVG or DXF, chosen by the
// extension of path.
func (a *App) Export(path string) error {
	sc, err := a.current()
	if err != nil {
		return err
	}
	if err := flatten.Export(sc.Root(), a.kernel, path); err != nil {
		log.Printf("Export error: %v", err)
		return err
	}
	return nil
}

// Render writes a PNG preview of the last evaluated scene.
func (a *App) Render(path string, size int) error {
	sc, err := a.current()
	if err != nil {
		return err
	}
	if err := raster.SavePNG(sc.Root(), path, raster.WithSize(size)); err != nil {
		log.Printf("Render error: %v", err)
		return err
	}
	return nil
}
