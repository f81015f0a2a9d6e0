// Command vellum runs scene scripts and exports the result.
//
// Usage:
//
//	vellum [-script file] [-svg out.svg] [-dxf out.dxf] [-png out.png] [-json]
//
// Without -script (and without VELLUM_SEED) it runs the built-in
// demonstration: load the seed scene, then group a new point and circle.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chazu/vellum/pkg/config"
	"github.com/chazu/vellum/pkg/engine"
	"github.com/chazu/vellum/pkg/scene"
)

const demoScript = `(load)
(group-selected (point 2 4) (circle 3 6 2))
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vellum", flag.ContinueOnError)
	fs.SetOutput(stderr)
	script := fs.String("script", "", "script to evaluate")
	svgOut := fs.String("svg", "", "write the scene as SVG")
	dxfOut := fs.String("dxf", "", "write the scene as DXF")
	pngOut := fs.String("png", "", "write a PNG preview")
	dumpTree := fs.Bool("json", false, "print the scene tree as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Load()
	scene.SetLogger(cfg.Logger(stderr))
	sink := cfg.TraceSink(stdout, stderr)

	source := demoScript
	path := *script
	if path == "" {
		path = cfg.SeedScript
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "vellum: %v\n", err)
			return 1
		}
		source = string(data)
	}

	app := NewApp(engine.WithTimeout(cfg.EvalTimeout))
	result := app.Evaluate(source)
	for _, line := range result.Trace {
		sink.Trace(line)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Fprintf(stderr, "error: line %d: %s\n", e.Line, e.Message)
			} else {
				fmt.Fprintf(stderr, "error: %s\n", e.Message)
			}
		}
		return 1
	}

	if *dumpTree {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Tree); err != nil {
			fmt.Fprintf(stderr, "vellum: %v\n", err)
			return 1
		}
	}

	for _, out := range []string{*svgOut, *dxfOut} {
		if out == "" {
			continue
		}
		if err := app.Export(out); err != nil {
			fmt.Fprintf(stderr, "vellum: export %s: %v\n", out, err)
			return 1
		}
	}
	if *pngOut != "" {
		if err := app.Render(*pngOut, cfg.RasterSize); err != nil {
			fmt.Fprintf(stderr, "vellum: render %s: %v\n", *pngOut, err)
			return 1
		}
	}
	return 0
}
