// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program jcomb parses JSON documents and reprints them, or reports the
// first syntax error with its line and column.
//
// With no arguments it reads a single document from stdin. With file
// arguments it processes each file, in parallel when there are several,
// and reports results in argument order.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jcomb"
	"github.com/creachadair/jcomb/ast"
	"github.com/panjf2000/ants/v2"
	"github.com/tailscale/hujson"
)

var cli struct {
	Files  []string `arg:"" optional:"" type:"existingfile" help:"Input files. If none are given, a single document is read from stdin."`
	Check  bool     `short:"c" help:"Validate the input without printing the parsed value."`
	Output string   `short:"o" type:"path" help:"Write output to this file instead of stdout."`
	HuJSON bool     `name:"hujson" help:"Standardize JWCC input (comments, trailing commas) to plain JSON before parsing."`
	Jobs   int      `short:"j" default:"0" help:"Parallel workers for multiple files (0 means one per CPU)."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("jcomb"),
		kong.Description("A combinator-based JSON parser and validator."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(run())
}

func run() error {
	outs, err := process()
	if err != nil {
		return err
	}
	if cli.Check {
		return nil
	}

	text := strings.Join(outs, "\n") + "\n"
	if cli.Output != "" {
		return os.WriteFile(cli.Output, []byte(text), 0644)
	}
	_, err = io.WriteString(os.Stdout, text)
	return err
}

// process parses all the requested inputs and returns their renderings
// in input order. Multiple files are parsed concurrently; the error
// reported is the first in input order, after all workers finish.
func process() ([]string, error) {
	if len(cli.Files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		out, err := processInput("(stdin)", data, cli.HuJSON)
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	if len(cli.Files) == 1 {
		out, err := processFile(cli.Files[0])
		if err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	jobs := cli.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	pool, err := ants.NewPool(jobs)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	outs := make([]string, len(cli.Files))
	errs := make([]error, len(cli.Files))
	var wg sync.WaitGroup
	for i, name := range cli.Files {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			outs[i], errs[i] = processFile(name)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outs, nil
}

func processFile(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return processInput(name, data, cli.HuJSON)
}

// processInput parses one document and returns its rendering. If
// standardize is true the input is first converted from JWCC to plain
// JSON. Parse errors are positioned as name:line:column.
func processInput(name string, data []byte, standardize bool) (string, error) {
	if standardize {
		std, err := hujson.Standardize(data)
		if err != nil {
			return "", fmt.Errorf("%s: standardize: %w", name, err)
		}
		data = std
	}
	src := string(data)
	v, err := ast.Parse(src)
	if err != nil {
		var perr *jcomb.ParseError
		if errors.As(err, &perr) {
			lc := jcomb.Pos(src, perr.Pos)
			return "", fmt.Errorf("%s:%d:%d: %w", name, lc.Line, lc.Column+1, perr)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return v.JSON(), nil
}
