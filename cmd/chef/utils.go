package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hilli/chef"
	"github.com/hilli/chef/lifter"
	"github.com/hilli/chef/parser"
	"github.com/hilli/chef/validator"
)

// source pairs a recipe file's name with its raw text, the two things
// annotateError needs to turn a *chef.Error's byte-offset Span into a
// spec.md §6 "file:line:col: message" line. Every stage of the
// pipeline below runs against the same source so a fault anywhere in
// it can be located the same way.
type source struct {
	filename string
	text     string
}

func readSource(filename string) (*source, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return &source{filename: filename, text: string(content)}, nil
}

// annotateError rewrites a *chef.Error (however deeply wrapped) into
// "filename:line:col: message", the stderr shape spec.md §6 requires.
// Errors that aren't a *chef.Error (a missing-file os.PathError, say)
// pass through unchanged: they have no Span to locate.
func (s *source) annotateError(err error) error {
	if err == nil {
		return nil
	}
	var chefErr *chef.Error
	if !errors.As(err, &chefErr) {
		return err
	}
	line, col := chefErr.Span.LineCol(s.text)
	return fmt.Errorf("%s:%d:%d: %s", s.filename, line, col, chefErr.Message)
}

// loadProgram runs stages A (parse) and B (lift) over filename,
// returning the lifted, not-yet-validated Program alongside the
// source it was read from, so callers that go on to run or validate
// it can annotate any later error against the same text.
func loadProgram(filename string) (*source, *chef.Program, error) {
	src, err := readSource(filename)
	if err != nil {
		return nil, nil, err
	}

	recipes, err := parser.New().ParseString(src.text)
	if err != nil {
		return src, nil, src.annotateError(err)
	}

	program, err := lifter.Lift(recipes)
	if err != nil {
		return src, nil, src.annotateError(err)
	}

	return src, program, nil
}

// loadValidProgram additionally runs stage C (validate).
func loadValidProgram(filename string) (*source, *chef.Program, error) {
	src, program, err := loadProgram(filename)
	if err != nil {
		return src, nil, err
	}
	if err := validator.Validate(program); err != nil {
		return src, nil, src.annotateError(err)
	}
	return src, program, nil
}

func printSuccess(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "✓ "+format+"\n", args...)
}

func printInfo(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "ℹ "+format+"\n", args...)
}
