//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Lint mg.Namespace

// Go runs golangci-lint on the module
func (Lint) Go() error {
	fmt.Println("Running golangci-lint...")
	return sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
}

// Format lists files gofmt would change
func (Lint) Format() error {
	fmt.Println("Checking code formatting...")
	out, err := sh.Output("gofmt", "-l", "-s", "gate", "internal", "helpers", "example", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Golden checks that no golden file still contains a declaration to expand
func (Lint) Golden() error {
	fmt.Println("Checking golden files are fully expanded...")
	goldens, err := filepath.Glob("testdata/*/golden.rs")
	if err != nil {
		return err
	}
	args := append([]string{"run", ".", "expand", "--check"}, goldens...)
	return sh.RunV("go", args...)
}

// All runs all linting checks
func (Lint) All() error {
	mg.Deps(Lint.Go, Lint.Format, Lint.Golden)
	return nil
}
