//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Gen mg.Namespace

// Example regenerates the expanded sources and manifest of the example crate
func (Gen) Example() error {
	fmt.Println("Regenerating example output...")
	out, err := sh.Output("go", "run", ".", "expand", "example/src/lib.rs")
	if err != nil {
		return err
	}
	if err := os.WriteFile("example/expanded/lib.rs", []byte(out+"\n"), 0o644); err != nil {
		return err
	}
	return sh.RunV("go", "run", ".", "manifest", "--output=example/gated.go", "example/src/lib.rs")
}

// Check fails if the expanded example still has declarations to expand
func (Gen) Check() error {
	fmt.Println("Checking expanded example...")
	return sh.RunV("go", "run", ".", "expand", "--check", "example/expanded/lib.rs")
}

// Verify regenerates examples and checks if files changed
func (Gen) Verify() error {
	fmt.Println("Verifying generated files are up to date...")
	mg.Deps(Gen.Example)
	mg.Deps(Gen.Check)

	// Check if git shows any changes
	out, err := sh.Output("git", "status", "--porcelain", "example/")
	if err != nil {
		return err
	}

	if out != "" {
		return fmt.Errorf("generated files are out of date, run 'mage gen:example'")
	}

	fmt.Println("Generated files are up to date!")
	return nil
}
