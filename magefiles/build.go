//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Binary builds bin/pubif
func (Build) Binary() error {
	fmt.Println("Building pubif binary...")
	return sh.RunV("go", "build", "-trimpath", "-o", "bin/pubif", ".")
}

// Smoke runs the built binary over the example crate and its configuration
func (Build) Smoke() error {
	mg.Deps(Build.Binary)
	fmt.Println("Smoke testing bin/pubif...")
	if err := sh.RunV("bin/pubif", "config"); err != nil {
		return err
	}
	if err := sh.Run("bin/pubif", "expand", "--color=off", "example/src/lib.rs"); err != nil {
		return err
	}
	return sh.RunV("bin/pubif", "expand", "--check", "example/expanded/lib.rs")
}

// Clean removes built artifacts
func (Build) Clean() error {
	fmt.Println("Cleaning build artifacts...")
	return sh.Rm("bin")
}
