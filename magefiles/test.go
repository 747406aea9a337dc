//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Test mg.Namespace

// Unit runs the library and command tests
func (Test) Unit() error {
	fmt.Println("Running unit tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Gate runs only the expansion core tests, including the txtar fixtures
func (Test) Gate() error {
	fmt.Println("Running gate tests...")
	return sh.RunV("go", "test", "-v", "./gate/...")
}

// Coverage runs tests with coverage report
func (Test) Coverage() error {
	fmt.Println("Running tests with coverage...")
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// UpdateGolden rewrites testdata/*/golden.rs from the current expansion
func (Test) UpdateGolden() error {
	fmt.Println("Updating golden files...")
	return sh.RunV("go", "test", "-run", "TestGoldenFiles", ".", "-update")
}

// All runs all tests and checks
func (Test) All() error {
	mg.Deps(Test.Unit)
	return nil
}
