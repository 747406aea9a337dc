//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

// Default target runs tests
var Default = Test.All

// CI runs tests, linters, a smoke test of the binary and the example
// freshness check
func CI() error {
	fmt.Println("Running CI checks...")
	mg.Deps(Test.All, Lint.All)
	mg.Deps(Build.Smoke, Gen.Verify)
	mg.Deps(Build.Clean)
	return nil
}
