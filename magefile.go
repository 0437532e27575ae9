//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/covconv"

// Default target - build the binary
var Default = Build

// Build builds the covconv binary
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/covconv")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// BrowserTest runs the tests including the ones driving a local Chrome
func BrowserTest() error {
	return sh.RunWithV(map[string]string{"COVCONV_BROWSER_TESTS": "1"}, "go", "test", "./internal/capture/...")
}

// Lint runs go vet and golangci-lint
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Coverage captures browser coverage from the running application, converts it and renders the nyc report
func Coverage() error {
	mg.Deps(Build)

	if err := sh.RunV(binary, "capture"); err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}
	if err := sh.RunV(binary, "convert"); err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}
	return sh.RunV("npx", "nyc", "report")
}

// Clean removes build artifacts and coverage output
func Clean() error {
	for _, path := range []string{"bin", ".nyc_output", "coverage"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}
