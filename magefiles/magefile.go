// Package main provides build targets for the rolodex project using Mage.
//
// Usage:
//
//	mage build           Compile rolodex binary to bin/
//	mage test            Run all tests (unit + integration)
//	mage testUnit        Run only unit tests (exclude tests/)
//	mage lint            Run golangci-lint
//	mage clean           Remove build artifacts
//	mage install         Install rolodex to GOPATH/bin

//go:build mage

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "rolodex"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rolodex"
)

// Build compiles the rolodex binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests (unit and integration).
func Test() error {
	mg.Deps(Build)
	return sh.RunV(binGo, "test", "./...")
}

// TestUnit runs only unit tests, excluding the tests/ directory.
func TestUnit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unit []string
	for _, pkg := range strings.Split(pkgs, "\n") {
		if pkg == "" || strings.Contains(pkg, "/tests/") {
			continue
		}
		unit = append(unit, pkg)
	}
	args := append([]string{"test"}, unit...)
	return sh.RunV(binGo, args...)
}

// Lint runs golangci-lint over the module.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install installs the rolodex binary to GOPATH/bin.
func Install() error {
	return sh.RunV(binGo, "install", cmdDir)
}
