//go:build mage

// Package main provides build targets for gmtools using Mage.
//
// Usage:
//
//	mage build       Compile gmboard to bin/
//	mage install     Install gmboard to GOPATH/bin
//	mage clean       Remove build artifacts
//	mage test:all    Run all tests
//	mage test:race   Run all tests with the race detector
//	mage test:cover  Write a coverage profile to bin/cover.out
//	mage lint        Run golangci-lint
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
	binaryName = "gmboard"
	binaryDir  = "bin"
	cmdDir     = "./cmd/gmboard"
	versionVar = "github.com/dfb/gmtools/internal/cli.Version"
)

// version describes HEAD, or "dev" outside a git checkout.
func version() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev"
	}
	return strings.TrimSpace(out)
}

// Build compiles gmboard to bin/, stamping the version.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X " + versionVar + "=" + version()
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Install builds and copies gmboard to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
