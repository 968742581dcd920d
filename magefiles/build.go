//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the command line renderer into bin/whitted.
func (Build) Cli() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/whitted", "."), withStream())
	return err
}

// Builds the web server into bin/whitted-web.
func (Build) Web() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/whitted-web", "./web"), withStream())
	return err
}

// Builds both binaries.
func (Build) All() {
	mg.SerialDeps(Build.Cli, Build.Web)
}

type Test mg.Namespace

// Runs every package test.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the tests with the race detector, which covers the tile workers.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}
