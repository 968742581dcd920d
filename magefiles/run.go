//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders every built-in scene into output/.
func (Run) Scenes() error {
	mg.Deps(Build.Cli)
	for _, name := range []string{"default", "three-spheres", "hexagon", "transparent-cube", "mirrors"} {
		fmt.Printf("Rendering %s...\n", name)
		if _, err := executeCmd("bin/whitted", withArgs("-scene", name)); err != nil {
			return err
		}
	}
	return nil
}

// Re-renders scenes/room.toml on every save.
func (Run) Watch() error {
	mg.Deps(Build.Cli)
	_, err := executeCmd("bin/whitted", withArgs("-scene", "scenes/room.toml", "-watch"), withStream())
	return err
}

// Starts the web server in debug mode.
func (Run) Web() error {
	_, err := executeCmd("go", withArgs("run", "./web"), withEnv("WHITTED_LOG_LEVEL=debug"), withStream())
	return err
}
