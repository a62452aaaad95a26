//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Loads the embedded demo scene and prints the result.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "demo"), withStream()); err != nil {
		return err
	}
	return nil
}

// Watches the scene given in SCENE below ASSETS and reloads it on change.
func (Run) Watch() error {
	scene := envOr("SCENE", "scenes/demo.xml")
	assets := envOr("ASSETS", "testbed/assets")
	if _, err := executeCmd("go", withArgs("run", ".", "watch", "--base", assets, scene), withStream()); err != nil {
		return err
	}
	return nil
}
