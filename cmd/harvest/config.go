package main

import (
	"fmt"

	"github.com/fwojciec/harvest/yaml"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	if err := yaml.EncodeConfig(deps.Stdout, deps.Config); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
