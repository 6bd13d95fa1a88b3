package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .atomcss.yaml config file",
	Long:  `Create a .atomcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if err := writeDefaultConfig(defaultConfigPath, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

func writeDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

const defaultConfig = `# atomcss configuration
# Docs: https://github.com/yacobolo/atomcss

verbose: false
color: false

compile:
  root: .
  include:
    - "**/*.styles.yaml"
    - "**/*.styles.json"
  exclude:
    - "node_modules/**"
  output: atoms.css
  metadata: atoms.json
  style-resolution: application-order # application-order | property-specificity | legacy-expand-shorthands
  prefix: x
  dev: false
  debug: false
  gen-conditional-classes: false
  skip-conditional: false
  legacy-value-flipping: false
  vendor-prefixes: false
  layers: false
  output-format: issues               # issues | summary | full | json
  print-lines: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
