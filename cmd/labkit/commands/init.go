package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmorrow/labkit/internal/scaffold"
)

var (
	initTarget      string
	initForce       bool
	initAuthor      string
	initDescription string
)

func init() {
	initCmd.Flags().StringVar(&initTarget, "target", "", "directory to generate into (default: the project slug)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing starter files")
	initCmd.Flags().StringVar(&initAuthor, "author", "", "author recorded in project.toml")
	initCmd.Flags().StringVar(&initDescription, "description", "", "description recorded in project.toml")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Generate a new project skeleton",
	Long: `Generate a new project: the config documents (paths.yaml, params.yaml,
files.yaml), the data directory tree, a README and project.toml.

Generation is idempotent. Re-running init on an existing project only adds
what is missing; pass --force to overwrite the starter files.`,
	Example: `  # Create ./ngc-628-mosaic
  labkit init "NGC 628 Mosaic"

  # Generate into a specific directory
  labkit init "NGC 628 Mosaic" --target .`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	name := args[0]
	meta := scaffold.Meta{
		Name:        name,
		Slug:        scaffold.Slugify(name),
		Description: initDescription,
		Author:      initAuthor,
	}

	target := initTarget
	if target == "" {
		target = meta.Slug
	}

	written, err := scaffold.Generate(target, meta, initForce, cmdLogger(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(written) == 0 {
		fmt.Fprintf(out, "Project at %s is already initialized\n", target)
		return nil
	}
	fmt.Fprintf(out, "%s project %s in %s\n", color.GreenString("✓ Created"), meta.Slug, target)
	for _, path := range written {
		fmt.Fprintf(out, "  %s\n", path)
	}
	return nil
}
