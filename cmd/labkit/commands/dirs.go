package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(dirsCmd)
}

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "Create the directories declared in paths.yaml",
	Long: `Walk the paths document and create every directory it declares,
including parents. Existing directories are left alone; a failure on one
directory does not stop the others from being created.`,
	RunE: runDirs,
}

func runDirs(cmd *cobra.Command, _ []string) error {
	cache, err := projectCache()
	if err != nil {
		return err
	}

	created, err := cache.EnsureProjectDirectories(cmdLogger(cmd))

	out := cmd.OutOrStdout()
	for _, dir := range created {
		fmt.Fprintf(out, "  created %s\n", dir)
	}
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Fprintln(out, color.GreenString("✓ All declared directories already exist"))
	} else {
		fmt.Fprintln(out, color.GreenString("✓ Created %d directories", len(created)))
	}
	return nil
}
