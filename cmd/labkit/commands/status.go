package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jmorrow/labkit/internal/config"
	"github.com/jmorrow/labkit/internal/files"
	"github.com/jmorrow/labkit/internal/scaffold"
	"github.com/jmorrow/labkit/internal/validate"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a project overview",
	Long: `Show where the project root is, the metadata from project.toml, which
config documents are present, and how many file templates are declared.`,
	Example: `  labkit status
  labkit status --json`,
	RunE: runStatus,
}

// projectStatus is the JSON shape of the status output.
type projectStatus struct {
	Root     string         `json:"root"`
	Project  *scaffold.Meta `json:"project,omitempty"`
	Configs  []string       `json:"configs"`
	FileKeys int            `json:"file_keys"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cache, err := projectCache()
	if err != nil {
		return err
	}

	status := projectStatus{Root: cache.Root()}

	if meta, err := scaffold.LoadMeta(cache.Root()); err == nil {
		status.Project = &meta
	}

	for _, name := range []string{config.DocPaths, config.DocParams, config.DocFiles} {
		path := filepath.Join(cache.Root(), cache.ConfigDir(), name+".yaml")
		if _, err := os.Stat(path); err == nil {
			status.Configs = append(status.Configs, name+".yaml")
		}
	}

	status.FileKeys = len(files.NewResolver(cache).Keys())

	result := validate.All(cache, cmdLogger(cmd))
	status.Errors = len(result.Errors())
	status.Warnings = len(result.Warnings())

	out := cmd.OutOrStdout()
	if statusJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(status)
	}

	fmt.Fprintf(out, "Root:      %s\n", status.Root)
	if status.Project != nil {
		fmt.Fprintf(out, "Project:   %s (%s)\n", status.Project.Name, status.Project.Slug)
	}
	fmt.Fprintf(out, "Configs:   %d of 3 present\n", len(status.Configs))
	fmt.Fprintf(out, "Templates: %d file keys\n", status.FileKeys)
	switch {
	case status.Errors > 0:
		fmt.Fprintf(out, "Health:    %s\n", color.RedString("%d error(s)", status.Errors))
	case status.Warnings > 0:
		fmt.Fprintf(out, "Health:    %s\n", color.YellowString("%d warning(s)", status.Warnings))
	default:
		fmt.Fprintf(out, "Health:    %s\n", color.GreenString("ok"))
	}
	return nil
}
