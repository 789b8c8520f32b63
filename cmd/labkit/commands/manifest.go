package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/files"
	"github.com/jmorrow/labkit/internal/manifest"
)

var (
	manifestPatterns  []string
	manifestRecursive bool
	manifestOutput    string
)

func init() {
	manifestBuildCmd.Flags().StringArrayVarP(&manifestPatterns, "pattern", "p", nil,
		"glob pattern to match (repeatable; default from tool config)")
	manifestBuildCmd.Flags().BoolVarP(&manifestRecursive, "recursive", "r", false,
		"scan subdirectories too")
	manifestBuildCmd.Flags().StringVarP(&manifestOutput, "output", "o", "",
		`destination file (default: the "outputs.manifest" template)`)

	manifestCmd.AddCommand(manifestBuildCmd)
	manifestCmd.AddCommand(manifestShowCmd)
	rootCmd.AddCommand(manifestCmd)
}

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Build and inspect data manifests",
	Long: `A manifest is a typed tabular file listing the data files in a
directory, one row per file, with a fixed column schema. Manifests are
reproducible: scanning an unchanged directory yields identical output.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var manifestBuildCmd = &cobra.Command{
	Use:   "build <directory>",
	Short: "Scan a directory and write its manifest",
	Example: `  labkit manifest build data/raw --pattern "*.fits"
  labkit manifest build data/raw -r -o data/products/manifest.ecsv`,
	Args: cobra.ExactArgs(1),
	RunE: runManifestBuild,
}

func runManifestBuild(cmd *cobra.Command, args []string) error {
	cache, err := projectCache()
	if err != nil {
		return err
	}
	logger := cmdLogger(cmd)

	dir := args[0]
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cache.Root(), dir)
	}

	patterns := manifestPatterns
	if len(patterns) == 0 {
		patterns = viper.GetStringSlice("manifest_patterns")
	}

	paths, err := manifest.Scan(dir, patterns, manifestRecursive)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.NewUserError(errors.Newf("no files in %s match %v", dir, patterns),
			"check the directory and --pattern flags")
	}

	rows, failed := manifest.BuildRows(paths, manifest.DefaultParser, logger)

	output := manifestOutput
	if output == "" {
		output, err = files.NewResolver(cache).Path("outputs.manifest", nil)
		if err != nil {
			return errors.NewUserError(err,
				"pass --output, or add an outputs.manifest template to files.yaml")
		}
	} else if !filepath.IsAbs(output) {
		output = filepath.Join(cache.Root(), output)
	}

	if err := manifest.Write(rows, output); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %d rows to %s\n",
		color.GreenString("✓ Wrote"), len(rows), output)
	if len(failed) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n",
			color.YellowString("%d file(s) skipped", len(failed)))
	}
	return nil
}

var manifestShowCmd = &cobra.Command{
	Use:   "show <manifest>",
	Short: "Print a manifest as a table",
	Args:  cobra.ExactArgs(1),
	RunE:  runManifestShow,
}

func runManifestShow(cmd *cobra.Command, args []string) error {
	src := args[0]
	if !filepath.IsAbs(src) {
		if cache, err := projectCache(); err == nil {
			src = filepath.Join(cache.Root(), src)
		}
	}

	table, err := manifest.Load(src)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	names := table.ColumnNames()
	for i, name := range names {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, name)
	}
	fmt.Fprintln(w)
	for _, row := range table.Rows {
		for i, name := range names {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprintf(w, "%v", row[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
