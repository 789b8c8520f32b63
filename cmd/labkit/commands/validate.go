package commands

import (
	"github.com/spf13/cobra"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/validate"
)

var validateFormat string

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text, json")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configs, paths and templates in one pass",
	Long: `Run every project check and report the complete set of problems:

  - the three config documents load and parse
  - every declared path exists or can be created
  - every file template resolves without missing context keys
  - derived placeholder expressions reference known keys

All failures are aggregated; one run shows everything that is broken.`,
	Example: `  labkit validate
  labkit validate --format json`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cache, err := projectCache()
	if err != nil {
		return err
	}

	result := validate.All(cache, cmdLogger(cmd))

	reporter := validate.NewReporter(cmd.OutOrStdout(), validate.Format(validateFormat))
	if err := reporter.Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewExitError(
			errors.Newf("validation found %d error(s)", len(result.Errors())),
			errors.ExitUser)
	}
	return nil
}
