package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmorrow/labkit/internal/files"
	"github.com/jmorrow/labkit/internal/task"
)

// registry holds the tasks runnable through `labkit task run`.
var registry = task.NewDefaultRegistry()

func init() {
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskRunCmd)
	rootCmd.AddCommand(taskCmd)
}

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "List and run project tasks",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available tasks",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

var taskRunCmd = &cobra.Command{
	Use:     "run <name>",
	Short:   "Run a task by name",
	Example: `  labkit task run validate-configs`,
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskRun,
}

func runTaskRun(cmd *cobra.Command, args []string) error {
	cache, err := projectCache()
	if err != nil {
		return err
	}

	rc := &task.RunContext{
		Cache:  cache,
		Files:  files.NewResolver(cache),
		Logger: cmdLogger(cmd),
	}

	result, err := registry.Run(args[0], rc)
	if err != nil {
		return err
	}
	if result != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", result)
	}
	return nil
}
