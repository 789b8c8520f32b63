package commands

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/jmorrow/labkit/internal/errors"
	"github.com/jmorrow/labkit/internal/files"
)

var (
	resolveInteractive bool
	resolveSet         []string
	resolveTemplate    bool
)

func init() {
	resolveCmd.Flags().BoolVarP(&resolveInteractive, "interactive", "i", false, "pick the key with a fuzzy finder")
	resolveCmd.Flags().StringArrayVar(&resolveSet, "set", nil, "override a context key (key=value, repeatable)")
	resolveCmd.Flags().BoolVar(&resolveTemplate, "template", false, "print the substituted template without anchoring it at the root")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [key]",
	Short: "Resolve a file template to a concrete path",
	Long: `Look up a key in files.yaml and substitute its {dotted.key} markers
against the context built from paths.yaml and params.yaml.

Keys under the templates block may be given in their short form ("cube"
for "templates.cube"); any other key must be fully dotted. The printed
path is absolute unless --template is set.`,
	Example: `  labkit resolve cube
  labkit resolve outputs.summary --set run_id=v2
  labkit resolve --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	cache, err := projectCache()
	if err != nil {
		return err
	}
	resolver := files.NewResolver(cache)

	extra, err := parseSetFlags(resolveSet)
	if err != nil {
		return err
	}

	var key string
	switch {
	case len(args) == 1:
		key = args[0]
	case resolveInteractive:
		key, err = pickKey(resolver)
		if err != nil {
			return err
		}
		if key == "" {
			return nil
		}
	default:
		return errors.NewUserError(errors.New("no key given"),
			"pass a key, or use --interactive to pick one")
	}

	var resolved string
	if resolveTemplate {
		resolved, err = resolver.Resolve(key, extra)
	} else {
		resolved, err = resolver.Path(key, extra)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resolved)
	return nil
}

// pickKey runs the fuzzy finder over the known file keys. An aborted pick
// returns an empty key and no error.
func pickKey(resolver *files.Resolver) (string, error) {
	keys := resolver.Keys()
	if len(keys) == 0 {
		return "", errors.NewUserError(errors.New("files.yaml declares no templates"),
			"add entries under templates: in config/files.yaml")
	}

	idx, err := fuzzyfinder.Find(
		keys,
		func(i int) string { return keys[i] },
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			resolved, err := resolver.Resolve(keys[i], nil)
			if err != nil {
				return fmt.Sprintf("%s\n\n%v", keys[i], err)
			}
			return fmt.Sprintf("%s\n\n%s", keys[i], resolved)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", errors.Wrap(err, "interactive key selection failed")
	}
	return keys[idx], nil
}
