// Command docgen-map resolves and maps intake payloads offline against a
// taxonomy file, without a database. It is used to check alias changes and
// to catch drift in the protected document-generation keys.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "docgen-map",
		Short: "Inspect the intake to document-generation mapping",
		Long: `docgen-map runs the field resolver and mapper on local files.

Examples:
  docgen-map keys                                       # Print every protected key
  docgen-map map --intake intake.json                   # Map against the protected schema
  docgen-map map --taxonomy taxonomy.yaml --intake intake.json --schema-version v1
  docgen-map diff --intake intake.json --golden golden.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log dropped input to stderr")

	root.AddCommand(newKeysCmd())
	root.AddCommand(newMapCmd(opts))
	root.AddCommand(newDiffCmd(opts))
	return root
}

func (o *rootOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
