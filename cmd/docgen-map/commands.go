package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"sort"

	"github.com/spf13/cobra"

	"github.com/noah-isme/legal-intake-api/pkg/docgen"
)

func newKeysCmd() *cobra.Command {
	var count bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the protected document-generation keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := docgen.ProtectedSchema().Keys()
			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintln(out, len(keys))
				return nil
			}
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of keys")
	return cmd
}

func addMapFlags(cmd *cobra.Command, in *mapInput) {
	cmd.Flags().StringVar(&in.taxonomyPath, "taxonomy", "", "Taxonomy YAML file (default: protected schema)")
	cmd.Flags().StringVar(&in.intakePath, "intake", "", "Intake JSON file")
	cmd.Flags().StringVar(&in.schemaVersion, "schema-version", "", "v1, v2 or compat (default: from intake file, else compat)")
	_ = cmd.MarkFlagRequired("intake")
}

func newMapCmd(opts *rootOptions) *cobra.Command {
	var (
		in         mapInput
		outputOnly bool
	)
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Resolve and map an intake file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := runMapping(in, opts.logger())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if outputOnly {
				return enc.Encode(rep.Output)
			}
			return enc.Encode(rep)
		},
	}
	addMapFlags(cmd, &in)
	cmd.Flags().BoolVar(&outputOnly, "output-only", false, "Print only the output keys")
	return cmd
}

func newDiffCmd(opts *rootOptions) *cobra.Command {
	var (
		in     mapInput
		golden string
	)
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare the mapping of an intake with a stored output",
		Long:  "diff exits non-zero when any key was added, removed or changed compared to the golden output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := runMapping(in, opts.logger())
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(golden)
			if err != nil {
				return fmt.Errorf("read golden: %w", err)
			}
			var want map[string]interface{}
			if err := json.Unmarshal(raw, &want); err != nil {
				return fmt.Errorf("parse golden %s: %w", golden, err)
			}

			drift := diffOutputs(want, rep.Output)
			out := cmd.OutOrStdout()
			for _, line := range drift {
				fmt.Fprintln(out, line)
			}
			if len(drift) > 0 {
				return fmt.Errorf("%d keys drifted from %s", len(drift), golden)
			}
			fmt.Fprintf(out, "%d keys match %s\n", len(rep.Output), golden)
			return nil
		},
	}
	addMapFlags(cmd, &in)
	cmd.Flags().StringVar(&golden, "golden", "", "Stored output JSON")
	_ = cmd.MarkFlagRequired("golden")
	return cmd
}

// diffOutputs lists drifted keys in lexical order.
func diffOutputs(want map[string]interface{}, got docgen.Output) []string {
	keys := make(map[string]struct{}, len(want)+len(got))
	for k := range want {
		keys[k] = struct{}{}
	}
	for k := range got {
		keys[k] = struct{}{}
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var lines []string
	for _, k := range sorted {
		w, inWant := want[k]
		g, inGot := got[k]
		switch {
		case !inGot:
			lines = append(lines, fmt.Sprintf("- %s: %v (missing)", k, w))
		case !inWant:
			lines = append(lines, fmt.Sprintf("+ %s: %v (new)", k, g))
		case !reflect.DeepEqual(w, g):
			lines = append(lines, fmt.Sprintf("~ %s: %v -> %v", k, w, g))
		}
	}
	return lines
}
