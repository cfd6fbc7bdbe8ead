// Command tymlfmt is a small CLI exercising tyml end to end: parse a
// YAML (or, with --json-input, quasi-JSON) document, optionally
// resolve its anchors/aliases/merge keys, optionally read or write a
// value at a dotted path, and re-emit it as YAML or JSON.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	params := Params{}

	rootCmd := &cobra.Command{
		Use:           "tymlfmt [flags] <file|->",
		Short:         "Parse, resolve, query and re-emit YAML documents",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.InputPath = args[0]
			}
			result, err := Run(params)
			if err != nil {
				return err
			}
			switch {
			case result.GetFound:
				fmt.Fprintln(cmd.OutOrStdout(), result.GetValue)
			case params.GetPath != "":
				return fmt.Errorf("tymlfmt: path %q not found", params.GetPath)
			}
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&params.OutputPath, "out", "o", "", "output file (default stdout)")
	flags.StringVarP(&params.To, "to", "t", "yaml", `output format: "yaml" or "json"`)
	flags.BoolVar(&params.Resolve, "resolve", false, "expand anchors, aliases and merge keys before output")
	flags.BoolVar(&params.JSONInput, "json-input", false, "preprocess quasi-JSON (comments, trailing commas) before parsing")
	flags.StringVar(&params.GetPath, "get", "", "print the scalar value at this dotted/bracketed path and exit")
	flags.StringVar(&params.SetPath, "set", "", "set the scalar value at this dotted/bracketed path before output")
	flags.StringVar(&params.SetValue, "set-value", "", "the value to write with --set")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
