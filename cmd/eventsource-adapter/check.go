package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"eventsource-adapter/eventsource"
	"eventsource-adapter/internal/diagnostic"
	"eventsource-adapter/internal/mapping"
)

var errCheckFailed = errors.New("check failed")

func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a mapping file and resolve its sink calls",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(args[0])
		},
	}

	cmd.Flags().Bool(keyFailOnFallback, false, "Report events without a typed sink overload as errors")
	_ = a.v.BindPFlag(keyFailOnFallback, cmd.Flags().Lookup(keyFailOnFallback))

	return cmd
}

func (a *app) runCheck(path string) error {
	mf, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	diags := mapping.Validate(mf, mapping.DefaultCatalog())

	if diags.IsValid() {
		opts, err := a.options()
		if err != nil {
			return err
		}

		b, err := eventsource.FromMappingFile(mf, nil, opts...)
		if err != nil {
			return err
		}

		// Resolution errors are reported through the plan diagnostics.
		p, err := b.Plan()
		if p == nil {
			return err
		}

		diags.Merge(p.Diagnostics)
	}

	printDiagnostics(a, diags)

	if !diags.IsValid() {
		return fmt.Errorf("%w: %d error(s)", errCheckFailed, len(diags.Errors))
	}

	fmt.Fprintf(a.out, "%s: %d event(s) OK\n", mf.Name, len(mf.Events))

	return nil
}

func printDiagnostics(a *app, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(a.out, "%s: %s\n", d.Severity, d)
	}
}
