package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "describe FILE",
		Short: "Synthesize the adapter of a mapping file and print its methods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDescribe(args[0], dump)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the resolved plan")

	return cmd
}

func (a *app) runDescribe(path string, dump bool) error {
	b, err := a.builder(path)
	if err != nil {
		return err
	}

	adapter, err := b.CreateAdapter()
	if err != nil {
		return err
	}

	src := adapter.EventSource()

	fmt.Fprintf(a.out, "unit:   %s\n", adapter.Name())
	fmt.Fprintf(a.out, "source: %s\n", src.Name())
	fmt.Fprintf(a.out, "guid:   %s\n\n", src.GUID())

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "METHOD\tID\tCALL\tENTRY POINT")

	for _, e := range adapter.Events() {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name(), e.ID(), e.Call(), e.Signature())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "NOTIFICATION METHOD\tNOTIFICATION\tPARAMETERS")

	for _, n := range adapter.Notifications() {
		params := make([]string, len(n.ParameterNames()))
		for i, name := range n.ParameterNames() {
			params[i] = name + " " + n.ParameterTypes()[i].String()
		}

		fmt.Fprintf(w, "%s\t%s\t(%s)\n", n.MethodName(), n.NotificationName(), strings.Join(params, ", "))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	if dump {
		cfg := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}

		fmt.Fprintln(a.out)
		cfg.Fdump(a.out, adapter.Plan().Events)
	}

	return nil
}
