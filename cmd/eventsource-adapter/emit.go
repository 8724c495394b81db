package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"eventsource-adapter/notify"
	"eventsource-adapter/sink"
)

var (
	errBadValue       = errors.New("expected key=value")
	errNoSubscription = errors.New("no notification method listens to")
)

func newEmitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "emit FILE NOTIFICATION [key=value...]",
		Short: "Publish a notification through the adapter of a mapping file",
		Long: `Publish a notification through the adapter of a mapping file and print
every event written. Values are converted to the parameter types.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEmit(args[0], args[1], args[2:])
		},
	}
}

func (a *app) runEmit(path, name string, pairs []string) error {
	values, err := parseValues(pairs)
	if err != nil {
		return err
	}

	b, err := a.builder(path)
	if err != nil {
		return err
	}

	adapter, err := b.CreateAdapter()
	if err != nil {
		return err
	}

	src := adapter.EventSource()
	src.Enable(sink.NewLogListener(a.logger.Named("sink")))
	src.Enable(sink.ListenerFunc(func(e sink.EventWritten) {
		fmt.Fprintf(a.out, "%s/%d %v\n", e.SourceName, e.EventID, e.Payload)
	}))

	n := notify.New(notify.WithLogger(a.logger))
	if err := n.EnlistTarget(adapter); err != nil {
		return err
	}

	if !n.IsEnabled(name) {
		return fmt.Errorf("%w %q", errNoSubscription, name)
	}

	return n.Notify(name, values)
}

func parseValues(pairs []string) (notify.Values, error) {
	values := make(notify.Values, len(pairs))

	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q", errBadValue, p)
		}

		values[k] = v
	}

	return values, nil
}
