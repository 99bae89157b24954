package main

import (
	"fmt"

	"github.com/npillmayer/dyncontent/collect"
	"github.com/npillmayer/dyncontent/scope"
	"github.com/spf13/cobra"
)

func newValuesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "values IN.html",
		Short: "Print the option values, one per line, in display order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			sc, err := scope.Resolve(doc, opts.conf)
			if err != nil {
				return err
			}
			values := collect.Values(doc, sc, opts.conf.Attribute, collect.OrderFor(opts.conf))
			if len(values) == 0 {
				return fmt.Errorf("%w: attribute %q", collect.ErrNoMatches, opts.conf.Attribute)
			}
			out := cmd.OutOrStdout()
			for _, v := range values {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
}
