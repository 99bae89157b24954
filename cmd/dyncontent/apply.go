package main

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/dyncontent"
	"github.com/spf13/cobra"
)

func newApplyCmd(opts *options) *cobra.Command {
	var (
		selection string
		output    string
	)
	cmd := &cobra.Command{
		Use:   "apply [flags] IN.html",
		Short: "Install the selector and write the resulting document",
		Long: `apply installs the selector into an HTML document and writes the result.
If the widget cannot be installed, a diagnostic is printed to standard
error and the document is written unchanged. Use "-" to read from standard
input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			report, err := dyncontent.Install(doc, opts.conf)
			if err != nil {
				return err
			}
			if report.OK() {
				if cmd.Flags().Changed("select") && !report.Widget.Select(selection) {
					return fmt.Errorf("no option %q, values are %q", selection, report.Values)
				}
			} else {
				fmt.Fprintf(cmd.ErrOrStderr(), "widget not installed (%s): %v\n",
					report.Diagnostic, report.Err)
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			tracer().Infof("writing document, %s", report.Diagnostic)
			return doc.Render(w)
		},
	}
	cmd.Flags().StringVar(&selection, "select", "", "value to select after installation")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default standard output)")
	return cmd
}
