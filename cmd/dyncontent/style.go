package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/dyncontent/control"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/dyncontent/dom/style/cssom"
	"github.com/npillmayer/dyncontent/dom/style/cssom/douceuradapter"
	"github.com/spf13/cobra"
)

func newStyleCmd(opts *options) *cobra.Command {
	var rules bool
	cmd := &cobra.Command{
		Use:   "style [IN.html]",
		Short: "Print the generated style sheet",
		Long: `style prints the style sheet the widget generates for the current
configuration. Given a document, it instead prints the widget's style
element found in the document and reports whether it is up to date.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := control.GenerateStyle(opts.conf.Template(), opts.conf.ControlID,
				opts.conf.MarkerClass)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return printDocumentStyle(cmd, opts, args[0], text, rules)
			}
			if rules {
				sheet, err := douceuradapter.Parse(text)
				if err != nil {
					return err
				}
				printRules(cmd, sheet)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&rules, "rules", false, "list selectors and properties instead of CSS text")
	return cmd
}

func printDocumentStyle(cmd *cobra.Command, opts *options, path, generated string, rules bool) error {
	doc, err := readDocument(cmd, path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	sheets := douceuradapter.ExtractStyleElements(doc.Root())
	tracer().Infof("document has %d non-empty style sheet(s)", len(sheets))
	el := douceuradapter.StyleElementByID(doc.Root(), opts.conf.StyleID)
	if el == nil {
		return fmt.Errorf("document has no <style id=%q>", opts.conf.StyleID)
	}
	sheet, err := douceuradapter.StylesOf(el)
	if err != nil {
		return fmt.Errorf("<style id=%q> does not parse: %w", opts.conf.StyleID, err)
	}
	if rules {
		printRules(cmd, sheet)
	} else {
		fmt.Fprint(out, dom.TextContent(el))
	}
	status := "up to date"
	if strings.TrimSpace(sheet.String()) != strings.TrimSpace(generated) {
		status = "outdated"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "<style id=%q> is %s\n", opts.conf.StyleID, status)
	return nil
}

func printRules(cmd *cobra.Command, sheet cssom.StyleSheet) {
	out := cmd.OutOrStdout()
	for _, r := range sheet.Rules() {
		fmt.Fprintln(out, r.Selector())
		for _, p := range r.Properties() {
			imp := ""
			if r.IsImportant(p) {
				imp = " !important"
			}
			fmt.Fprintf(out, "    %s: %s%s\n", p, r.Value(p), imp)
		}
	}
}
