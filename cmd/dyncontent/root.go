package main

import (
	"io"
	"os"

	"github.com/npillmayer/dyncontent/config"
	"github.com/npillmayer/dyncontent/dom"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/cobra"
)

// tracer traces with key 'dyncontent.cli'.
func tracer() tracing.Trace {
	return tracing.Select("dyncontent.cli")
}

// traced lists the tracer keys the --trace level applies to.
var traced = []string{
	"dyncontent.cli",
	"dyncontent.pipeline",
	"dyncontent.config",
	"dyncontent.dom",
	"dyncontent.cssom",
	"dyncontent.scope",
	"dyncontent.collect",
	"dyncontent.control",
	"dyncontent.highlight",
}

type options struct {
	configFile string
	target     string
	scope      string
	attribute  string
	sort       string
	locale     string
	traceLevel string
	conf       config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "dyncontent",
		Short: "Install a release selector into HTML documents",
		Long: `dyncontent collects the distinct values of an attribute (data-rev by
default) within a search scope of an HTML document, inserts a <select>
listing them, and highlights elements carrying the selected value.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&opts.target, "target", "", "selector of the element receiving the control")
	flags.StringVar(&opts.scope, "scope", "", "selector of the search scope")
	flags.StringVar(&opts.attribute, "attribute", "", "attribute to collect values from")
	flags.StringVar(&opts.sort, "sort", "", "option order: ascending or descending")
	flags.StringVar(&opts.locale, "locale", "", "collation locale (BCP 47)")
	flags.StringVar(&opts.traceLevel, "trace", "Error", "trace level: Error, Info or Debug")
	root.AddCommand(newApplyCmd(opts))
	root.AddCommand(newValuesCmd(opts))
	root.AddCommand(newStyleCmd(opts))
	return root
}

// setup configures tracing and assembles the widget configuration:
// defaults, then the configuration file, then flags.
func (opts *options) setup(cmd *cobra.Command) error {
	var kconf *koanfadapter.KConf
	if opts.configFile == "" {
		kconf = koanfadapter.New(nil, "dyncontent", []string{"nt"})
	} else {
		kconf = koanfadapter.New(nil, "", nil)
	}
	kconf.InitDefaults()
	level := opts.traceLevel
	if f := cmd.Flags().Lookup("trace"); (f == nil || !f.Changed) && kconf.IsSet("trace.root") {
		level = kconf.GetString("trace.root")
	}
	initTracing(kconf, level)
	//
	base := config.Default()
	if opts.configFile != "" {
		c, err := config.LoadFile(opts.configFile)
		if err != nil {
			return err
		}
		base = c
		tracer().Infof("configuration loaded from %s", opts.configFile)
	}
	for key, flag := range map[string]string{
		config.KeyTarget:    "target",
		config.KeyScope:     "scope",
		config.KeyAttribute: "attribute",
		config.KeySort:      "sort",
		config.KeyLocale:    "locale",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			kconf.Set(key, f.Value.String())
		}
	}
	conf, err := config.Merge(base, kconf)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	opts.conf = conf
	return nil
}

// initTracing installs trace2go as tracer selector, with all tracers of
// this application at level.
func initTracing(kconf *koanfadapter.KConf, level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	kconf.Set("tracing.adapter", "go")
	kconf.Set("trace.root", level)
	for _, key := range traced {
		kconf.Set("trace."+key, level)
	}
	if err := trace2go.ConfigureRoot(kconf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		tracing.Errorf("cannot configure tracing: %v", err)
		return
	}
	tracing.SetTraceSelector(trace2go.Selector())
	// replaced tracers inherit the level of their predecessors
	l := tracing.TraceLevelFromString(level)
	for _, key := range traced {
		trace2go.GetOrCreateTracer(key).SetTraceLevel(l)
	}
}

// readDocument parses the file at path, or standard input for "-".
func readDocument(cmd *cobra.Command, path string) (*dom.Document, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return dom.Parse(r)
}
