// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jcq reads values from JSON documents using a forward-only cursor.
package main

import (
	"os"

	"github.com/creachadair/jcursor"
	"github.com/creachadair/jcursor/internal/config"
	"github.com/creachadair/jcursor/internal/input"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("jcq")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globals are the settings shared by all subcommands.
type globals struct {
	configPath string
	maxDepth   int
	comments   bool
	jwcc       bool
	verbose    int

	flags *pflag.FlagSet
	cfg   *config.Config
}

func (g *globals) bind(fs *pflag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "configuration file (default $"+config.EnvVar+")")
	fs.IntVar(&g.maxDepth, "max-depth", 0, "maximum nesting depth of input values")
	fs.BoolVar(&g.comments, "comments", false, "allow comments in the input")
	fs.BoolVar(&g.jwcc, "jwcc", false, "accept JSON With Commas and Comments")
	fs.CountVarP(&g.verbose, "verbose", "v", "increase logging verbosity (repeatable)")
	g.flags = fs
}

// setup configures logging and loads the configuration, applying any
// explicitly-set flags over it.
func (g *globals) setup() error {
	commonlog.Configure(g.verbose, nil)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	if g.flags.Changed("max-depth") {
		cfg.MaxDepth = g.maxDepth
	}
	if g.flags.Changed("comments") {
		cfg.AllowComments = g.comments
	}
	if g.flags.Changed("jwcc") {
		cfg.JWCC = g.jwcc
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Debugf("config: %+v", *cfg)
	g.cfg = cfg
	return nil
}

// open reads and indexes the input at path.
func (g *globals) open(cmd *cobra.Command, path string) (*jcursor.Document, error) {
	data, err := input.ReadFile(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	log.Infof("read %d bytes from %s (%s)", len(data), path, input.CompressionOf(path))
	d, err := jcursor.Parse(data, g.cfg.IndexOptions())
	if err != nil {
		return nil, describe(path, data, err)
	}
	log.Debugf("indexed %d tokens", d.Index().Len())
	return d, nil
}

func newRootCmd() *cobra.Command {
	g := new(globals)
	root := &cobra.Command{
		Use:   "jcq",
		Short: "Query JSON documents with a forward-only cursor",
		Long: `Query JSON documents with a forward-only cursor.

Each command reads a single input file. The file name "-" denotes standard
input. Files ending in .gz, .zst, or .lz4 are decompressed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}
	g.bind(root.PersistentFlags())

	root.AddCommand(newGetCmd(g))
	root.AddCommand(newKeysCmd(g))
	root.AddCommand(newCheckCmd(g))
	return root
}
