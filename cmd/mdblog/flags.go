package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// blogFlags holds flags that shape how posts are loaded and rendered.
type blogFlags struct {
	postsDir    string
	workers     int
	skipInvalid bool
	chroma      string // chroma style; non-empty enables the chroma fallback
}

// outputFlags holds output format flags.
type outputFlags struct {
	json       bool
	dateFormat string // text output only
}

// queryFlags holds all flags for the read-only commands
// (list, show, tags, tag, search, slugs).
type queryFlags struct {
	common commonFlags
	blog   blogFlags
	output outputFlags
	tag    string // list only
	query  string // list only
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common commonFlags
	blog   blogFlags
	addr   string
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common commonFlags
	blog   blogFlags
	output outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addBlogFlags adds post loading flags to a FlagSet.
func addBlogFlags(fs *flag.FlagSet, f *blogFlags) {
	fs.StringVarP(&f.postsDir, "posts", "d", "", "posts directory (default \"posts\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.BoolVar(&f.skipInvalid, "skip-invalid", false, "skip posts that fail to parse")
	fs.StringVar(&f.chroma, "chroma", "", "highlight unknown languages with this chroma style")
}

// addOutputFlags adds output format flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.json, "json", false, "print JSON instead of text")
}

// newQueryFlagSet builds the FlagSet for a read-only command.
// withFilter adds --tag and --query, used by list.
func newQueryFlagSet(name string, f *queryFlags, withFilter bool) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addBlogFlags(fs, &f.blog)
	addOutputFlags(fs, &f.output)
	fs.StringVar(&f.output.dateFormat, "date-format", "", "date format for text output (preset or tokens)")
	if withFilter {
		fs.StringVarP(&f.tag, "tag", "t", "", "only posts with this tag")
		fs.StringVarP(&f.query, "query", "s", "", "only posts matching this text")
	}
	return fs
}

// newServeFlagSet builds the FlagSet for the serve command.
func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addBlogFlags(fs, &f.blog)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default \""+defaultAddr+"\")")
	return fs
}

// newCheckFlagSet builds the FlagSet for the check command.
func newCheckFlagSet(f *checkFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addBlogFlags(fs, &f.blog)
	addOutputFlags(fs, &f.output)
	return fs
}
