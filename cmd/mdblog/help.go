package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  list         List posts, newest first")
	fmt.Fprintln(w, "  show         Show one post")
	fmt.Fprintln(w, "  tags         List tags")
	fmt.Fprintln(w, "  tag          List posts with a tag")
	fmt.Fprintln(w, "  search       Search posts")
	fmt.Fprintln(w, "  slugs        List post slugs")
	fmt.Fprintln(w, "  serve        Serve posts as a JSON API")
	fmt.Fprintln(w, "  check        Check posts and config")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdblog help <command>' for details on a specific command.")
}

// printCommonFlags prints the flags shared by every content command.
func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Content:")
	fmt.Fprintln(w, "  -d, --posts <dir>         Posts directory (default \"posts\")")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w, "      --skip-invalid        Skip posts that fail to parse")
	fmt.Fprintln(w, "      --chroma <style>      Highlight other languages with chroma")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printQueryUsage prints usage for a read-only command.
func printQueryUsage(w io.Writer, usage, desc string, filter bool) {
	fmt.Fprintf(w, "Usage: mdblog %s\n", usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, desc)
	fmt.Fprintln(w)
	if filter {
		fmt.Fprintln(w, "Filter:")
		fmt.Fprintln(w, "  -t, --tag <tag>           Only posts with this tag (\"All\" = every post)")
		fmt.Fprintln(w, "  -s, --query <text>        Only posts matching this text")
		fmt.Fprintln(w, "                            With a filter, pinned posts are listed apart")
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "      --json                Print JSON instead of text")
	fmt.Fprintln(w, "      --date-format <fmt>   Date format for text output")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long, short")
	fmt.Fprintln(w, "                            Tokens: YYYY YY MMMM MMM MM M DD D, [literal]")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve posts as a read-only JSON API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Routes:")
	fmt.Fprintln(w, "  GET /api/posts                 All posts")
	fmt.Fprintln(w, "  GET /api/posts/{slug}          One post")
	fmt.Fprintln(w, "  GET /api/slugs                 Post slugs")
	fmt.Fprintln(w, "  GET /api/tags                  Tags, starting with \"All\"")
	fmt.Fprintln(w, "  GET /api/tags/{tag}/posts      Posts with a tag")
	fmt.Fprintln(w, "  GET /api/search?q=             Posts matching a query")
	fmt.Fprintln(w, "  GET /api/listing?tag=&q=       Pinned/regular split")
	fmt.Fprintln(w, "  GET /assets/{name}             code.css, copy-code.js, chroma.css")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintf(w, "  -a, --addr <host:port>    Listen address (default %q)\n", defaultAddr)
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse and render every post, reporting errors and missing metadata.")
	fmt.Fprintln(w, "Exits 1 when any post fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print JSON instead of text")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	w := env.Stdout
	switch args[0] {
	case "list":
		printQueryUsage(w, "list [flags]", "List posts, newest first. Pinned posts are marked with *.", true)
	case "show":
		printQueryUsage(w, "show <slug> [flags]", "Show one post: metadata, table of contents and HTML.", false)
	case "tags":
		printQueryUsage(w, "tags [flags]", "List \"All\" followed by every tag, in first-seen order.", false)
	case "tag":
		printQueryUsage(w, "tag <tag> [flags]", "List posts carrying a tag (case-sensitive).", false)
	case "search":
		printQueryUsage(w, "search <query> [flags]", "List posts whose title, description, tags or content match.", false)
	case "slugs":
		printQueryUsage(w, "slugs [flags]", "List post slugs without rendering.", false)
	case "serve":
		printServeUsage(w)
	case "check":
		printCheckUsage(w)
	case "completion":
		printCompletionUsage(w)
	case "version":
		fmt.Fprintln(w, "Usage: mdblog version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: mdblog help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
