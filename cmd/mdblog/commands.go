package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/dateutil"
)

// parseQuery parses flags for a read-only command. Flag errors are usage
// errors; --help prints the command help and returns flag.ErrHelp.
func parseQuery(name string, args []string, env *Environment, withFilter bool) (*queryFlags, []string, error) {
	f := &queryFlags{}
	fs := newQueryFlagSet(name, f, withFilter)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { runHelp([]string{name}, env) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}

// newTextView builds the text layout for a query command.
func newTextView(f *outputFlags, env *Environment) (textView, error) {
	v := textView{width: env.TermWidth()}
	if f.dateFormat == "" {
		return v, nil
	}
	layout, err := dateutil.ParseDisplayFormat(f.dateFormat)
	if err != nil {
		return textView{}, err
	}
	v.dateLayout = layout
	return v, nil
}

// helpOK turns flag.ErrHelp into success.
func helpOK(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// runList prints all posts, or the pinned/regular split when --tag or
// --query is given.
func runList(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseQuery("list", args, env, true)
	if err != nil {
		return helpOK(err)
	}
	if err := requireArgs("list", rest, 0, "[flags]"); err != nil {
		return err
	}
	view, err := newTextView(&f.output, env)
	if err != nil {
		return err
	}
	blog, _, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}

	if f.tag != "" || f.query != "" {
		listing, err := blog.Filter(ctx, mdblog.FilterOptions{Tag: f.tag, Query: f.query})
		if err != nil {
			return err
		}
		if f.output.json {
			return writeJSON(env.Stdout, listing)
		}
		writeListing(env.Stdout, listing, view)
		return nil
	}

	posts, err := blog.Posts(ctx)
	if err != nil {
		return err
	}
	if f.output.json {
		return writeJSON(env.Stdout, posts)
	}
	writePostTable(env.Stdout, posts, view)
	return nil
}

// runShow prints one post.
func runShow(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseQuery("show", args, env, false)
	if err != nil {
		return helpOK(err)
	}
	if err := requireArgs("show", rest, 1, "<slug>"); err != nil {
		return err
	}
	view, err := newTextView(&f.output, env)
	if err != nil {
		return err
	}
	blog, _, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}

	post, err := blog.Post(ctx, rest[0])
	if err != nil {
		return err
	}
	if f.output.json {
		return writeJSON(env.Stdout, post)
	}
	writePost(env.Stdout, post, view)
	return nil
}

// runTags prints the tag list, starting with "All".
func runTags(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseQuery("tags", args, env, false)
	if err != nil {
		return helpOK(err)
	}
	if err := requireArgs("tags", rest, 0, "[flags]"); err != nil {
		return err
	}
	blog, _, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}

	tags, err := blog.Tags(ctx)
	if err != nil {
		return err
	}
	if f.output.json {
		return writeJSON(env.Stdout, tags)
	}
	for _, t := range tags {
		fmt.Fprintln(env.Stdout, t)
	}
	return nil
}

// runTag prints the posts carrying one tag.
func runTag(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseQuery("tag", args, env, false)
	if err != nil {
		return helpOK(err)
	}
	if err := requireArgs("tag", rest, 1, "<tag>"); err != nil {
		return err
	}
	view, err := newTextView(&f.output, env)
	if err != nil {
		return err
	}
	blog, _, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}

	posts, err := blog.PostsByTag(ctx, rest[0])
	if err != nil {
		return err
	}
	if f.output.json {
		return writeJSON(env.Stdout, posts)
	}
	writePostTable(env.Stdout, posts, view)
	return nil
}

// runSearch prints the posts matching a query.
func runSearch(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseQuery("search", args, env, false)
	if err != nil {
		return helpOK(err)
	}
	if err := requireArgs("search", rest, 1, "<query>"); err != nil {
		return err
	}
	view, err := newTextView(&f.output, env)
	if err != nil {
		return err
	}
	blog, _, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}

	posts, err := blog.Search(ctx, rest[0])
	if err != nil {
		return err
	}
	if f.output.json {
		return writeJSON(env.Stdout, posts)
	}
	writePostTable(env.Stdout, posts, view)
	return nil
}

// runSlugs prints every slug, one per line.
func runSlugs(ctx context.Context, args []string, env *Environment) error {
	f, rest, err := parseQuery("slugs", args, env, false)
	if err != nil {
		return helpOK(err)
	}
	if err := requireArgs("slugs", rest, 0, "[flags]"); err != nil {
		return err
	}
	blog, _, err := buildBlog(&f.common, &f.blog, env)
	if err != nil {
		return err
	}

	slugs, err := blog.Slugs(ctx)
	if err != nil {
		return err
	}
	if f.output.json {
		return writeJSON(env.Stdout, slugs)
	}
	for _, s := range slugs {
		fmt.Fprintln(env.Stdout, s)
	}
	return nil
}
