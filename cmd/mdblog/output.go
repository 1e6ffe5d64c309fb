package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/dateutil"
)

// Column widths for post tables.
const (
	dateColumn   = 10 // "2024-01-15"
	slugColumn   = 24
	minTitleCol  = 16
	columnGap    = "  "
	pinnedMarker = "*"
	ellipsis     = "…"
)

// textView controls how posts are laid out as text.
type textView struct {
	width      int             // terminal width in cells; 0 disables truncation
	dateLayout dateutil.Layout // zero keeps front-matter dates
}

// date renders a front-matter date with the view's layout.
func (v textView) date(d string) string {
	return dateutil.FormatPostDate(d, v.dateLayout)
}

// dateWidth returns the date column width for posts.
func (v textView) dateWidth(posts []*mdblog.Post) int {
	w := dateColumn
	for _, p := range posts {
		w = max(w, runewidth.StringWidth(v.date(p.Date)))
	}
	return w
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writePostTable prints one line per post: pin marker, date, slug, title
// and tags. When v.width > 0, the title column is truncated so each line fits.
func writePostTable(w io.Writer, posts []*mdblog.Post, v textView) {
	dateWidth := v.dateWidth(posts)
	for _, p := range posts {
		fmt.Fprintln(w, postRow(p, v, dateWidth))
	}
}

func postRow(p *mdblog.Post, v textView, dateWidth int) string {
	marker := " "
	if p.Pinned {
		marker = pinnedMarker
	}
	date := runewidth.FillRight(v.date(p.Date), dateWidth)
	slug := runewidth.FillRight(runewidth.Truncate(p.Slug, slugColumn, ellipsis), slugColumn)
	tags := ""
	if len(p.Tags) > 0 {
		tags = "[" + strings.Join(p.Tags, ", ") + "]"
	}

	title := p.Title
	if v.width > 0 {
		used := runewidth.StringWidth(marker) + dateWidth + slugColumn + 3*len(columnGap)
		if tags != "" {
			used += runewidth.StringWidth(tags)
		}
		titleWidth := max(v.width-used, minTitleCol)
		title = runewidth.Truncate(title, titleWidth, ellipsis)
		if tags != "" {
			title = runewidth.FillRight(title, titleWidth)
		}
	}

	row := marker + date + columnGap + slug + columnGap + title
	if tags != "" {
		row += columnGap + tags
	}
	return strings.TrimRight(row, " ")
}

// writeListing prints a pinned/regular split with section headers.
func writeListing(w io.Writer, l mdblog.Listing, v textView) {
	if len(l.Pinned) > 0 {
		fmt.Fprintln(w, "Pinned:")
		writePostTable(w, l.Pinned, v)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Posts:")
	if len(l.Regular) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	writePostTable(w, l.Regular, v)
}

// writePost prints a post's metadata, table of contents and HTML body.
func writePost(w io.Writer, p *mdblog.Post, v textView) {
	fmt.Fprintln(w, p.Title)
	fmt.Fprintln(w, strings.Repeat("=", max(runewidth.StringWidth(p.Title), 1)))
	if p.Description != "" {
		fmt.Fprintln(w, p.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "slug:     %s\n", p.Slug)
	fmt.Fprintf(w, "date:     %s\n", v.date(p.Date))
	fmt.Fprintf(w, "read:     %s\n", p.ReadTime)
	fmt.Fprintf(w, "author:   %s\n", p.Author.Name)
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "tags:     %s\n", strings.Join(p.Tags, ", "))
	}
	if p.Pinned {
		fmt.Fprintln(w, "pinned:   yes")
	}

	if len(p.TOC) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Contents:")
		for _, e := range p.TOC {
			indent := strings.Repeat("  ", max(e.Level-1, 0))
			fmt.Fprintf(w, "%s- %s (#%s)\n", indent, e.Text, e.ID)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Content)
}
