package mdblog

import "github.com/alnah/go-mdblog/internal/pipeline"

// AllTag is the pseudo-tag that selects every post.
const AllTag = "All"

// Post is a fully rendered blog post.
type Post struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          string     `json:"date"`
	ReadTime      string     `json:"readTime"`
	Tags          []string   `json:"tags"`
	Pinned        bool       `json:"pinned"`
	FeaturedImage string     `json:"featuredImage"`
	Author        Author     `json:"author"`
	Content       string     `json:"content"`
	TOC           []TOCEntry `json:"toc"`
}

// HasTag reports whether the post carries tag exactly.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Author is the author card shown with a post.
type Author struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Bio   string `json:"bio"`
}

// TOCEntry is one heading of a post's table of contents.
type TOCEntry struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Defaults holds the values used when a front-matter key is missing.
type Defaults struct {
	Title         string
	Description   string
	Date          string
	ReadTime      string
	FeaturedImage string
	Author        Author
}

// DefaultDefaults returns the built-in fallback values.
func DefaultDefaults() Defaults {
	return Defaults{
		Title:         "Untitled",
		ReadTime:      "5 min read",
		FeaturedImage: "/placeholder.svg?height=400&width=800",
		Author: Author{
			Name:  "Arjun Patel",
			Image: "/placeholder.svg?height=100&width=100",
			Bio:   "Software Engineer & Tech Blogger",
		},
	}
}

// Merge returns d with every empty field replaced by the matching field of
// fallback. Neither value is modified.
func (d Defaults) Merge(fallback Defaults) Defaults {
	return Defaults{
		Title:         firstNonEmpty(d.Title, fallback.Title),
		Description:   firstNonEmpty(d.Description, fallback.Description),
		Date:          firstNonEmpty(d.Date, fallback.Date),
		ReadTime:      firstNonEmpty(d.ReadTime, fallback.ReadTime),
		FeaturedImage: firstNonEmpty(d.FeaturedImage, fallback.FeaturedImage),
		Author:        d.Author.Merge(fallback.Author),
	}
}

// Merge returns a with every empty field taken from fallback.
func (a Author) Merge(fallback Author) Author {
	return Author{
		Name:  firstNonEmpty(a.Name, fallback.Name),
		Image: firstNonEmpty(a.Image, fallback.Image),
		Bio:   firstNonEmpty(a.Bio, fallback.Bio),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// FilterOptions selects posts for Filter.
type FilterOptions struct {
	Tag   string // Empty or AllTag = every tag
	Query string // Case-insensitive substring; empty = no search
}

// Listing is a filtered listing split into pinned and regular posts.
// Both slices keep listing order and are never nil.
type Listing struct {
	Pinned  []*Post `json:"pinned"`
	Regular []*Post `json:"regular"`
}

// Len returns the total number of posts in the listing.
func (l Listing) Len() int {
	return len(l.Pinned) + len(l.Regular)
}

// toTOCEntries converts pipeline headings to the public type.
func toTOCEntries(entries []pipeline.TOCEntry) []TOCEntry {
	out := make([]TOCEntry, len(entries))
	for i, e := range entries {
		out[i] = TOCEntry(e)
	}
	return out
}
