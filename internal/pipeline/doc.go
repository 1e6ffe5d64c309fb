// Package pipeline implements the markdown-to-post-HTML rendering stages.
//
// Stages run in a fixed order on full HTML strings:
//   - Markdown to HTML conversion via Goldmark (GFM, footnotes, raw HTML kept)
//   - Heading identification: id attributes on h2-h6
//   - Code block enhancement: language header, copy button, highlighting
//     spans, inline code class
//
// Heading ids are assigned before code blocks are rewritten so the heading
// pattern never sees enhancer markup. Both HTML stages only match markup
// they have not produced themselves, which makes PostProcess idempotent.
//
// Source loading lives in internal/source; the highlight rule table in
// internal/highlight.
package pipeline
