// Package assets provides the stylesheet and script that enhanced code
// blocks rely on in the browser.
//
// The built-in code.css holds one rule per highlight class plus the code
// block wrapper. copy-code.js is the click handler for the copy buttons.
// Both are compiled in with go:embed.
//
// A site can override either file, or add its own, from a directory:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── scripts/
//	    └── {name}.js
//
// Resolver looks in that directory first and falls back to the embedded
// copies. Names are bare stems, and the directory is opened as an os.Root,
// so reads cannot escape it through ".." or symlinks.
package assets
