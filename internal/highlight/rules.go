package highlight

import "strings"

// Language binds rule lists to the names a fence may use for them.
type Language struct {
	Names []string
	Rules []Rule
}

// quotedString matches a single- or double-quoted string in escaped code.
// Group 1 is the opening quote entity, group 2 the body.
const quotedString = `(&#39;|&quot;)((?:(?!\1)[^&]|&(?!#39;|quot;))*?)\1`

// number skips the digits of numeric character references such as &#39;.
// Digits are ASCII only: regexp2's \d would also take other scripts' digits.
const number = `(?<!&#)\b([0-9]+\.?[0-9]*)\b`

var jsRules = []Rule{
	{`\b(const|let|var|function|return|if|else|for|while|do|break|continue|switch|case|default|try|catch|finally|throw|new|this|class|extends|import|export|from|as|async|await|yield|typeof|instanceof)\b`, `<span class="keyword">$1</span>`},
	{`\b(true|false|null|undefined|NaN|Infinity)\b`, `<span class="literal">$1</span>`},
	{number, `<span class="number">$1</span>`},
	{quotedString, `<span class="string">$1$2$1</span>`},
	{`//.*$`, `<span class="comment">$0</span>`},
	{`/\*[\s\S]*?\*/`, `<span class="comment">$0</span>`},
	{`\b(console|document|window|Array|Object|String|Number|Boolean|Date|Math|JSON|Promise|setTimeout|setInterval|clearTimeout|clearInterval)\b`, `<span class="builtin">$1</span>`},
}

var tsRules = concat(jsRules, []Rule{
	{`\b(interface|type|enum|namespace|declare|abstract|implements|private|public|protected|readonly|static)\b`, `<span class="keyword">$1</span>`},
})

var jsxRules = concat(jsRules, []Rule{
	{`(&lt;/?)([A-Z][A-Za-z0-9]*)`, `$1<span class="jsx-tag">$2</span>`},
	{`\b([a-z]+)=`, `<span class="jsx-attr">$1</span>=`},
})

var pythonRules = []Rule{
	{`\b(def|class|if|elif|else|for|while|try|except|finally|with|as|import|from|return|yield|break|continue|pass|raise|assert|global|nonlocal|lambda|and|or|not|in|is)\b`, `<span class="keyword">$1</span>`},
	{`\b(True|False|None)\b`, `<span class="literal">$1</span>`},
	{number, `<span class="number">$1</span>`},
	{quotedString, `<span class="string">$1$2$1</span>`},
	// &#39; and friends are not comments.
	{`(?<!&)#.*$`, `<span class="comment">$0</span>`},
	{`\b(print|len|range|enumerate|zip|map|filter|sorted|sum|max|min|abs|round|int|float|str|list|dict|set|tuple)\b`, `<span class="builtin">$1</span>`},
}

var cssRules = []Rule{
	{`([.#]?[a-zA-Z-]+)\s*{`, `<span class="selector">$1</span> {`},
	{`([a-zA-Z-]+):`, `<span class="property">$1</span>:`},
	{`:\s*([^;]+);`, `: <span class="value">$1</span>;`},
	{`/\*[\s\S]*?\*/`, `<span class="comment">$0</span>`},
}

var htmlRules = []Rule{
	{`(&lt;/?)([a-zA-Z][a-zA-Z0-9]*)`, `$1<span class="tag">$2</span>`},
	{`([a-zA-Z-]+)=`, `<span class="attr">$1</span>=`},
	{quotedString, `<span class="string">$1$2$1</span>`},
}

var jsonRules = []Rule{
	{quotedString + `:`, `<span class="key">$1$2$1</span>:`},
	{`:\s*` + quotedString, `: <span class="string">$1$2$1</span>`},
	{`:\s*([0-9]+\.?[0-9]*)`, `: <span class="number">$1</span>`},
	{`:\s*(true|false|null)`, `: <span class="literal">$1</span>`},
}

// languageTable is the built-in rule table. Names are lowercase.
var languageTable = []Language{
	{Names: []string{"javascript", "js"}, Rules: jsRules},
	{Names: []string{"typescript", "ts"}, Rules: tsRules},
	{Names: []string{"jsx", "tsx"}, Rules: jsxRules},
	{Names: []string{"python", "py"}, Rules: pythonRules},
	{Names: []string{"css"}, Rules: cssRules},
	{Names: []string{"html"}, Rules: htmlRules},
	{Names: []string{"json"}, Rules: jsonRules},
}

// Rules returns a copy of the rule list for lang, or false when the table
// has no entry for it.
func Rules(lang string) ([]Rule, bool) {
	lang = strings.ToLower(lang)
	for _, l := range languageTable {
		for _, name := range l.Names {
			if name == lang {
				return concat(l.Rules), true
			}
		}
	}
	return nil, false
}

// Languages returns every name the rule table answers to.
func Languages() []string {
	var names []string
	for _, l := range languageTable {
		names = append(names, l.Names...)
	}
	return names
}

func concat(lists ...[]Rule) []Rule {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	out := make([]Rule, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
