package sandbox

import "regexp"

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	scriptTagRe   = regexp.MustCompile(`(?i)</?script\b[^>]*>`)
	dangerousRe   = regexp.MustCompile(`\s*dangerouslySetInnerHTML\s*=\s*\{\{[^}]*\}\s*\}`)
	jsURLRe       = regexp.MustCompile(`(?i)javascript\s*:`)
	htmlEventRe   = regexp.MustCompile(`\son[a-z]+\s*=\s*("[^"]*"|'[^']*')`)
)

// Sanitize strips markup-level injection vectors from source before it is
// analysed. Camel-case handler props (onClick, onClose) survive; lowercase
// HTML event attributes (onerror, onload) do not.
func Sanitize(source string) string {
	source = scriptBlockRe.ReplaceAllString(source, "")
	source = scriptTagRe.ReplaceAllString(source, "")
	source = dangerousRe.ReplaceAllString(source, "")
	source = jsURLRe.ReplaceAllString(source, "")
	source = htmlEventRe.ReplaceAllString(source, "")
	return source
}
