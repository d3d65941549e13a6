package sandbox

import (
	"fmt"
	"regexp"
)

// Analysis is the outcome of the static pass over sanitized source.
type Analysis struct {
	Safe   bool
	Issues []string
}

type denyRule struct {
	pattern *regexp.Regexp
	message string
}

var denyRules = []denyRule{
	{regexp.MustCompile(`\beval\s*\(`), "eval is not allowed"},
	{regexp.MustCompile(`\bnew\s+Function\b|\bFunction\s*\(`), "dynamic code construction is not allowed"},
	{regexp.MustCompile(`\bimport\s*\(`), "dynamic import is not allowed"},
	{regexp.MustCompile(`\brequire\s*\(`), "module loading is not allowed"},
	{regexp.MustCompile(`\bfetch\s*\(`), "network access is not allowed"},
	{regexp.MustCompile(`\bXMLHttpRequest\b`), "network access is not allowed"},
	{regexp.MustCompile(`\bWebSocket\s*\(`), "network access is not allowed"},
	{regexp.MustCompile(`\bdocument\s*\.`), "DOM access is not allowed"},
	{regexp.MustCompile(`\bwindow\s*\.`), "window access is not allowed"},
	{regexp.MustCompile(`\bglobalThis\b`), "global object access is not allowed"},
	{regexp.MustCompile(`\bprocess\s*\.`), "process access is not allowed"},
	{regexp.MustCompile(`\blocalStorage\b|\bsessionStorage\b`), "storage access is not allowed"},
	{regexp.MustCompile(`\bsetTimeout\s*\(|\bsetInterval\s*\(`), "timers are not allowed"},
	{regexp.MustCompile(`\b__proto__\b`), "prototype manipulation is not allowed"},
	{regexp.MustCompile(`\bconstructor\s*\[`), "prototype manipulation is not allowed"},
	{regexp.MustCompile(`\bwhile\s*\(\s*(?:true|1)\s*\)`), "unconditional loop is not allowed"},
	{regexp.MustCompile(`\bfor\s*\(\s*;\s*;\s*\)`), "unconditional loop is not allowed"},
	{regexp.MustCompile(`\bdo\s*\{`), "do-while loops are not allowed"},
}

// Analyze runs a deny-list pass over sanitized source. It catches the
// literal shapes a deny list can catch; condition-bounded runaway loops are
// left to the execution deadline.
func Analyze(source string) Analysis {
	var issues []string
	for _, rule := range denyRules {
		if loc := rule.pattern.FindString(source); loc != "" {
			issues = append(issues, fmt.Sprintf("%s: %q", rule.message, loc))
		}
	}
	return Analysis{Safe: len(issues) == 0, Issues: issues}
}
