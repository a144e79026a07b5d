// Package issue renders the fixed GitHub-issue Markdown template.
//
// The output contract is a `## <Type>: <Title>` heading followed by the
// sections Description, Environment, Steps to Reproduce, Expected Behavior,
// Actual Behavior, Error Logs (fenced code block) and Proposed Tasks
// (checklist). Adapt rewrites only the heading and the Description body of a
// matched template; every other section is carried over verbatim.
package issue

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Issue type headings emitted in the template title.
const (
	TypeBugReport      = "Bug Report"
	TypeFeatureRequest = "Feature Request"
	TypePerformance    = "Performance Issue"
	TypeDocumentation  = "Documentation"
)

// Sections lists the template's content sections, in order, as used by
// structural evaluation. Error Logs is excluded there to match the original
// scoring scheme.
var Sections = []string{
	"Description",
	"Environment",
	"Steps to Reproduce",
	"Expected Behavior",
	"Actual Behavior",
	"Proposed Tasks",
}

const maxTitleLen = 60

var typeKeywords = []struct {
	issueType string
	keywords  []string
}{
	{TypeBugReport, []string{"crash", "error", "fail", "broken", "not working", "bug"}},
	{TypeFeatureRequest, []string{"add", "new", "implement", "create", "feature"}},
	{TypePerformance, []string{"slow", "performance", "memory", "cpu", "lag"}},
	{TypeDocumentation, []string{"docs", "document", "readme", "help"}},
}

// Classify derives the issue type from keywords in the raw input.
// Unrecognized inputs default to Bug Report.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.issueType
			}
		}
	}
	return TypeBugReport
}

// Title derives the heading title from the raw input: trimmed, truncated to
// 60 runes (with a "..." suffix), Title Cased. Empty input yields
// "Untitled Issue".
func Title(text string) string {
	title := strings.TrimSpace(text)
	if title == "" {
		return "Untitled Issue"
	}
	if runes := []rune(title); len(runes) > maxTitleLen {
		title = string(runes[:maxTitleLen-3]) + "..."
	}
	return cases.Title(language.English).String(title)
}

// Heading builds the full `## <Type>: <Title>` heading line for rawInput.
func Heading(rawInput string) string {
	return "## " + Classify(rawInput) + ": " + Title(rawInput)
}

// Adapt rewrites template for rawInput: the heading line is replaced with
// one derived from rawInput, and the first non-empty body line of the
// Description section is replaced with rawInput verbatim. All other sections
// are returned unchanged.
func Adapt(rawInput, template string) string {
	lines := strings.Split(template, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "##") {
		lines[0] = Heading(rawInput)
	}

	for i, line := range lines {
		if strings.TrimSpace(line) != "### Description" {
			continue
		}
		for j := i + 1; j < len(lines) && !strings.HasPrefix(lines[j], "###"); j++ {
			if strings.TrimSpace(lines[j]) != "" && !strings.HasPrefix(lines[j], "#") {
				lines[j] = rawInput
				break
			}
		}
		break
	}

	return strings.Join(lines, "\n")
}

// Fallback builds a placeholder skeleton for inputs with no usable match.
func Fallback(rawInput string) string {
	var b strings.Builder
	b.WriteString(Heading(rawInput))
	b.WriteString("\n\n### Description\n")
	b.WriteString(rawInput)
	b.WriteString(`

### Environment
- **Platform**: [Specify platform]
- **Component**: [Specify component]

### Steps to Reproduce
1. [Step 1]
2. [Step 2]
3. [Step 3]

### Expected Behavior
[Describe what should happen]

### Actual Behavior
[Describe what actually happens]

### Error Logs
` + "```\n[Add relevant logs here]\n```" + `

### Proposed Tasks
- [ ] Investigate the issue
- [ ] Identify root cause
- [ ] Implement fix
- [ ] Add tests
- [ ] Verify fix works`)
	return b.String()
}

// HasSection reports whether markdown contains the given `### <name>` section.
func HasSection(markdown, name string) bool {
	return strings.Contains(markdown, "### "+name)
}
