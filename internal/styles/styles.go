// Package styles holds the built-in rewriting styles. Each style is a prompt
// template applied per chunk; the [Language] placeholder is substituted with
// the configured output language before the chunk text is appended.
package styles

import (
	"fmt"
	"sort"
	"strings"
)

// LanguagePlaceholder is the token substituted with the output language.
const LanguagePlaceholder = "[Language]"

// Spec is a named rewriting template producing one output document per video.
type Spec struct {
	Name     string
	Template string
}

// Prompt renders the style template for the given output language.
func (s Spec) Prompt(language string) string {
	return strings.ReplaceAll(s.Template, LanguagePlaceholder, language)
}

var builtin = map[string]string{
	"Summary": `Summarize the following transcript section in [Language]. ` +
		`Capture every major point in the order it appears, keep technical terms intact, ` +
		`and format the result as markdown with headings and bullet points.`,

	"Educational": `Rewrite the following transcript section as structured study notes in [Language]. ` +
		`Use markdown headings per topic, define terminology on first use, ` +
		`and add a short "Key Takeaways" list at the end of each topic.`,

	"Balanced and Detailed": `Rewrite the following transcript section in [Language] as clean, detailed prose. ` +
		`Preserve all information and nuance, remove filler words and repetitions, ` +
		`and organize the text into readable markdown paragraphs with headings.`,

	"Narrative Rewriting": `Rewrite the following transcript section in [Language] as a flowing narrative. ` +
		`Keep the speaker's ideas and examples but present them as polished written prose, ` +
		`in markdown, without bullet lists.`,

	"Q&A Generation": `Convert the following transcript section into question-and-answer pairs in [Language]. ` +
		`Write each question as a markdown heading and the answer beneath it, ` +
		`covering the material thoroughly and in order.`,
}

// Names returns the built-in style names, sorted for stable output.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up one built-in style by name.
func Get(name string) (Spec, bool) {
	template, ok := builtin[name]
	if !ok {
		return Spec{}, false
	}
	return Spec{Name: name, Template: template}, true
}

// Resolve maps selected style names to specs. An empty selection means all
// built-in styles. Unknown names are rejected rather than skipped so a typo
// cannot silently drop an output document.
func Resolve(selected []string) ([]Spec, error) {
	if len(selected) == 0 {
		selected = Names()
	}

	specs := make([]Spec, 0, len(selected))
	for _, name := range selected {
		spec, ok := Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown style %q (available: %s)", name, strings.Join(Names(), ", "))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
