// Package shellcomp adapts the tree's raw suggestion output to
// rsteube/carapace, so a host CLI can hand the accumulated candidate set to
// a shell's native completion machinery instead of printing it directly.
package shellcomp

import (
	"sort"

	comp "github.com/rsteube/carapace"

	"github.com/TehBrian/cloud/cloud"
)

// Processor dedupes and sorts a tree's raw suggestion candidates (Process)
// and turns a candidate set into a carapace Action (Action), attaching an
// optional one-line description per candidate via Describe.
type Processor struct {
	// Describe annotates a candidate with a one-line description shown
	// alongside it in shells that support it. May be nil.
	Describe func(candidate string) string
}

// NewProcessor builds a Processor. describe may be nil.
func NewProcessor(describe func(candidate string) string) *Processor {
	return &Processor{Describe: describe}
}

// Process implements cloud.SuggestionProcessor: it dedupes and sorts the
// raw set and returns it as strings. It builds no carapace Action; Action
// does that separately.
func (p *Processor) Process(_ *cloud.SuggestionContext, raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))

	for _, s := range raw {
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	sort.Strings(out)

	return out
}

// Action builds the carapace.Action a shell-completion hook should return
// for a given raw candidate set, applying Describe when configured.
func (p *Processor) Action(raw []string) comp.Action {
	if p.Describe == nil {
		return comp.ActionValues(raw...)
	}

	described := make([]string, 0, len(raw)*2)

	for _, c := range raw {
		described = append(described, c, p.Describe(c))
	}

	return comp.ActionValuesDescribed(described...)
}
