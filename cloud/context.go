package cloud

import "sort"

// componentSpan records the bookkeeping the walker keeps for each component
// it attempted: which tokens were present when the attempt started, and
// whether it succeeded.
type componentSpan struct {
	Component *CommandComponent
	StartCur  int
	EndCur    int
	Success   bool
}

// ParseContext is the per-invocation state threaded through a single Parse
// call: the sender, the values accumulated so far (keyed by component
// name), the component currently being attempted, and span bookkeeping used
// for diagnostics. It is single-owner: only the caller's walker touches it.
type ParseContext struct {
	Sender    Sender
	authority PermissionAuthority

	values  map[string]any
	current *CommandComponent
	spans   []componentSpan
}

// NewParseContext builds a fresh context for one Parse/Suggest invocation.
func NewParseContext(sender Sender, authority PermissionAuthority) *ParseContext {
	return &ParseContext{
		Sender:    sender,
		authority: authority,
		values:    make(map[string]any),
	}
}

// Store records the parsed value for a component name.
func (c *ParseContext) Store(name string, v any) {
	c.values[name] = v
}

// Get retrieves a previously stored value.
func (c *ParseContext) Get(name string) (any, bool) {
	v, ok := c.values[name]

	return v, ok
}

// Values returns the full accumulated value map. Callers must not mutate
// the returned map.
func (c *ParseContext) Values() map[string]any {
	return c.values
}

// SetCurrent records which component is presently being attempted.
func (c *ParseContext) SetCurrent(comp *CommandComponent) {
	c.current = comp
}

// Current returns the component presently being attempted, or nil.
func (c *ParseContext) Current() *CommandComponent {
	return c.current
}

// markStart opens a new span for comp at the given cursor value.
func (c *ParseContext) markStart(comp *CommandComponent, cursor int) {
	c.spans = append(c.spans, componentSpan{Component: comp, StartCur: cursor})
}

// markEnd closes the most recently opened span.
func (c *ParseContext) markEnd(cursor int, success bool) {
	if len(c.spans) == 0 {
		return
	}

	last := &c.spans[len(c.spans)-1]
	last.EndCur = cursor
	last.Success = success
}

// hasPermission asks the injected authority, treating a nil authority as
// granting everything (a tree used purely for completion/testing need not
// wire a real one).
func (c *ParseContext) hasPermission(perm Permission) bool {
	if perm == nil || c.authority == nil {
		return true
	}

	return c.authority.Has(c.Sender, perm)
}

// flagMetaKey is the SuggestionContext.meta key used to record which flag,
// if any, is currently being typed (§4.9's "flag currently being typed").
const flagMetaKey = "__current_flag__"

// SuggestionContext extends ParseContext with the accumulator and
// bookkeeping the suggester needs: a meta map (holding the flag-in-progress
// marker; pre-consumed aggregate sub-tokens go through Store instead) and
// the post-processor that reshapes raw candidates before they reach the
// caller.
type SuggestionContext struct {
	*ParseContext

	Processor SuggestionProcessor

	raw  []string
	meta map[string]any
}

// NewSuggestionContext builds a fresh suggestion context.
func NewSuggestionContext(sender Sender, authority PermissionAuthority, proc SuggestionProcessor) *SuggestionContext {
	return &SuggestionContext{
		ParseContext: NewParseContext(sender, authority),
		Processor:    proc,
		meta:         make(map[string]any),
	}
}

// Offer adds candidates to the cumulative suggestion set, keeping only
// those that are proper prefix-extensions of current (startswith, but not
// equal).
func (c *SuggestionContext) Offer(current string, candidates ...string) {
	for _, cand := range candidates {
		if cand == current {
			continue
		}

		if len(cand) < len(current) || cand[:len(current)] != current {
			continue
		}

		c.raw = append(c.raw, cand)
	}
}

// Suggestions returns the accumulated, processed candidate set.
func (c *SuggestionContext) Suggestions() []string {
	if c.Processor != nil {
		return c.Processor.Process(c, c.raw)
	}

	return dedupeSorted(c.raw)
}

func (c *SuggestionContext) setMeta(key string, v any) {
	c.meta[key] = v
}

func (c *SuggestionContext) clearMeta(key string) {
	delete(c.meta, key)
}

func (c *SuggestionContext) getMeta(key string) (any, bool) {
	v, ok := c.meta[key]

	return v, ok
}

func dedupeSorted(in []string) []string {
	seen := make(map[string]struct{}, len(in))

	out := make([]string, 0, len(in))

	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}

		out = append(out, s)
	}

	sort.Strings(out)

	return out
}
