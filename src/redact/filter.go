package redact

// Filter scrubs sensitive substrings from text before it reaches any
// persistent or shipped log sink. The rule table is fixed at
// construction, so a Filter is safe for concurrent use.
type Filter struct {
	rules []Rule
}

// NewFilter builds a filter over the given rules, applied in order.
func NewFilter(rules []Rule) *Filter {
	return &Filter{rules: rules}
}

// NewDefaultFilter builds a filter over the default rule table.
func NewDefaultFilter() *Filter {
	return NewFilter(DefaultRules())
}

// Redact replaces every match of every rule with the rule's
// placeholder. Unmatched text passes through unchanged and malformed
// input never fails: worst case the input comes back as-is.
func (f *Filter) Redact(text string) string {
	for _, rule := range f.rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Placeholder)
	}
	return text
}

// Rules exposes the table for diagnostics. Callers must not mutate it.
func (f *Filter) Rules() []Rule {
	return f.rules
}
