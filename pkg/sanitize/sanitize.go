// Package sanitize wraps the HTML sanitization policy applied to editor
// supplied override content before it is persisted.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Policy sanitizes editor HTML. It uses bluemonday's UGCPolicy, which keeps
// safe formatting tags while stripping scripts, event handlers and other
// dangerous elements, extended with the attributes the admin editor emits.
type Policy struct {
	policy *bluemonday.Policy
}

// NewPolicy creates the sanitization policy for override content
func NewPolicy() *Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").OnElements("span", "p", "div")
	p.AllowDataURIImages()
	return &Policy{policy: p}
}

// Sanitize returns the cleaned HTML
func (p *Policy) Sanitize(html string) string {
	return p.policy.Sanitize(html)
}
