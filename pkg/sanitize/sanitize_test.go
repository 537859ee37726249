package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsScripts(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<p>hello</p><script>alert(1)</script>`)
	assert.Equal(t, "<p>hello</p>", out)
}

func TestSanitize_StripsEventHandlers(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<p onclick="steal()">hello</p>`)
	assert.Equal(t, "<p>hello</p>", out)
}

func TestSanitize_KeepsFormattingAndClasses(t *testing.T) {
	p := NewPolicy()

	in := `<p class="lead">A <strong>bold</strong> <em>wine</em></p>`
	assert.Equal(t, in, p.Sanitize(in))
}

func TestSanitize_KeepsLinksWithRel(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<a href="https://vinealis.example">visit</a>`)
	assert.Contains(t, out, `href="https://vinealis.example"`)
	assert.Contains(t, out, `rel="nofollow"`)
}

func TestSanitize_DropsJavascriptURLs(t *testing.T) {
	p := NewPolicy()

	out := p.Sanitize(`<a href="javascript:alert(1)">x</a>`)
	assert.NotContains(t, out, "javascript")
}
