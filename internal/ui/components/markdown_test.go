package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownRender(t *testing.T) {
	md := NewMarkdown(DarkStyle)
	out := md.Render("Your **heart line** runs deep.", 40)
	assert.Contains(t, out, "heart")
	assert.NotContains(t, out, "**")
	assert.False(t, strings.HasPrefix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestMarkdownRender_ReusesRendererPerWidth(t *testing.T) {
	md := NewMarkdown(DarkStyle)
	md.Render("one", 30)
	first := md.r
	md.Render("two", 30)
	assert.Same(t, first, md.r)
	md.Render("three", 50)
	assert.NotSame(t, first, md.r)
	assert.Equal(t, 50, md.width)
}

func TestMarkdownRender_UnknownStyleFallsBack(t *testing.T) {
	md := NewMarkdown("no-such-style")
	assert.Equal(t, "plain *text*", md.Render("plain *text*", 40))
}
