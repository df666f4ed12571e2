package reveal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/dom"
)

func TestPrepare(t *testing.T) {
	doc, err := dom.Parse(strings.NewReader(`<section id="about" class="section" style="color: red"></section><section id="projects" class="section"></section>`))
	require.NoError(t, err)

	require.NoError(t, doc.Apply(New().Prepare([]string{"about", "projects"})...))

	assert.Equal(t, "color: red; opacity: 0; transform: translateY(20px); transition: all 0.6s ease-out;",
		doc.Find("#about").AttrOr("style", ""))
	assert.Equal(t, "opacity: 0; transform: translateY(20px); transition: all 0.6s ease-out;",
		doc.Find("#projects").AttrOr("style", ""))
}

func TestOnIntersect_Threshold(t *testing.T) {
	a := New()

	ops := a.OnIntersect([]Entry{
		{ID: "about", IsIntersecting: true, Ratio: 0.05},
		{ID: "projects", IsIntersecting: false, Ratio: 0},
	})
	assert.Empty(t, ops)
	assert.False(t, a.Revealed("about"))

	ops = a.OnIntersect([]Entry{{ID: "about", IsIntersecting: true, Ratio: 0.1}})
	assert.Equal(t, []dom.Op{
		dom.AddClassOp("#about", AnimateClass),
		dom.StyleOp("#about", "opacity", "1"),
		dom.StyleOp("#about", "transform", "none"),
	}, ops)
	assert.True(t, a.Revealed("about"))
}

func TestOnIntersect_Monotonic(t *testing.T) {
	a := New()
	doc, err := dom.Parse(strings.NewReader(`<section id="about" class="section"></section>`))
	require.NoError(t, err)

	require.NoError(t, doc.Apply(a.OnIntersect([]Entry{{ID: "about", IsIntersecting: true, Ratio: 0.5}})...))
	require.True(t, doc.Find("#about").HasClass(AnimateClass))

	sequence := [][]Entry{
		{{ID: "about", IsIntersecting: false, Ratio: 0}},
		{{ID: "about", IsIntersecting: true, Ratio: 1}},
		{{ID: "about", IsIntersecting: false, Ratio: 0}},
	}
	for _, entries := range sequence {
		ops := a.OnIntersect(entries)
		assert.Empty(t, ops, "a revealed section is never touched again")
		require.NoError(t, doc.Apply(ops...))
		assert.True(t, doc.Find("#about").HasClass(AnimateClass))
		assert.True(t, a.Revealed("about"))
	}
}

func TestOnIntersect_IndependentSections(t *testing.T) {
	a := New()

	a.OnIntersect([]Entry{{ID: "about", IsIntersecting: true, Ratio: 1}})
	ops := a.OnIntersect([]Entry{
		{ID: "about", IsIntersecting: true, Ratio: 1},
		{ID: "education", IsIntersecting: true, Ratio: 0.3},
	})

	assert.Equal(t, Show("education"), ops)
}

func TestOnIntersect_UndoesPrepare(t *testing.T) {
	a := New()
	doc, err := dom.Parse(strings.NewReader(`<section id="about" class="section"></section>`))
	require.NoError(t, err)

	require.NoError(t, doc.Apply(a.Prepare([]string{"about"})...))
	require.NoError(t, doc.Apply(a.OnIntersect([]Entry{{ID: "about", IsIntersecting: true, Ratio: 0.2}})...))

	assert.True(t, doc.Find("#about").HasClass(AnimateClass))
	assert.Equal(t, "opacity: 1; transform: none; transition: all 0.6s ease-out;", doc.Find("#about").AttrOr("style", ""))
}
