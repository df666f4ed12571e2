// Package nav highlights the sidebar link of the section in view and turns
// link clicks into smooth scrolls.
package nav

import (
	"strings"

	"github.com/Zachkp/portfolio/internal/dom"
)

// ActiveClass marks the highlighted link.
const ActiveClass = "active"

// LinkSelector matches the sidebar navigation links.
const LinkSelector = ".sidebar-nav a"

// Section is a page section's id and vertical geometry, in CSS pixels.
type Section struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Link is a sidebar link pointing at a section by fragment.
type Link struct {
	Href string `json:"href"`
}

// ActiveSection returns the id of the section considered in view at offset.
// A section qualifies once offset reaches its top minus a third of its
// height; the last qualifying section in document order wins. It returns ""
// when no section qualifies.
func ActiveSection(offset float64, sections []Section) string {
	current := ""
	for _, s := range sections {
		if offset >= s.Top-s.Height/3 {
			current = s.ID
		}
	}
	return current
}

// Matches reports whether a link should be active for the current section:
// its fragment is non-empty and contained in the section id. With no section
// in view every link matches, since the empty id is contained in any href.
func Matches(href, current string) bool {
	if current == "" {
		return true
	}
	fragment := Fragment(href)
	return fragment != "" && strings.Contains(current, fragment)
}

// Fragment returns the part of href after '#'.
func Fragment(href string) string {
	_, fragment, _ := strings.Cut(href, "#")
	return fragment
}

var selectorEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// linkSelector selects one sidebar link by its href.
func linkSelector(href string) string {
	return LinkSelector + `[href="` + selectorEscaper.Replace(href) + `"]`
}

// Controller holds the page layout the scroll and click handlers read.
// The active section itself is not stored; every scroll recomputes it.
type Controller struct {
	sections []Section
	links    []Link
}

func NewController(sections []Section, links []Link) *Controller {
	return &Controller{sections: sections, links: links}
}

// SetLayout replaces the section geometry, e.g. after a resize.
func (c *Controller) SetLayout(sections []Section, links []Link) {
	c.sections = sections
	c.links = links
}

// OnScroll clears the active state from every link and sets it on the links
// matching the section in view. Firing it twice at the same offset produces
// the same operations.
func (c *Controller) OnScroll(offset float64) []dom.Op {
	current := ActiveSection(offset, c.sections)

	ops := []dom.Op{dom.RemoveClassOp(LinkSelector, ActiveClass)}
	for _, l := range c.links {
		if Matches(l.Href, current) {
			ops = append(ops, dom.AddClassOp(linkSelector(l.Href), ActiveClass))
		}
	}
	return ops
}

// OnClick replaces the jump to the anchor with a smooth scroll to the
// section's top. It reports false when href names no known section.
func (c *Controller) OnClick(href string) (dom.Op, bool) {
	id := Fragment(href)
	for _, s := range c.sections {
		if s.ID == id {
			return dom.ScrollOp(s.Top, "smooth"), true
		}
	}
	return dom.Op{}, false
}
