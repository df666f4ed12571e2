// Package render maps portfolio records to page operations. Every function is
// pure: it reads a record and returns the operations that put it on the page.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/dom"
	"github.com/Zachkp/portfolio/internal/portfolio"
)

// Container ids the renderers write into.
const (
	ProfileName        = "profile-name"
	ProfileDescription = "profile-description"
	ProfileEmail       = "profile-email"
	ProfilePhone       = "profile-phone"
	ProfilePic         = "profile-pic"
	SkillsGrid         = "skills-grid"
	SocialLinks        = "social-links"
	CVDownload         = "cv-download"
	EducationList      = "education-list"
	ExperienceList     = "experience-list"
	ProjectsGrid       = "projects-grid"
	CurrentYear        = "current-year"
)

// Page returns the operations for a full page load, in the fixed order
// profile, education, experience, projects, footer year.
func Page(data *portfolio.Data, now time.Time) []dom.Op {
	var ops []dom.Op
	ops = append(ops, Profile(data.Profile)...)
	ops = append(ops, Education(data.Education)...)
	ops = append(ops, Experience(data.Experience)...)
	ops = append(ops, Projects(data.Projects)...)
	ops = append(ops, Year(now))
	return ops
}

// Year sets the footer year.
func Year(now time.Time) dom.Op {
	return dom.TextOp(dom.ID(CurrentYear), strconv.Itoa(now.Year()))
}

func Profile(p portfolio.Profile) []dom.Op {
	ops := []dom.Op{
		dom.TextOp(dom.ID(ProfileName), p.Name),
		dom.TextOp(dom.ID(ProfileDescription), p.Description),
		dom.TextOp(dom.ID(ProfileEmail), p.Email),
		dom.TextOp(dom.ID(ProfilePhone), p.Phone),
		dom.AttrOp(dom.ID(ProfilePic), "src", p.ProfileImage),
		dom.AttrOp(dom.ID(ProfilePic), "alt", p.Name+"'s profile picture"),
	}

	for _, social := range p.SocialMedia {
		ops = append(ops, dom.AppendOp(dom.ID(SocialLinks), SocialLink(social)))
	}

	if p.Skills != nil {
		for _, skill := range p.Skills {
			ops = append(ops, dom.AppendOp(dom.ID(SkillsGrid), SkillItem(skill)))
		}
	}

	if p.CV != nil {
		cv := dom.ID(CVDownload)
		ops = append(ops,
			dom.AttrOp(cv, "href", p.CV.File),
			dom.AttrOp(cv+" i", "class", p.CV.Icon),
			dom.AttrOp(cv, "download", ""),
			// the download button sits with the social icons
			dom.MoveOp(cv, dom.ID(SocialLinks)),
		)
	}
	return ops
}

// SocialLink opens in a new browsing context without referrer or opener.
func SocialLink(s portfolio.SocialLink) dom.Node {
	return dom.El("a", dom.Attrs{
		"href":   s.URL,
		"target": "_blank",
		"rel":    "noopener noreferrer",
	}, icon("fab fa-"+strings.ToLower(s.Platform)))
}

func SkillItem(s portfolio.Skill) dom.Node {
	body := []dom.Node{
		dom.El("div", dom.Attrs{"class": "skill-name"}, dom.Text(s.Name)),
	}
	if s.Level != nil && *s.Level != 0 {
		body = append(body, dom.El("div", dom.Attrs{"class": "skill-level"},
			dom.El("div", dom.Attrs{
				"class": "skill-level-bar",
				"style": fmt.Sprintf("width: %d%%", *s.Level),
			}),
		))
	}
	return dom.El("div", dom.Attrs{"class": "skill-item"},
		dom.El("div", dom.Attrs{"class": "skill-icon"}, icon(s.Icon)),
		dom.El("div", nil, body...),
	)
}

func Education(list []portfolio.Education) []dom.Op {
	ops := make([]dom.Op, 0, len(list))
	for _, edu := range list {
		ops = append(ops, dom.AppendOp(dom.ID(EducationList), timelineItem(timelineEntry{
			itemClass:   "education-item",
			headerClass: "edu-header",
			logoClass:   "edu-logo",
			subClass:    "degree",
			yearClass:   "year",
			title:       edu.University,
			subtitle:    edu.Major,
			year:        string(edu.Year),
			description: edu.Description,
			logo:        edu.Logo,
		})))
	}
	return ops
}

func Experience(list []portfolio.Experience) []dom.Op {
	ops := make([]dom.Op, 0, len(list))
	for _, exp := range list {
		ops = append(ops, dom.AppendOp(dom.ID(ExperienceList), timelineItem(timelineEntry{
			itemClass:   "experience-item",
			headerClass: "exp-header",
			logoClass:   "exp-logo",
			subClass:    "position",
			yearClass:   "duration",
			title:       exp.Company,
			subtitle:    exp.Position,
			year:        string(exp.Year),
			description: exp.Description,
			logo:        exp.Logo,
		})))
	}
	return ops
}

// timelineEntry is the shared shape of education and experience items; only
// the class names differ.
type timelineEntry struct {
	itemClass, headerClass, logoClass, subClass, yearClass string

	title, subtitle, year, description, logo string
}

func timelineItem(e timelineEntry) dom.Node {
	var header []dom.Node
	if e.logo != "" {
		header = append(header, dom.El("img", dom.Attrs{
			"src":   e.logo,
			"alt":   e.title + " logo",
			"class": e.logoClass,
		}))
	}
	header = append(header, dom.El("div", nil,
		dom.El("h3", nil, dom.Text(e.title)),
		dom.El("p", dom.Attrs{"class": e.subClass}, dom.Text(e.subtitle)),
	))

	return dom.El("div", dom.Attrs{"class": e.itemClass},
		dom.El("div", dom.Attrs{"class": e.headerClass}, header...),
		dom.El("p", dom.Attrs{"class": e.yearClass}, dom.Text(e.year)),
		dom.El("p", nil, dom.Text(e.description)),
	)
}

func Projects(list []portfolio.Project) []dom.Op {
	ops := make([]dom.Op, 0, len(list))
	for _, project := range list {
		ops = append(ops, dom.AppendOp(dom.ID(ProjectsGrid), ProjectCard(project)))
	}
	return ops
}

func ProjectCard(p portfolio.Project) dom.Node {
	meta := []dom.Node{metaSpan("fas fa-calendar-alt", string(p.Year))}
	if p.Fund != "" {
		meta = append(meta, metaSpan("fas fa-money-bill-wave", p.Fund))
	}
	if p.Partner != "" {
		meta = append(meta, metaSpan("fas fa-users", p.Partner))
	}
	if p.Role != "" {
		meta = append(meta, metaSpan("fas fa-user-tie", p.Role))
	}

	info := []dom.Node{
		dom.El("h3", nil, dom.Text(p.Title)),
		dom.El("div", dom.Attrs{"class": "project-meta"}, meta...),
		dom.El("p", nil, dom.Text(p.Description)),
	}
	if p.Link != "" {
		info = append(info, dom.El("a", dom.Attrs{
			"href":   p.Link,
			"class":  "project-link",
			"target": "_blank",
		}, dom.Text("View Project "), icon("fas fa-external-link-alt")))
	}

	return dom.El("div", dom.Attrs{"class": "project-card"},
		dom.El("div", dom.Attrs{"class": "project-image"},
			dom.El("img", dom.Attrs{"src": p.Image, "alt": p.Title}),
		),
		dom.El("div", dom.Attrs{"class": "project-info"}, info...),
	)
}

func metaSpan(iconClass, text string) dom.Node {
	return dom.El("span", nil, icon(iconClass), dom.Text(" "+text))
}

func icon(class string) dom.Node {
	return dom.El("i", dom.Attrs{"class": class})
}
