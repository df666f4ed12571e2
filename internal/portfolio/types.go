// Package portfolio holds the records described by the four data documents.
package portfolio

import (
	"bytes"
	"encoding/json"
)

// Document names. Each is served from data/<name>.json.
const (
	DocProfile    = "profile"
	DocEducation  = "education"
	DocExperience = "experience"
	DocProjects   = "projects"
)

// Documents lists the data documents in the order they are rendered.
var Documents = []string{DocProfile, DocEducation, DocExperience, DocProjects}

// Path returns the relative path of a data document.
func Path(name string) string {
	return "data/" + name + ".json"
}

// SocialLink is one entry of the profile's social media list.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Skill is a single skill. Level is a percentage (0-100) and is optional.
type Skill struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Level *int   `json:"level,omitempty"`
}

// CV describes the downloadable resume.
type CV struct {
	File string `json:"file"`
	Icon string `json:"icon"`
}

type Profile struct {
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	ProfileImage string       `json:"profileImage"`
	SocialMedia  []SocialLink `json:"socialMedia"`
	Skills       []Skill      `json:"skills,omitempty"`
	CV           *CV          `json:"cv,omitempty"`
}

type Education struct {
	University  string `json:"university"`
	Major       string `json:"major"`
	Year        Year   `json:"year"`
	Description string `json:"description"`
	Logo        string `json:"logo,omitempty"`
}

type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Year        Year   `json:"year"`
	Description string `json:"description"`
	Logo        string `json:"logo,omitempty"`
}

// Project is one project card. Fund, Partner, Role and Link are optional.
type Project struct {
	Title       string `json:"title"`
	Image       string `json:"image"`
	Year        Year   `json:"year"`
	Description string `json:"description"`
	Fund        string `json:"fund,omitempty"`
	Partner     string `json:"partner,omitempty"`
	Role        string `json:"role,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Data is the joined result of one page load.
type Data struct {
	Profile    Profile
	Education  []Education
	Experience []Experience
	Projects   []Project
}

// Year is a year or a range of years. Documents write it either as a string
// ("2019 - 2023") or as a bare number (2021).
type Year string

func (y *Year) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] != '"' && !bytes.Equal(b, []byte("null")) {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*y = Year(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*y = Year(s)
	return nil
}
