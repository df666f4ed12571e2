// Package site runs one page load: it parses the page shell, loads the data
// documents and, when all of them arrived, renders them into the shell.
package site

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Zachkp/portfolio/internal/dom"
	"github.com/Zachkp/portfolio/internal/loader"
	"github.com/Zachkp/portfolio/internal/render"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// SectionSelector matches the page sections that navigate and reveal.
const SectionSelector = ".section"

// Recorder persists load results. *store.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, r loader.Result) error
}

// Outcome is what a page load produced. HTML is always set; when the load
// failed it is the shell with empty containers.
type Outcome struct {
	HTML   string
	Result loader.Result
}

// Site renders the portfolio page.
type Site struct {
	shell    []byte
	loader   *loader.Loader
	recorder Recorder
	now      func() time.Time
}

// Option configures a Site.
type Option func(*Site)

// WithRecorder records every load result.
func WithRecorder(r Recorder) Option {
	return func(s *Site) { s.recorder = r }
}

// WithClock overrides the clock used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		s.now = now
		s.loader.Now = now
	}
}

// New builds a site from a page shell and a data source.
func New(shell []byte, src loader.Source, opts ...Option) *Site {
	s := &Site{
		shell:  shell,
		loader: loader.New(src),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromFile reads the shell from disk.
func NewFromFile(path string, src loader.Source, opts ...Option) (*Site, error) {
	shell, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page shell %s: %w", path, err)
	}
	return New(shell, src, opts...), nil
}

// Start performs one page load. A data load failure is not an error: it is
// reported in Outcome.Result and the page is returned unrendered. Errors are
// reserved for a broken shell.
func (s *Site) Start(ctx context.Context) (*Outcome, error) {
	doc, err := dom.Parse(bytes.NewReader(s.shell))
	if err != nil {
		return nil, err
	}

	ids := SectionIDs(doc)
	if err := doc.Apply(reveal.New().Prepare(ids)...); err != nil {
		return nil, err
	}

	data, res := s.loader.Load(ctx)
	if res.OK {
		if err := doc.Apply(render.Page(data, s.now())...); err != nil {
			return nil, fmt.Errorf("page shell does not match renderers: %w", err)
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, res); err != nil {
			log.Printf("site: %v", err)
		}
	}

	html, err := doc.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to serialise page: %w", err)
	}
	return &Outcome{HTML: html, Result: res}, nil
}

// SectionIDs lists the ids of the page sections in document order.
func SectionIDs(doc *dom.Document) []string {
	var ids []string
	sel := doc.Find(SectionSelector)
	for i := range sel.Nodes {
		if id, ok := sel.Eq(i).Attr("id"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
