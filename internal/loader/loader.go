package loader

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Zachkp/portfolio/internal/portfolio"
)

// Result is the outcome of one page load.
type Result struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	OK        bool          `json:"ok"`
	Reason    Reason        `json:"reason"`
	Document  string        `json:"document,omitempty"`
	Message   string        `json:"message,omitempty"`
	Year      int           `json:"year,omitempty"`
	Err       error         `json:"-"`
}

// Loader joins the four data documents.
type Loader struct {
	Source Source
	Now    func() time.Time
}

// New creates a loader reading from src.
func New(src Source) *Loader {
	return &Loader{Source: src, Now: time.Now}
}

// Load fetches every document concurrently and waits for all of them. Data is
// nil unless every fetch and parse succeeded. There is no retry and no
// timeout beyond what ctx carries.
func (l *Loader) Load(ctx context.Context) (*portfolio.Data, Result) {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	res := Result{ID: uuid.NewString(), StartedAt: now()}

	var data portfolio.Data
	g, gCtx := errgroup.WithContext(ctx)

	// each goroutine writes a distinct field of data
	g.Go(func() error { return l.fetch(gCtx, portfolio.DocProfile, &data.Profile) })
	g.Go(func() error { return l.fetch(gCtx, portfolio.DocEducation, &data.Education) })
	g.Go(func() error { return l.fetch(gCtx, portfolio.DocExperience, &data.Experience) })
	g.Go(func() error { return l.fetch(gCtx, portfolio.DocProjects, &data.Projects) })

	err := g.Wait()
	res.Duration = now().Sub(res.StartedAt)
	if err != nil {
		res.Reason = ReasonNetwork
		res.Err = err
		res.Message = err.Error()
		var loadErr *Error
		if errors.As(err, &loadErr) {
			res.Reason = loadErr.Reason
			res.Document = loadErr.Document
		}
		log.Printf("loader: error loading data: %v", err)
		return nil, res
	}

	res.OK = true
	res.Reason = ReasonOK
	res.Year = now().Year()
	return &data, res
}

func (l *Loader) fetch(ctx context.Context, name string, into any) error {
	body, err := l.Source.Fetch(ctx, name)
	if err != nil {
		var loadErr *Error
		if errors.As(err, &loadErr) {
			return err
		}
		return &Error{Document: name, Reason: ReasonNetwork, Message: "fetch failed", Cause: err}
	}
	if err := json.Unmarshal(body, into); err != nil {
		return &Error{Document: name, Reason: ReasonParse, Message: "invalid JSON", Cause: err}
	}
	return nil
}
