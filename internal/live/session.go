// Package live runs the page's scroll, click and visibility handlers for one
// page view. The browser forwards events over a websocket; the session answers
// with the operations to apply.
package live

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/dom"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// Event types sent by the client.
const (
	EventLayout    = "layout"
	EventScroll    = "scroll"
	EventClick     = "click"
	EventIntersect = "intersect"
)

// Event is an incoming client message. Which fields are set depends on Type.
type Event struct {
	Type     string         `json:"type"`
	Sections []nav.Section  `json:"sections,omitempty"`
	Links    []nav.Link     `json:"links,omitempty"`
	Offset   float64        `json:"offset,omitempty"`
	Href     string         `json:"href,omitempty"`
	Entries  []reveal.Entry `json:"entries,omitempty"`
}

// Reply is an outgoing message.
type Reply struct {
	Type    string   `json:"type"` // "ops" or "error"
	Session string   `json:"session"`
	Ops     []dom.Op `json:"ops,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Session is the state of one page view. It is not safe for concurrent use;
// a connection feeds it one event at a time.
type Session struct {
	ID       string
	nav      *nav.Controller
	animator *reveal.Animator
}

func NewSession() *Session {
	return &Session{
		ID:       uuid.NewString(),
		nav:      nav.NewController(nil, nil),
		animator: reveal.New(),
	}
}

// Handle processes one raw message.
func (s *Session) Handle(msg []byte) Reply {
	var ev Event
	if err := json.Unmarshal(msg, &ev); err != nil {
		return s.fail("invalid message format")
	}
	ops, err := s.Dispatch(ev)
	if err != nil {
		return s.fail(err.Error())
	}
	return Reply{Type: "ops", Session: s.ID, Ops: ops}
}

// Dispatch runs the handler for ev.
func (s *Session) Dispatch(ev Event) ([]dom.Op, error) {
	switch ev.Type {
	case EventLayout:
		s.nav.SetLayout(ev.Sections, ev.Links)
		return []dom.Op{}, nil
	case EventScroll:
		return s.nav.OnScroll(ev.Offset), nil
	case EventClick:
		op, ok := s.nav.OnClick(ev.Href)
		if !ok {
			return nil, fmt.Errorf("no section for %q", ev.Href)
		}
		return []dom.Op{op}, nil
	case EventIntersect:
		return s.animator.OnIntersect(ev.Entries), nil
	default:
		return nil, fmt.Errorf("unknown message type: %s", ev.Type)
	}
}

func (s *Session) fail(message string) Reply {
	return Reply{Type: "error", Session: s.ID, Error: message}
}
