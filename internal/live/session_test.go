package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/dom"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/reveal"
)

const layoutMsg = `{
	"type": "layout",
	"sections": [
		{"id": "about", "top": 0, "height": 600},
		{"id": "projects", "top": 600, "height": 900}
	],
	"links": [{"href": "#about"}, {"href": "#projects"}]
}`

func TestSession_ScrollAfterLayout(t *testing.T) {
	s := NewSession()

	reply := s.Handle([]byte(layoutMsg))
	require.Equal(t, "ops", reply.Type)
	assert.Empty(t, reply.Ops)

	reply = s.Handle([]byte(`{"type": "scroll", "offset": 400}`))
	require.Equal(t, "ops", reply.Type)
	assert.Equal(t, []dom.Op{
		dom.RemoveClassOp(nav.LinkSelector, nav.ActiveClass),
		dom.AddClassOp(`.sidebar-nav a[href="#projects"]`, nav.ActiveClass),
	}, reply.Ops)
	assert.Equal(t, s.ID, reply.Session)
}

func TestSession_ScrollBeforeLayoutOnlyClears(t *testing.T) {
	s := NewSession()

	reply := s.Handle([]byte(`{"type": "scroll", "offset": 100}`))
	require.Equal(t, "ops", reply.Type)
	assert.Equal(t, []dom.Op{dom.RemoveClassOp(nav.LinkSelector, nav.ActiveClass)}, reply.Ops)
}

func TestSession_Click(t *testing.T) {
	s := NewSession()
	s.Handle([]byte(layoutMsg))

	reply := s.Handle([]byte(`{"type": "click", "href": "#projects"}`))
	require.Equal(t, "ops", reply.Type)
	require.Len(t, reply.Ops, 1)
	assert.Equal(t, dom.ScrollOp(600, "smooth"), reply.Ops[0])

	reply = s.Handle([]byte(`{"type": "click", "href": "#nowhere"}`))
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Error, "#nowhere")
}

func TestSession_IntersectLatches(t *testing.T) {
	s := NewSession()

	msg := `{"type": "intersect", "entries": [{"id": "about", "isIntersecting": true, "ratio": 0.4}]}`
	reply := s.Handle([]byte(msg))
	assert.Equal(t, reveal.Show("about"), reply.Ops)
	assert.Equal(t, dom.AddClassOp("#about", reveal.AnimateClass), reply.Ops[0])

	reply = s.Handle([]byte(msg))
	assert.Equal(t, "ops", reply.Type)
	assert.Empty(t, reply.Ops)
}

func TestSession_BadMessages(t *testing.T) {
	s := NewSession()

	reply := s.Handle([]byte(`not json`))
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, "invalid message format", reply.Error)

	reply = s.Handle([]byte(`{"type": "resize"}`))
	assert.Equal(t, "error", reply.Type)
	assert.Contains(t, reply.Error, "unknown message type")
}

func TestServe_WebSocket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(Serve))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	send := func(msg string) Reply {
		t.Helper()
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
		_, raw, err := conn.ReadMessage()
		require.NoError(t, err)
		var reply Reply
		require.NoError(t, json.Unmarshal(raw, &reply))
		return reply
	}

	first := send(layoutMsg)
	assert.Equal(t, "ops", first.Type)
	assert.NotEmpty(t, first.Session)

	// same offset twice yields the same ops
	a := send(`{"type": "scroll", "offset": 0}`)
	b := send(`{"type": "scroll", "offset": 0}`)
	assert.Equal(t, a.Ops, b.Ops)
	require.Len(t, a.Ops, 2)
	assert.Equal(t, `.sidebar-nav a[href="#about"]`, a.Ops[1].Target)

	errReply := send(`{}`)
	assert.Equal(t, "error", errReply.Type)
	assert.Equal(t, first.Session, errReply.Session, "errors keep the session alive")
}

func TestServe_RejectsCrossOrigin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(Serve))
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {"http://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Origin": {srv.URL}})
	require.NoError(t, err)
	conn.Close()
}

func TestSameOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin", "", true},
		{"same host", "http://portfolio.test:8080", true},
		{"host case differs", "https://PORTFOLIO.test:8080", true},
		{"other host", "http://evil.example", false},
		{"other port", "http://portfolio.test:9090", false},
		{"malformed", "://bad", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://portfolio.test:8080/live", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, sameOrigin(r))
		})
	}
}
