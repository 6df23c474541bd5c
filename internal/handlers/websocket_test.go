package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"loadscout"
	"loadscout/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 2 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=40s", 2 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=40000", 2 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 2 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 2 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func dialWS(t *testing.T, srvURL, rawQuery string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srvURL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_EventStream_InitialBacklog(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	log := &mockEventLog{resp: []loadscout.PipelineEvent{
		{EventID: "e1", Type: "JOB_CREATED", OccurredAt: now},
		{EventID: "e2", Type: "ESTIMATED", OccurredAt: now.Add(time.Second)},
	}}
	s := &service.Service{EventLog: log}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv.URL, "interval_ms=20")
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "events" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var events []loadscout.PipelineEvent
	if err := json.Unmarshal(env.Data, &events); err != nil {
		t.Fatalf("unmarshal events: %v", err)
	}
	if len(events) != 2 || events[0].EventID != "e1" || events[1].Type != "ESTIMATED" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestWebSocket_InitialListError_Closes(t *testing.T) {
	log := &mockEventLog{err: errors.New("boom")}
	s := &service.Service{EventLog: log}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv.URL, "")
	defer conn.Close()

	// The server closes right after the initial List fails.
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func TestSendEventsSince_Delta(t *testing.T) {
	// The second poll must ask for events strictly after the last delivered one.
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	log := &mockEventLog{resp: []loadscout.PipelineEvent{
		{EventID: "e1", Type: "JOB_CREATED", OccurredAt: now},
	}}
	s := &service.Service{EventLog: log}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv.URL, "interval_ms=20")
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("read initial: %v", err)
	}

	// Give the ticker a couple of polls, then check the recorded filter.
	time.Sleep(100 * time.Millisecond)
	f := log.lastFilter()
	if f.From.IsZero() {
		t.Fatalf("expected ticker polls to carry a lower bound")
	}
	if !f.From.After(now) {
		t.Fatalf("lower bound %v should be after last delivered %v", f.From, now)
	}
}
