// Package botapitest provides an in-process bot platform for tests.
package botapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// Server serves canned JSON per endpoint path. Unknown paths return 404.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]response
	calls     map[string]int
	bodies    map[string][]json.RawMessage
	delays    map[string]time.Duration
}

type response struct {
	status int
	body   any
}

// NewServer starts a platform that knows one bot: id "b1", alias "acme",
// every tab enabled, a small brand and a one-line answer.
func NewServer() *Server {
	s := &Server{
		responses: map[string]response{},
		calls:     map[string]int{},
		bodies:    map[string][]json.RawMessage{},
		delays:    map[string]time.Duration{},
	}
	s.Handle("/bot-settings", http.StatusOK, map[string]any{
		"ok": true,
		"bot": map[string]any{
			"id": "b1", "alias": "acme",
			"show_browse_demos": true, "show_browse_docs": true,
			"show_schedule_meeting": true, "show_price_estimate": true,
		},
		"session_id": "s1",
		"visitor_id": "v1",
	})
	s.Handle("/brand", http.StatusOK, map[string]any{
		"ok":       true,
		"css_vars": map[string]any{"--banner-bg": "#111111"},
		"assets":   map[string]any{"logo_url": "https://cdn.example/logo.png"},
	})
	s.Handle("/demo-hal", http.StatusOK, map[string]any{
		"response_text": "Here you go.",
		"buttons": []map[string]any{
			{"button_title": "Product tour", "button_value": "https://v.example/tour", "button_action": "demo"},
			{"button_title": "Continue", "button_action": "continue"},
		},
	})
	s.Handle("/render-video-iframe", http.StatusOK, map[string]any{"video_url": "https://player.example/embed/1"})
	s.Handle("/browse-demos", http.StatusOK, map[string]any{"ok": true, "items": []map[string]any{
		{"demo_id": "d1", "title": "Tour", "video_url": "https://v.example/1"},
	}})
	s.Handle("/pricing/questions", http.StatusOK, map[string]any{"ok": true, "questions": []map[string]any{
		{"q_key": "size", "type": "choice", "prompt": "Team size?", "options": []string{"small", "large"}, "required": true},
		{"q_key": "region", "type": "choice", "prompt": "Region?", "options": []string{"us", "eu"}, "required": true},
	}})
	s.Handle("/pricing/estimate", http.StatusOK, map[string]any{"ok": true, "total_min": 100, "total_max": 200, "currency_code": "USD"})
	s.Handle("/agent", http.StatusOK, map[string]any{"ok": true, "agent": map[string]any{
		"schedule_header": "Book a call", "calendar_link_type": "calendly", "calendar_link": "https://calendly.com/acme/intro",
	}})
	s.Handle("/calendly/js-event", http.StatusOK, map[string]any{"ok": true})
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle replaces the response for path.
func (s *Server) Handle(path string, status int, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = response{status: status, body: body}
}

// Delay makes path wait d before answering.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[path] = d
}

// Calls reports how many requests path received.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// Bodies returns the JSON bodies posted to path, oldest first.
func (s *Server) Bodies(path string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]json.RawMessage(nil), s.bodies[path]...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	path := "/" + strings.Trim(r.URL.Path, "/")

	s.mu.Lock()
	s.calls[path]++
	if r.Method == http.MethodPost {
		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
			s.bodies[path] = append(s.bodies[path], raw)
		}
	}
	resp, ok := s.responses[path]
	delay := s.delays[path]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_ = json.NewEncoder(w).Encode(resp.body)
}
