package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lyricsync/internal/api"
	"lyricsync/internal/logging"
	"lyricsync/internal/session"
	"lyricsync/internal/testsupport"
	"lyricsync/internal/transport"
)

type fixture struct {
	clock   *transport.Clock
	now     time.Time
	handler http.Handler
}

func newFixture(t *testing.T, opts ...testsupport.ConfigOption) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	f := &fixture{now: time.Unix(1_700_000_000, 0)}
	f.clock = transport.NewClock(transport.WithNow(func() time.Time { return f.now }))
	sess := session.New(f.clock, session.OptionsFromConfig(cfg, logging.NewNop()))
	srv := api.NewServer(sess, api.Options{Bind: cfg.Paths.APIBind, Token: cfg.Paths.APIToken})
	f.handler = srv.Handler()
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestCaptureAndList(t *testing.T) {
	f := newFixture(t)
	f.clock.Seek(4.26)

	w := f.do(t, http.MethodPost, "/api/capture", `{"text":"hello"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[api.CaptureResponse](t, w)
	if resp.Entry.Time != 4.3 || resp.Entry.Text != "hello" || resp.Delta != nil {
		t.Fatalf("unexpected capture %+v", resp)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected generated request id")
	}

	f.clock.Seek(1)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"earlier"}`)

	entries := decode[api.EntriesResponse](t, f.do(t, http.MethodGet, "/api/entries", ""))
	if len(entries.Entries) != 2 || entries.Entries[0].Text != "earlier" || entries.Entries[1].Index != 1 {
		t.Fatalf("unexpected entries %+v", entries)
	}

	status := decode[api.StatusResponse](t, f.do(t, http.MethodGet, "/api/status", ""))
	if status.Entries != 2 || status.LastCapture == nil || *status.LastCapture != 1 || status.SessionID == "" {
		t.Fatalf("unexpected status %+v", status)
	}
}

func TestErrorKindsMapToStatusCodes(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		method, path, body string
		code               int
		kind               string
	}{
		{http.MethodPost, "/api/capture", `{"text":"  "}`, http.StatusConflict, "empty_input"},
		{http.MethodPost, "/api/capture", `{"text":`, http.StatusBadRequest, "malformed_json"},
		{http.MethodPost, "/api/undo", "", http.StatusConflict, "nothing_to_undo"},
		{http.MethodPost, "/api/edit/nudge", `{"delta":0.1}`, http.StatusConflict, "no_active_edit"},
		{http.MethodGet, "/api/export/lrc", "", http.StatusConflict, "empty_export_set"},
		{http.MethodGet, "/api/export/vtt", "", http.StatusBadRequest, "unsupported_format"},
		{http.MethodPost, "/api/entries/3/edit", "", http.StatusNotFound, "index_out_of_range"},
		{http.MethodPost, "/api/clear", "", http.StatusPreconditionFailed, "not_confirmed"},
	}
	for _, tc := range cases {
		w := f.do(t, tc.method, tc.path, tc.body)
		if w.Code != tc.code {
			t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.code, w.Code, w.Body.String())
		}
		resp := decode[api.ErrorResponse](t, w)
		if resp.Kind != tc.kind {
			t.Fatalf("%s %s: expected kind %q, got %+v", tc.method, tc.path, tc.kind, resp)
		}
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"x"}`)

	if w := f.do(t, http.MethodDelete, "/api/entries/0", ""); w.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412, got %d", w.Code)
	}
	w := f.do(t, http.MethodDelete, "/api/entries/0?confirm=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decode[api.RemovedResponse](t, w)
	if resp.Removed != 1 || resp.Entry == nil || resp.Entry.Text != "x" {
		t.Fatalf("unexpected delete response %+v", resp)
	}
	if w := f.do(t, http.MethodDelete, "/api/entries/abc?confirm=true", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric index, got %d", w.Code)
	}
}

func TestEditNudgeFlow(t *testing.T) {
	f := newFixture(t)
	f.clock.Seek(2)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"a"}`)

	if w := f.do(t, http.MethodPost, "/api/entries/0/edit", ""); w.Code != http.StatusOK {
		t.Fatalf("edit: %d %s", w.Code, w.Body.String())
	}
	w := f.do(t, http.MethodPost, "/api/edit/nudge", `{"steps":-3}`)
	if w.Code != http.StatusOK {
		t.Fatalf("nudge: %d %s", w.Code, w.Body.String())
	}
	nudged := decode[api.NudgeResponse](t, w)
	if nudged.Entry.Time != 1.7 || nudged.Previous != 2 {
		t.Fatalf("unexpected nudge %+v", nudged)
	}

	w = f.do(t, http.MethodPost, "/api/capture", `{"text":"a fixed"}`)
	resp := decode[api.CaptureResponse](t, w)
	if !resp.Edited || resp.Entry.Text != "a fixed" || resp.Entry.Time != 1.7 {
		t.Fatalf("unexpected edit commit %+v", resp)
	}

	cancel := decode[api.CancelResponse](t, f.do(t, http.MethodPost, "/api/edit/cancel", ""))
	if cancel.Cancelled {
		t.Fatal("no edit should be open")
	}
	if w := f.do(t, http.MethodPost, "/api/edit/nudge", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty nudge, got %d", w.Code)
	}
}

func TestPastePromoteDiscard(t *testing.T) {
	f := newFixture(t)

	staged := decode[api.StagedResponse](t, f.do(t, http.MethodPost, "/api/paste", `{"text":"one\ntwo\nthree"}`))
	if !staged.Staged || len(staged.Lines) != 3 {
		t.Fatalf("unexpected paste response %+v", staged)
	}
	single := decode[api.StagedResponse](t, f.do(t, http.MethodPost, "/api/paste", `{"text":"solo"}`))
	if single.Staged || len(single.Lines) != 0 {
		t.Fatalf("single line must not stage: %+v", single)
	}

	f.clock.Seek(9)
	w := f.do(t, http.MethodPost, "/api/staged/0/promote", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("promote: %d %s", w.Code, w.Body.String())
	}
	if resp := decode[api.CaptureResponse](t, w); resp.Entry.Text != "one" || resp.Entry.Time != 9 {
		t.Fatalf("unexpected promotion %+v", resp)
	}
	if w := f.do(t, http.MethodDelete, "/api/staged/1", ""); w.Code != http.StatusOK {
		t.Fatalf("discard: %d", w.Code)
	}
	left := decode[api.StagedResponse](t, f.do(t, http.MethodGet, "/api/staged", ""))
	if len(left.Lines) != 1 || left.Lines[0] != "two" {
		t.Fatalf("unexpected staged lines %+v", left)
	}
	if w := f.do(t, http.MethodDelete, "/api/staged/7", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestExportReturnsDocument(t *testing.T) {
	f := newFixture(t, testsupport.WithLRCHeader("Song", "Band"))
	f.clock.Seek(1)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"a"}`)
	f.clock.Seek(4)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"b"}`)

	w := f.do(t, http.MethodGet, "/api/export/srt", "")
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	want := "1\n00:00:01,000 --> 00:00:04,000\na\n\n2\n00:00:04,000 --> 00:00:07,000\nb\n\n"
	if w.Body.String() != want {
		t.Fatalf("got %q want %q", w.Body.String(), want)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="Band - Song.srt"` {
		t.Fatalf("unexpected disposition %q", got)
	}

	lrc := f.do(t, http.MethodGet, "/api/export/LRC", "")
	if !strings.HasPrefix(lrc.Body.String(), "[ti:Song]\n[ar:Band]\n\n[0:01.00]a\n") {
		t.Fatalf("unexpected lrc %q", lrc.Body.String())
	}
}

func TestTransportActions(t *testing.T) {
	f := newFixture(t)
	f.clock.Seek(3)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"x"}`)

	resp := decode[api.TransportResponse](t, f.do(t, http.MethodPost, "/api/transport", `{"action":"seek","position":12.5}`))
	if resp.Position != 12.5 || !resp.Paused {
		t.Fatalf("unexpected seek response %+v", resp)
	}
	resp = decode[api.TransportResponse](t, f.do(t, http.MethodPost, "/api/transport", `{"action":"seek","index":0}`))
	if resp.Position != 3 || resp.Paused {
		t.Fatalf("seek to entry should play from 3, got %+v", resp)
	}
	resp = decode[api.TransportResponse](t, f.do(t, http.MethodPost, "/api/transport", `{"action":"toggle"}`))
	if !resp.Paused {
		t.Fatalf("toggle should pause, got %+v", resp)
	}
	if w := f.do(t, http.MethodPost, "/api/transport", `{"action":"rewind"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", w.Code)
	}
}

func TestBlindModeHidesText(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/capture", `{"text":"secret"}`)

	status := decode[api.StatusResponse](t, f.do(t, http.MethodPut, "/api/blind", `{"enabled":true}`))
	if !status.BlindMode {
		t.Fatal("expected blind mode on")
	}
	entries := decode[api.EntriesResponse](t, f.do(t, http.MethodGet, "/api/entries", ""))
	if entries.Entries[0].Text != "" || !entries.Entries[0].Hidden {
		t.Fatalf("expected hidden text, got %+v", entries.Entries[0])
	}
}

func TestAuthMiddleware(t *testing.T) {
	f := newFixture(t, testsupport.WithAPIToken("s3cret"))

	if w := f.do(t, http.MethodGet, "/api/status", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	req.Header.Set("X-Request-ID", "req-1")
	w = httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") != "req-1" {
		t.Fatalf("expected request id echoed, got %q", w.Header().Get("X-Request-ID"))
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t)
	if w := f.do(t, http.MethodGet, "/api/capture", ""); w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}
