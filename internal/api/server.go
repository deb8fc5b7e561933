package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"lyricsync/internal/export"
	"lyricsync/internal/logging"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/session"
	"lyricsync/internal/textutil"
)

const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Bind   string
	Token  string
	Logger *slog.Logger
}

// Server exposes a session over HTTP.
type Server struct {
	bind    string
	logger  *slog.Logger
	session *session.Session
	handler http.Handler

	listener net.Listener
	server   *http.Server
}

// NewServer builds the routes for sess.
func NewServer(sess *session.Session, opts Options) *Server {
	srv := &Server{
		bind:    strings.TrimSpace(opts.Bind),
		logger:  logging.NewComponentLogger(opts.Logger, "api-server"),
		session: sess,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", srv.handleStatus)
	mux.HandleFunc("GET /api/entries", srv.handleEntries)
	mux.HandleFunc("POST /api/capture", srv.handleCapture)
	mux.HandleFunc("POST /api/paste", srv.handlePaste)
	mux.HandleFunc("GET /api/staged", srv.handleStaged)
	mux.HandleFunc("POST /api/staged/{index}/promote", srv.handlePromote)
	mux.HandleFunc("DELETE /api/staged/{index}", srv.handleDiscard)
	mux.HandleFunc("POST /api/entries/{index}/edit", srv.handleStartEdit)
	mux.HandleFunc("POST /api/edit/cancel", srv.handleCancelEdit)
	mux.HandleFunc("POST /api/edit/nudge", srv.handleNudge)
	mux.HandleFunc("DELETE /api/entries/{index}", srv.handleDelete)
	mux.HandleFunc("POST /api/undo", srv.handleUndo)
	mux.HandleFunc("POST /api/clear", srv.handleClear)
	mux.HandleFunc("GET /api/export/{format}", srv.handleExport)
	mux.HandleFunc("POST /api/transport", srv.handleTransport)
	mux.HandleFunc("PUT /api/blind", srv.handleBlind)

	srv.handler = correlationMiddleware(authMiddleware(strings.TrimSpace(opts.Token), mux.ServeHTTP))
	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the routed handler including middleware.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured bind address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening",
		logging.String("address", listener.Addr().String()),
		logging.String(logging.FieldSessionID, s.session.ID()),
	)
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, FromStatus(s.session.Status()))
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, EntriesResponse{Entries: FromRows(s.session.Rows())})
}

func (s *Server) handleCapture(w http.ResponseWriter, r *http.Request) {
	var req CaptureRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, err := s.session.Commit(req.Text)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, FromCapture(result))
}

func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	var req PasteRequest
	if !s.decode(w, r, &req) {
		return
	}
	staged, ok := s.session.Paste(req.Text)
	s.writeJSON(w, http.StatusOK, FromStaged(staged, ok))
}

func (s *Server) handleStaged(w http.ResponseWriter, r *http.Request) {
	lines := s.session.Staged()
	s.writeJSON(w, http.StatusOK, FromStaged(lines, len(lines) > 0))
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	index, ok := s.pathIndex(w, r)
	if !ok {
		return
	}
	result, err := s.session.Promote(index)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, FromCapture(result))
}

func (s *Server) handleDiscard(w http.ResponseWriter, r *http.Request) {
	index, ok := s.pathIndex(w, r)
	if !ok {
		return
	}
	if _, err := s.session.Discard(index); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, FromStaged(s.session.Staged(), true))
}

func (s *Server) handleStartEdit(w http.ResponseWriter, r *http.Request) {
	index, ok := s.pathIndex(w, r)
	if !ok {
		return
	}
	entry, err := s.session.StartEdit(index)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, FromEntry(entry))
}

func (s *Server) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, CancelResponse{Cancelled: s.session.CancelEdit()})
}

func (s *Server) handleNudge(w http.ResponseWriter, r *http.Request) {
	var req NudgeRequest
	if !s.decode(w, r, &req) {
		return
	}
	var (
		result lyrics.NudgeResult
		err    error
	)
	switch {
	case req.Delta != nil:
		result, err = s.session.Nudge(*req.Delta)
	case req.Steps != 0:
		result, err = s.session.NudgeSteps(req.Steps)
	default:
		s.writeError(w, http.StatusBadRequest, "delta or steps is required", "")
		return
	}
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, NudgeResponse{Entry: FromEntry(result.Entry), Index: result.Index, Previous: result.Previous})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	index, ok := s.pathIndex(w, r)
	if !ok {
		return
	}
	entry, err := s.session.Delete(index, confirmed(r))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	removed := FromEntry(entry)
	s.writeJSON(w, http.StatusOK, RemovedResponse{Removed: 1, Entry: &removed})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	entry, err := s.session.Undo()
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	removed := FromEntry(entry)
	s.writeJSON(w, http.StatusOK, RemovedResponse{Removed: 1, Entry: &removed})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	removed, err := s.session.Clear(confirmed(r))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RemovedResponse{Removed: removed})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.PathValue("format"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	body, err := s.session.Export(format)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	header := s.session.ExportHeader()
	filename := textutil.ExportFileName(header.Title, header.Artist, format.Extension())
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

func (s *Server) handleTransport(w http.ResponseWriter, r *http.Request) {
	var req TransportRequest
	if !s.decode(w, r, &req) {
		return
	}
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "play":
		s.session.Play()
	case "pause":
		s.session.Pause()
	case "toggle":
		s.session.TogglePlayback()
	case "seek":
		switch {
		case req.Index != nil:
			if _, err := s.session.SeekTo(*req.Index); err != nil {
				s.writeFailure(w, r, err)
				return
			}
		case req.Position != nil:
			s.session.SeekPosition(*req.Position)
		default:
			s.writeError(w, http.StatusBadRequest, "seek requires position or index", "")
			return
		}
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown transport action %q", req.Action), "")
		return
	}
	status := s.session.Status()
	s.writeJSON(w, http.StatusOK, TransportResponse{Position: status.Position, Paused: status.Paused})
}

func (s *Server) handleBlind(w http.ResponseWriter, r *http.Request) {
	var req BlindRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.session.SetBlindMode(req.Enabled)
	s.writeJSON(w, http.StatusOK, FromStatus(s.session.Status()))
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), string(lyrics.KindMalformedJSON))
		return false
	}
	return true
}

func (s *Server) pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "index must be an integer", "")
		return 0, false
	}
	return index, true
}

func confirmed(r *http.Request) bool {
	ok, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && ok
}

func contentType(format export.Format) string {
	switch format {
	case export.FormatJSON:
		return "application/json"
	case export.FormatSRT:
		return "application/x-subrip; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// statusForError maps lyrics error kinds onto HTTP statuses.
func statusForError(err error) int {
	switch lyrics.KindOf(err) {
	case lyrics.KindNotConfirmed:
		return http.StatusPreconditionFailed
	case lyrics.KindIndexOutOfRange:
		return http.StatusNotFound
	case lyrics.KindMalformedJSON, lyrics.KindInvalidImport, lyrics.KindUnsupportedFormat:
		return http.StatusBadRequest
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusConflict
	}
}

func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context(), s.logger).Error("request failed",
			logging.String(logging.FieldEventType, "request_failed"),
			logging.String("path", r.URL.Path),
			logging.Error(err),
		)
	}
	s.writeError(w, status, err.Error(), string(lyrics.KindOf(err)))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, kind string) {
	s.writeJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}

// correlationMiddleware tags each request with an X-Request-ID, generating
// one when the client sent none.
func correlationMiddleware(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next(w, r.WithContext(logging.WithCorrelationID(r.Context(), id)))
	})
}
