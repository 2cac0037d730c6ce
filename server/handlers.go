package server

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/uzera-playground/errortracker"
	"github.com/jrsteele09/uzera-playground/identity"
	"github.com/jrsteele09/uzera-playground/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// identifyRequest is the identify form, accepted as JSON or form values.
type identifyRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

// UserIDPreviewHandler shows the id an email would be identified as, without storing anything.
func (s *Server) UserIDPreviewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if !identity.LooksLikeEmail(email) {
			writeJSONError(w, "invalid_request", "email must contain @", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"userId": identity.DeriveUserID(email)})
	}
}

// IdentifyHandler handles the identify form. An existing identified session is only
// replaced when the request carries replace=true.
func (s *Server) IdentifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseIdentifyRequest(r)
		if err != nil {
			writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			writeJSONError(w, "invalid_request", "email is required", http.StatusBadRequest)
			return
		}

		identify := s.sessions.IdentifyOnce
		if replace, _ := strconv.ParseBool(r.URL.Query().Get("replace")); replace {
			identify = s.sessions.Identify
		}

		session, err := identify(r.Context(), req.Name, req.Email)
		if errors.Is(err, errors.ErrAlreadyIdentified) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error":             "already_identified",
				"error_description": "Already identified as " + session.Email,
				"userId":            session.UserID,
			})
			return
		}
		if err != nil {
			log.Err(err).Msg("Identify: failed to save session")
			writeJSONError(w, "server_error", "failed to save session", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, session)
	}
}

func parseIdentifyRequest(r *http.Request) (identifyRequest, error) {
	var req identifyRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, errors.Wrapf(errors.ErrInvalidRequest, "malformed JSON body")
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, errors.Wrapf(errors.ErrInvalidRequest, "malformed form body")
	}
	req.Name = r.FormValue("name")
	req.Email = r.FormValue("email")
	return req, nil
}

func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessions.Load(r.Context())
		if err != nil {
			log.Err(err).Msg("Session: failed to load session")
			writeJSONError(w, "server_error", "failed to load session", http.StatusInternalServerError)
			return
		}
		if session == nil {
			writeJSONError(w, "not_found", errors.ErrSessionNotFound.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}

func (s *Server) ClearSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.sessions.Clear(r.Context()); err != nil {
			log.Err(err).Msg("Session: failed to clear session")
			writeJSONError(w, "server_error", "failed to clear session", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) DisplayHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.display.View())
	}
}

func (s *Server) ErrorCountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.tracker.Counts(r.Context())
		if err != nil {
			log.Err(err).Msg("Errors: failed to load counts")
			writeJSONError(w, "server_error", "failed to load error counts", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func (s *Server) TrackErrorHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := r.PathValue("kind")
		if _, err := errortracker.ResolveKind(kind); err != nil {
			writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
			return
		}

		counts, err := s.tracker.Track(r.Context(), kind)
		if err != nil {
			log.Err(err).Str("kind", kind).Msg("Errors: failed to track error")
			writeJSONError(w, "server_error", "failed to track error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func (s *Server) ResetErrorsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.tracker.Reset(r.Context()); err != nil {
			log.Err(err).Msg("Errors: failed to reset counts")
			writeJSONError(w, "server_error", "failed to reset error counts", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, "not_found", "not found", http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes an error response in the same shape as OAuth2 errors
func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
