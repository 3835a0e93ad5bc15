package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dd0wney/missionsim/pkg/api/middleware"
	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/mission"
	"github.com/dd0wney/missionsim/pkg/validation"
)

// requestDecoder decodes and validates request bodies.
// It provides a fluent interface for common request handling patterns.
type requestDecoder struct {
	r          *http.Request
	w          http.ResponseWriter
	server     *Server
	err        error
	statusCode int
}

// newRequestDecoder creates a new request decoder for the given request.
func (s *Server) newRequestDecoder(w http.ResponseWriter, r *http.Request) *requestDecoder {
	return &requestDecoder{
		r:      r,
		w:      w,
		server: s,
	}
}

// DecodeJSON decodes the request body into v. An oversized body is
// reported as 413, anything else unparseable as 400.
func (rd *requestDecoder) DecodeJSON(v any) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := json.NewDecoder(rd.r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rd.err = fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
			rd.statusCode = http.StatusRequestEntityTooLarge
			return rd
		}
		rd.err = fmt.Errorf("invalid request body: %w", err)
		rd.statusCode = http.StatusBadRequest
	}
	return rd
}

// ValidateArchitecture checks field constraints on arch and fills defaults.
func (rd *requestDecoder) ValidateArchitecture(arch *mission.Architecture) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if arch == nil {
		rd.err = fmt.Errorf("%w: architecture: field is required", validation.ErrInvalid)
		rd.statusCode = http.StatusUnprocessableEntity
		return rd
	}
	arch.ApplyDefaults()
	if err := validation.ValidateArchitecture(arch); err != nil {
		rd.err = err
		rd.statusCode = http.StatusUnprocessableEntity
	}
	return rd
}

// ValidateTarget checks the target component ID.
func (rd *requestDecoder) ValidateTarget(id string) *requestDecoder {
	if rd.err != nil {
		return rd
	}
	if err := validation.ValidateTarget(id); err != nil {
		rd.err = err
		rd.statusCode = http.StatusUnprocessableEntity
	}
	return rd
}

// HasError returns true if any error occurred during decoding/validation.
func (rd *requestDecoder) HasError() bool {
	return rd.err != nil
}

// RespondError writes the recorded error. It reports whether one was written.
func (rd *requestDecoder) RespondError() bool {
	if rd.err == nil {
		return false
	}
	rd.server.respondError(rd.w, rd.statusCode, rd.err.Error())
	return true
}

// parseArchitectureID reads the {id} path segment.
func parseArchitectureID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %q is not an integer", validation.ErrInvalid, raw)
	}
	return id, nil
}

// requestLogger returns the server logger tagged with the request ID.
func (s *Server) requestLogger(r *http.Request) logging.Logger {
	if id := middleware.GetRequestID(r); id != "" {
		return s.logger.With(logging.RequestID(id))
	}
	return s.logger
}

// internalError logs err in full and answers with a generic message.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, operation, message string, err error) {
	s.requestLogger(r).Error(operation+" failed",
		logging.String("path", r.URL.Path),
		logging.Error(err),
	)
	s.respondError(w, http.StatusInternalServerError, message)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", logging.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, detail string) {
	response := ErrorResponse{
		Error:  http.StatusText(status),
		Detail: detail,
		Code:   status,
	}
	s.respondJSON(w, status, response)
}
