package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/leapstack-labs/geosql/internal/rewrite"
	"github.com/leapstack-labs/geosql/pkg/core"
)

const (
	contentTypeJSONAPI = "application/vnd.api+json"
	maxBodyBytes       = 1 << 20
)

type resultDocument struct {
	Data resultData `json:"data"`
}

type resultData struct {
	Type       string           `json:"type"`
	Attributes resultAttributes `json:"attributes"`
}

type resultAttributes struct {
	Query   string          `json:"query"`
	JSONSQL *core.Statement `json:"jsonSql"`
}

type errorDocument struct {
	Errors []errorObject `json:"errors"`
}

type errorObject struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleSQL2SQL(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SQL == "" {
		s.writeError(w, http.StatusBadRequest, "sql is required")
		return
	}

	res, err := s.rewriter.Rewrite(r.Context(), req)
	if err != nil {
		var rerr *rewrite.Error
		if !errors.As(err, &rerr) {
			s.logger.Error("rewrite failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		s.writeError(w, statusFor(rerr.Kind), rerr.Message)
		return
	}

	s.writeJSON(w, http.StatusOK, resultDocument{Data: resultData{
		Type:       "result",
		Attributes: resultAttributes{Query: res.SQL, JSONSQL: res.Parsed},
	}})
}

// decodeRequest reads sql and geostore from the query string, or from a
// JSON body on POST. Body values win over query values.
func decodeRequest(w http.ResponseWriter, r *http.Request) (rewrite.Request, error) {
	q := r.URL.Query()
	req := rewrite.Request{SQL: q.Get("sql"), Geostore: q.Get("geostore")}

	if r.Method != http.MethodPost || r.ContentLength == 0 {
		return req, nil
	}

	var body rewrite.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}
	if body.SQL != "" {
		req.SQL = body.SQL
	}
	if body.Geostore != "" {
		req.Geostore = body.Geostore
	}
	return req, nil
}

func statusFor(kind rewrite.Kind) int {
	switch kind {
	case rewrite.KindGeostoreNotFound:
		return http.StatusNotFound
	case rewrite.KindGeostoreFetchError:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorDocument{Errors: []errorObject{{Status: status, Detail: detail}}})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSONAPI)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", "error", err)
	}
}
