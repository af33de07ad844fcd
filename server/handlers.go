package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mahmudulbisd/stockgen-ai-pro/client"
	"github.com/mahmudulbisd/stockgen-ai-pro/export"
	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

type variationsPayload struct {
	Variations []models.StockAssetVariation `json:"variations"`
}

func (s *server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("failed to encode JSON response: %v", err)
	}
}

func (s *server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generate runs one batch. Fields omitted from the body keep the defaults of
// models.DefaultGeneratorConfig.
func (s *server) generate(w http.ResponseWriter, r *http.Request) {
	cfg := models.DefaultGeneratorConfig()
	if err := s.decode(w, r, &cfg); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := cfg.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	variations, err := s.gen.GenerateStockAssets(ctx, cfg)
	if err != nil {
		s.respondError(w, statusFor(err), err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, variationsPayload{Variations: variations})
}

func (s *server) export(w http.ResponseWriter, r *http.Request) {
	var payload variationsPayload
	if err := s.decode(w, r, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := export.Marshal(payload.Variations)
	if errors.Is(err, export.ErrNoVariations) {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.FileName(s.now()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Errorf("failed to write export: %v", err)
	}
}

// statusFor maps a generation failure to the status returned to the caller.
func statusFor(err error) int {
	var genErr *client.GenerationError
	if !errors.As(err, &genErr) {
		return http.StatusInternalServerError
	}
	switch genErr.Kind {
	case models.KindUpstreamAuth:
		return http.StatusUnauthorized
	case models.KindUpstreamTransport, models.KindResponseParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
