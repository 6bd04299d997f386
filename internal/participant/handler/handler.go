// Package handler is the thin HTTP layer over the registration and admin
// services. It owns JSON decoding, query parsing, and error translation;
// business logic stays in the services.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"campaign/internal/participant/models"
	"campaign/internal/participant/service"
	"campaign/pkg/apperr"
	"campaign/pkg/requestcontext"
)

// Registrar is the slice of the registration service the handler needs.
type Registrar interface {
	Register(ctx context.Context, req models.RegistrationRequest) (*models.RegistrationResult, error)
	Health(ctx context.Context) (dbOK, emailOK bool)
}

// AdminQuerier is the slice of the admin service the handler needs.
type AdminQuerier interface {
	List(ctx context.Context, filter models.Filter) ([]models.Participant, error)
	Stats(ctx context.Context) (*models.Stats, error)
	ExportCSV(ctx context.Context) (string, error)
	DeleteMany(ctx context.Context, ids []models.ParticipantID) (int, error)
}

// Handler handles the public signup endpoint and the admin API.
type Handler struct {
	logger       *slog.Logger
	registration Registrar
	admin        AdminQuerier
	signupLimit  func(http.Handler) http.Handler
}

// Option configures optional handler behavior.
type Option func(*Handler)

// WithSignupRateLimit guards POST /participar with the given middleware.
func WithSignupRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) { h.signupLimit = mw }
}

func New(registration Registrar, admin AdminQuerier, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, registration: registration, admin: admin}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the API routes on the router.
func (h *Handler) Register(r chi.Router) {
	if h.signupLimit != nil {
		r.With(h.signupLimit).Post("/participar", h.handleRegister)
	} else {
		r.Post("/participar", h.handleRegister)
	}

	r.Get("/api/participants", h.handleList)
	r.Get("/api/stats", h.handleStats)
	r.Get("/api/status", h.handleStatus)
	r.Post("/api/participants/delete", h.handleDelete)
	r.Get("/api/participants/export", h.handleExport)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid registration payload",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, apperr.New(apperr.CodeBadRequest, "Requisição inválida."))
		return
	}

	result, err := h.registration.Register(ctx, req)
	if err != nil {
		h.logError(ctx, "registration failed", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.RegistrationResponse{
		Success: true,
		Message: fmt.Sprintf("Obrigado, %s! Seu cadastro foi realizado com sucesso. Verifique seu email para a confirmação.",
			strings.TrimSpace(req.Name)),
		Data: result,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := models.Filter{
		Search: q.Get("search"),
		Status: models.Status(q.Get("status")),
		Device: q.Get("device"),
		Date:   q.Get("date"),
		SortBy: q.Get("sortBy"),
	}
	if dir := q.Get("sortDir"); dir == string(models.SortDesc) {
		filter.SortDir = models.SortDesc
	} else if filter.SortBy != "" {
		filter.SortDir = models.SortAsc
	}
	if filter.Status != "" && !filter.Status.Valid() {
		writeError(w, apperr.New(apperr.CodeBadRequest, "Status de filtro inválido."))
		return
	}

	listed, err := h.admin.List(ctx, filter)
	if err != nil {
		h.logError(ctx, "listing participants failed", err)
		writeError(w, err)
		return
	}

	if pageRaw := q.Get("page"); pageRaw != "" {
		page, err := strconv.Atoi(pageRaw)
		if err != nil || page < 1 {
			writeError(w, apperr.New(apperr.CodeBadRequest, "Página inválida."))
			return
		}
		pageSize := 50
		if raw := q.Get("pageSize"); raw != "" {
			pageSize, err = strconv.Atoi(raw)
			if err != nil || pageSize < 1 {
				writeError(w, apperr.New(apperr.CodeBadRequest, "Tamanho de página inválido."))
				return
			}
		}
		listed = service.Paginate(listed, page, pageSize)
	}

	if listed == nil {
		listed = []models.Participant{}
	}
	writeJSON(w, http.StatusOK, models.ListResponse{
		Success: true,
		Count:   len(listed),
		Data:    listed,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.admin.Stats(ctx)
	if err != nil {
		h.logError(ctx, "computing stats failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.StatsResponse{Success: true, Data: *stats})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	dbOK, emailOK := h.registration.Health(r.Context())

	database := "Connected"
	if !dbOK {
		database = "Disconnected"
	}
	email := "OK"
	if !emailOK {
		email = "Error"
	}
	writeJSON(w, http.StatusOK, models.StatusResponse{
		Status:    "OK",
		Timestamp: time.Now().UTC(),
		Database:  database,
		Email:     email,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.New(apperr.CodeBadRequest, "IDs inválidos fornecidos"))
		return
	}

	deleted, err := h.admin.DeleteMany(ctx, req.IDs)
	if err != nil {
		h.logError(ctx, "bulk delete failed", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.DeleteResponse{
		Success:      true,
		DeletedCount: deleted,
		Message:      fmt.Sprintf("%d participante(s) excluído(s) com sucesso", deleted),
	})
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	csv, err := h.admin.ExportCSV(ctx)
	if err != nil {
		h.logError(ctx, "export failed", err)
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("participantes_%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csv))
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err.Error(),
	}
	if apperr.CodeOf(err) == apperr.CodeInternal {
		h.logger.Error(msg, attrs...)
	} else {
		h.logger.Warn(msg, attrs...)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates coded domain errors into the stable
// {success:false, message} envelope. Internal details never reach clients.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperr.ToHTTPStatus(apperr.CodeOf(err)), models.ErrorResponse{
		Success: false,
		Message: apperr.MessageOf(err),
	})
}
