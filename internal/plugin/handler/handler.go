package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pangate/internal/platform/middleware"
	"pangate/internal/plugin/models"
	dErrors "pangate/pkg/domain-errors"
	"pangate/pkg/platform/httputil"
	"pangate/pkg/requestcontext"
)

// Service defines the plugin operations exposed over HTTP.
type Service interface {
	CreatePlugin(ctx context.Context, req *models.CreatePluginRequest) (*models.Plugin, error)
	GetPlugin(ctx context.Context, uid string) (*models.Plugin, error)
	ListPlugins(ctx context.Context, service string) ([]*models.Plugin, error)
	UpdatePlugin(ctx context.Context, uid string, req *models.UpdatePluginRequest) (*models.Plugin, error)
	DeletePlugin(ctx context.Context, uid string) error
	ValidatePAN(ctx context.Context, uid, pan string) (*models.PANCheckResult, error)
	CheckPANEligibility(ctx context.Context, uid, pan string) (*models.PANCheckResult, error)
}

// Handler serves the plugin admin API and the PAN check endpoints.
type Handler struct {
	service    Service
	logger     *slog.Logger
	adminToken string
}

// New creates a plugin Handler. Admin routes require adminToken.
func New(service Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{
		service:    service,
		logger:     logger,
		adminToken: adminToken,
	}
}

// Register registers the plugin routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/admin/plugins", func(admin chi.Router) {
		admin.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
		admin.Post("/", h.HandleCreatePlugin)
		admin.Get("/", h.HandleListPlugins)
		admin.Get("/{uid}", h.HandleGetPlugin)
		admin.Put("/{uid}", h.HandleUpdatePlugin)
		admin.Delete("/{uid}", h.HandleDeletePlugin)
	})
	r.Post("/plugins/{uid}/pan/validate", h.HandleValidatePAN)
	r.Post("/plugins/{uid}/pan/eligibility", h.HandleCheckPANEligibility)
}

func (h *Handler) HandleCreatePlugin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreatePluginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	plugin, err := h.service.CreatePlugin(ctx, req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to create plugin", err)
		return
	}

	h.logger.InfoContext(ctx, "plugin created",
		"request_id", requestID,
		"plugin_uid", plugin.UID,
		"provider", plugin.Provider.String(),
	)
	httputil.WriteJSON(w, http.StatusCreated, toPluginResponse(plugin))
}

func (h *Handler) HandleListPlugins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	plugins, err := h.service.ListPlugins(ctx, r.URL.Query().Get("service"))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to list plugins", err)
		return
	}
	resp := PluginListResponse{Plugins: make([]PluginResponse, 0, len(plugins))}
	for _, p := range plugins {
		resp.Plugins = append(resp.Plugins, toPluginResponse(p))
	}
	resp.Count = len(resp.Plugins)
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleGetPlugin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	plugin, err := h.service.GetPlugin(ctx, chi.URLParam(r, "uid"))
	if err != nil {
		h.writeServiceError(ctx, w, "failed to get plugin", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPluginResponse(plugin))
}

func (h *Handler) HandleUpdatePlugin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.UpdatePluginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	plugin, err := h.service.UpdatePlugin(ctx, chi.URLParam(r, "uid"), req)
	if err != nil {
		h.writeServiceError(ctx, w, "failed to update plugin", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPluginResponse(plugin))
}

func (h *Handler) HandleDeletePlugin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.DeletePlugin(ctx, chi.URLParam(r, "uid")); err != nil {
		h.writeServiceError(ctx, w, "failed to delete plugin", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleValidatePAN(w http.ResponseWriter, r *http.Request) {
	h.handlePANCheck(w, r, h.service.ValidatePAN)
}

func (h *Handler) HandleCheckPANEligibility(w http.ResponseWriter, r *http.Request) {
	h.handlePANCheck(w, r, h.service.CheckPANEligibility)
}

func (h *Handler) handlePANCheck(w http.ResponseWriter, r *http.Request, check func(ctx context.Context, uid, pan string) (*models.PANCheckResult, error)) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.PANCheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := check(ctx, chi.URLParam(r, "uid"), req.PAN)
	if err != nil {
		h.writeServiceError(ctx, w, "pan check failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPANCheckResponse(result))
}

// writeServiceError logs at warn for client errors and error for the rest.
func (h *Handler) writeServiceError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	args := []any{
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	}
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	httputil.WriteError(w, err)
}
