package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gartstein/efportfolio/internal/portfolio/models"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

// DirectoryController defines the read operations the HTTP handlers invoke.
type DirectoryController interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	GetCompany(ctx context.Context, id int64) (*models.Company, error)
	ListFounders(ctx context.Context, companyID int64) ([]models.Founder, error)
}

// DirectoryHandler serves companies and founders as JSON.
type DirectoryHandler struct {
	service DirectoryController
	logger  *zap.Logger
}

// NewDirectoryHandler constructs a new DirectoryHandler with the given service and logger.
func NewDirectoryHandler(service DirectoryController, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
		logger:  logger.Named("http_handler"),
	}
}

// ListCompanies returns the whole company snapshot in one response.
func (h *DirectoryHandler) ListCompanies(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	companies, err := h.service.ListCompanies(r.Context())
	if err != nil {
		h.writeError(w, h.mapServiceError(err))
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}
	h.writeJSON(w, http.StatusOK, companies)
}

// GetCompany fetches a Company by ID, returning 404 if not found.
func (h *DirectoryHandler) GetCompany(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseID(params["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	company, err := h.service.GetCompany(r.Context(), id)
	if err != nil {
		h.writeError(w, h.mapServiceError(err))
		return
	}
	h.writeJSON(w, http.StatusOK, company)
}

// ListFounders returns the founders of one company.
func (h *DirectoryHandler) ListFounders(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, err := parseID(params["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	founders, err := h.service.ListFounders(r.Context(), id)
	if err != nil {
		h.writeError(w, h.mapServiceError(err))
		return
	}
	if founders == nil {
		founders = []models.Founder{}
	}
	h.writeJSON(w, http.StatusOK, founders)
}

func (h *DirectoryHandler) Healthz(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DirectoryHandler) writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeError renders a gRPC status error with the matching HTTP code.
func (h *DirectoryHandler) writeError(w http.ResponseWriter, err error) {
	st, _ := status.FromError(err)
	h.writeJSON(w, runtime.HTTPStatusFromCode(st.Code()), errorBody{
		Code:    st.Code().String(),
		Message: st.Message(),
	})
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
