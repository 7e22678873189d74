package ingest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarinho/orderdesk/internal/feed"
	"github.com/dmarinho/orderdesk/internal/http/auth"
	"github.com/dmarinho/orderdesk/internal/ingest"
	"github.com/dmarinho/orderdesk/internal/order"
	"github.com/dmarinho/orderdesk/internal/partner"
)

type Handler struct {
	parser   *ingest.Service
	orders   *order.Service
	partners *partner.Directory
	feed     *feed.Service
}

func NewHandler(parser *ingest.Service, orders *order.Service, partners *partner.Directory, feedSvc *feed.Service) *Handler {
	return &Handler{parser: parser, orders: orders, partners: partners, feed: feedSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(auth.Require(auth.RoleAdmin, auth.RoleManager))

	r.Post("/csv", h.uploadCSV)
	r.Post("/snapshot", h.uploadSnapshot)
	r.Post("/sync", h.sync)
}

type ingestResponse struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

func (h *Handler) uploadCSV(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, ingest.FormatCSV)
}

func (h *Handler) uploadSnapshot(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, ingest.FormatSnapshot)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request, format ingest.Format) {
	orders, err := h.parser.Parse(format, r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.orders.IngestBatch(r.Context(), orders)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for _, o := range orders {
		if err := h.partners.Remember(r.Context(), o.PartnerID, o.PartnerName); err != nil {
			slog.Warn("failed to remember partner name", "partner_id", o.PartnerID, "error", err)
		}
	}

	writeResult(w, ingestResponse{Fetched: len(orders), Inserted: result.Inserted, Updated: result.Updated})
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.feed.Sync(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeResult(w, ingestResponse{Fetched: result.Fetched, Inserted: result.Inserted, Updated: result.Updated})
}

func writeResult(w http.ResponseWriter, resp ingestResponse) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
