package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmarinho/orderdesk/internal/http/auth"
	"github.com/dmarinho/orderdesk/internal/order"
	"github.com/dmarinho/orderdesk/internal/partner"
	"github.com/dmarinho/orderdesk/internal/report"
)

type Handler struct {
	orders   *order.Service
	partners *partner.Directory
}

func NewHandler(orders *order.Service, partners *partner.Directory) *Handler {
	return &Handler{orders: orders, partners: partners}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/revenue", h.revenue)
	r.Get("/table", h.table)

	r.With(auth.Require(auth.RoleAdmin, auth.RoleManager)).
		Get("/partners", h.partnerDues)
}

// loadOrders fetches the working set for a report, scoped down for partner
// tokens.
func (h *Handler) loadOrders(r *http.Request) ([]order.Order, error) {
	filter := order.ListFilter{}

	if claims, ok := auth.FromContext(r.Context()); ok && claims.Role == auth.RolePartner {
		partnerID := claims.PartnerID
		filter.PartnerID = &partnerID
	}

	ptrs, err := h.orders.List(r.Context(), filter)
	if err != nil {
		return nil, err
	}

	orders := make([]order.Order, len(ptrs))
	for i, o := range ptrs {
		orders[i] = *o
	}

	return orders, nil
}

type breakdownResponse struct {
	Total     int `json:"total"`
	Waiting   int `json:"waiting"`
	Progress  int `json:"progress"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type windowResponse struct {
	Window     string `json:"window"`
	Revenue    int64  `json:"revenue"`
	NetRevenue int64  `json:"net_revenue"`
	DueTotal   int64  `json:"due_total"`
	Orders     int    `json:"orders"`
}

type summaryResponse struct {
	Agency     breakdownResponse `json:"agency"`
	Correction breakdownResponse `json:"correction"`
	EGreeting  breakdownResponse `json:"e_greeting"`
	Service    breakdownResponse `json:"service"`
	Windows    []windowResponse  `json:"windows"`
}

func toBreakdown(b report.StatusBreakdown) breakdownResponse {
	return breakdownResponse{
		Total:     b.Total,
		Waiting:   b.Waiting,
		Progress:  b.Progress,
		Completed: b.Completed,
		Cancelled: b.Cancelled,
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	orders, err := h.loadOrders(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s := report.Summarize(orders)
	now := time.Now()

	resp := summaryResponse{
		Agency:     toBreakdown(s.Agency),
		Correction: toBreakdown(s.Correction),
		EGreeting:  toBreakdown(s.EGreeting),
		Service:    toBreakdown(s.Service),
	}

	for _, win := range []order.Window{order.WindowToday, order.WindowWeek, order.WindowMonth} {
		totals := order.AggregateByWindow(orders, win, now)
		resp.Windows = append(resp.Windows, windowResponse{
			Window:     win.String(),
			Revenue:    totals.Revenue,
			NetRevenue: totals.NetRevenue,
			DueTotal:   totals.DueTotal,
			Orders:     totals.Orders,
		})
	}

	writeJSON(w, resp)
}

type bucketResponse struct {
	Label string `json:"label"`
	Paise int64  `json:"paise"`
}

func (h *Handler) revenue(w http.ResponseWriter, r *http.Request) {
	window := r.URL.Query().Get("window")
	if window != "weekly" && window != "monthly" {
		http.Error(w, "window must be weekly or monthly", http.StatusBadRequest)
		return
	}

	orders, err := h.loadOrders(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	now := time.Now()

	var buckets []report.Bucket
	if window == "weekly" {
		buckets = report.WeeklyRevenue(orders, now)
	} else {
		buckets = report.MonthlyRevenue(orders, now)
	}

	resp := make([]bucketResponse, len(buckets))
	for i, b := range buckets {
		resp[i] = bucketResponse{Label: b.Label, Paise: b.Paise}
	}

	writeJSON(w, resp)
}

type partnerDuesResponse struct {
	PartnerID   string `json:"partner_id"`
	PartnerName string `json:"partner_name"`
	TotalPaid   int64  `json:"total_paid"`
	CurrentDue  int64  `json:"current_due"`
	Orders      int    `json:"orders"`
}

func (h *Handler) partnerDues(w http.ResponseWriter, r *http.Request) {
	orders, err := h.loadOrders(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	totals := order.AggregateByPartner(orders)

	resp := make([]partnerDuesResponse, 0, len(totals))

	for _, t := range totals {
		name := t.PartnerName
		if name == "" {
			// Order documents missed the name; fall back to the directory.
			if known, err := h.partners.Lookup(r.Context(), t.PartnerID); err == nil {
				name = known
			}
		}

		resp = append(resp, partnerDuesResponse{
			PartnerID:   t.PartnerID,
			PartnerName: name,
			TotalPaid:   t.TotalPaid,
			CurrentDue:  t.CurrentDue,
			Orders:      len(t.History),
		})
	}

	writeJSON(w, resp)
}

type tableRowResponse struct {
	DisplayID   string `json:"display_id"`
	ServiceName string `json:"service_name"`
	PartnerName string `json:"partner_name,omitempty"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	DueAmount   int64  `json:"due_amount"`
}

type tablePageResponse struct {
	Rows       []tableRowResponse `json:"rows"`
	Page       int                `json:"page"`
	TotalRows  int                `json:"total_rows"`
	TotalPages int                `json:"total_pages"`
}

func (h *Handler) table(w http.ResponseWriter, r *http.Request) {
	orders, err := h.loadOrders(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	q := report.Query{
		Search:  r.URL.Query().Get("search"),
		Payment: report.PaymentFilter(r.URL.Query().Get("payment")),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		status := order.NormalizeStatus(s)
		q.Status = &status
	}

	if s := r.URL.Query().Get("page"); s != "" {
		if page, err := strconv.Atoi(s); err == nil {
			q.Page = page
		}
	}

	page := report.Run(orders, q)

	resp := tablePageResponse{
		Rows:       make([]tableRowResponse, len(page.Rows)),
		Page:       page.Page,
		TotalRows:  page.TotalRows,
		TotalPages: page.TotalPages,
	}

	for i, v := range page.Rows {
		resp.Rows[i] = tableRowResponse{
			DisplayID:   v.DisplayID,
			ServiceName: v.ServiceName,
			PartnerName: v.PartnerName,
			Type:        string(v.Type),
			Status:      string(v.Status),
			DueAmount:   v.DueAmount,
		}
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
