package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmarinho/orderdesk/internal/order"
)

type paymentResponse struct {
	ID         uuid.UUID `json:"id"`
	Amount     int64     `json:"amount"`
	Note       string    `json:"note,omitempty"`
	VerifiedBy string    `json:"verified_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type orderResponse struct {
	ID          uuid.UUID          `json:"id"`
	SourceID    string             `json:"source_id"`
	DisplayID   string             `json:"display_id,omitempty"`
	ServiceName string             `json:"service_name"`
	Duration    string             `json:"duration,omitempty"`
	Type        order.Type         `json:"type"`
	Cycle       order.ServiceCycle `json:"service_cycle"`
	Media       order.MediaType    `json:"media_type"`
	Status      order.Status       `json:"status"`
	RawStatus   string             `json:"raw_status,omitempty"`
	AdminPrice  int64              `json:"admin_price"`
	PaidAmount  int64              `json:"paid_amount"`
	DueAmount   int64              `json:"due_amount"`
	DueDisplay  string             `json:"due_display"`
	PartnerID   string             `json:"partner_id,omitempty"`
	PartnerName string             `json:"partner_name,omitempty"`
	AssignedTo  string             `json:"assigned_to,omitempty"`
	Payments    []paymentResponse  `json:"payments,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

func toResponse(o *order.Order) orderResponse {
	v := order.Derive(*o)

	resp := orderResponse{
		ID:          v.ID,
		SourceID:    v.SourceID,
		DisplayID:   v.DisplayID,
		ServiceName: v.ServiceName,
		Duration:    v.Duration,
		Type:        v.Type,
		Cycle:       v.Cycle,
		Media:       v.Media,
		Status:      v.Status,
		RawStatus:   v.RawStatus,
		AdminPrice:  v.AdminPrice,
		PaidAmount:  v.PaidAmount,
		DueAmount:   v.DueAmount,
		DueDisplay:  order.FormatINR(v.DueAmount),
		PartnerID:   v.PartnerID,
		PartnerName: v.PartnerName,
		AssignedTo:  v.AssignedTo,
		CreatedAt:   v.CreatedAt,
	}

	for _, p := range v.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:         p.ID,
			Amount:     p.Amount,
			Note:       p.Note,
			VerifiedBy: p.VerifiedBy,
			CreatedAt:  p.CreatedAt,
		})
	}

	return resp
}

func toResponseList(orders []*order.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = toResponse(o)
	}

	return out
}
