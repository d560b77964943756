package quotations

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	QuotationStatusDraft     QuotationStatus = "DRAFT"
	QuotationStatusSubmitted QuotationStatus = "SUBMITTED"
	QuotationStatusApproved  QuotationStatus = "APPROVED"
	QuotationStatusRejected  QuotationStatus = "REJECTED"
)

// Quotation is a priced construction offer going through the approval workflow.
// Totals are always recomputed server-side from the lines.
type Quotation struct {
	ID              int64           `json:"id"`
	ClientName      string          `json:"client_name"`
	ProjectName     string          `json:"project_name"`
	QuoteDate       time.Time       `json:"quote_date"`
	ValidUntil      time.Time       `json:"valid_until"`
	Status          QuotationStatus `json:"status"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	MarginPercent   decimal.Decimal `json:"margin_percent"`
	MaterialsTotal  decimal.Decimal `json:"materials_total"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	MarginAmount    decimal.Decimal `json:"margin_amount"`
	NetTotal        decimal.Decimal `json:"net_total"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Notes           *string         `json:"notes,omitempty"`
	CreatedBy       int64           `json:"created_by"`
	ApprovedBy      *int64          `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	RejectedBy      *int64          `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Lines           []QuotationLine `json:"lines,omitempty"`
}

// QuotationLine is one materials line of a quotation.
type QuotationLine struct {
	ID          int64           `json:"id"`
	QuotationID int64           `json:"quotation_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	LineOrder   int             `json:"line_order"`
}
