package quotations

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateQuotationRequest struct {
	ClientName    string          `json:"client_name" validate:"required,max=200"`
	ProjectName   string          `json:"project_name" validate:"required,max=200"`
	QuoteDate     time.Time       `json:"quote_date" validate:"required"`
	ValidUntil    time.Time       `json:"valid_until" validate:"required"`
	LaborCost     decimal.Decimal `json:"labor_cost"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	Notes         *string         `json:"notes,omitempty"`
	Items         []LineItemInput `json:"items" validate:"required,min=1"`
}

type UpdateQuotationRequest struct {
	QuoteDate     *time.Time       `json:"quote_date,omitempty"`
	ValidUntil    *time.Time       `json:"valid_until,omitempty"`
	LaborCost     *decimal.Decimal `json:"labor_cost,omitempty"`
	MarginPercent *decimal.Decimal `json:"margin_percent,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Items         *[]LineItemInput `json:"items,omitempty"`
}

type ListQuotationsRequest struct {
	Status   *QuotationStatus `json:"status,omitempty"`
	DateFrom *time.Time       `json:"date_from,omitempty"`
	DateTo   *time.Time       `json:"date_to,omitempty"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// PreviewRequest computes quotation totals without persisting anything.
type PreviewRequest struct {
	LaborCost     decimal.Decimal `json:"labor_cost"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	Items         []LineItemInput `json:"items" validate:"required,min=1"`
}
