package dto

import (
	"github.com/iho/goscheduler/internal/domain"
	"github.com/iho/goscheduler/internal/usecase"
)

// TransferResponse represents a scheduled transfer in API responses.
// Money values are decimal strings with two fraction digits.
type TransferResponse struct {
	ID                string `json:"id"`
	SourceAccount     string `json:"source_account"`
	TargetAccount     string `json:"target_account"`
	Amount            string `json:"amount"`
	Fee               string `json:"fee"`
	Total             string `json:"total"`
	FeePolicy         string `json:"fee_policy"`
	ScheduleDate      string `json:"schedule_date"`
	TransferDate      string `json:"transfer_date"`
	DaysUntilTransfer int    `json:"days_until_transfer"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:                t.ID().String(),
		SourceAccount:     t.SourceAccount().String(),
		TargetAccount:     t.TargetAccount().String(),
		Amount:            t.Amount().String(),
		Fee:               t.Fee().String(),
		Total:             t.Total().String(),
		FeePolicy:         t.FeePolicy(),
		ScheduleDate:      t.ScheduleDate().Format(domain.DateLayout),
		TransferDate:      t.TransferDate().Format(domain.DateLayout),
		DaysUntilTransfer: t.DaysUntilTransfer(),
	}
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// FeeQuoteResponse represents a fee quote in API responses.
type FeeQuoteResponse struct {
	FeePolicy    string `json:"fee_policy"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	Fee          string `json:"fee"`
	Total        string `json:"total"`
	ScheduleDate string `json:"schedule_date"`
	TransferDate string `json:"transfer_date"`
	Days         int    `json:"days"`
}

// FeeQuoteFromUseCase converts a quote to response.
func FeeQuoteFromUseCase(q *usecase.FeeQuote) *FeeQuoteResponse {
	return &FeeQuoteResponse{
		FeePolicy:    q.Policy.Name(),
		Description:  q.Policy.Description(),
		Amount:       q.Amount.String(),
		Fee:          q.Fee.String(),
		Total:        q.Total.String(),
		ScheduleDate: q.ScheduleDate.Format(domain.DateLayout),
		TransferDate: q.TransferDate.Format(domain.DateLayout),
		Days:         q.Days,
	}
}

// FeePolicyResponse describes one fee tier.
type FeePolicyResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinDays     int    `json:"min_days"`
	MaxDays     int    `json:"max_days"`
}

// FeePoliciesFromDomain converts fee policies to responses.
func FeePoliciesFromDomain(policies []domain.FeePolicy) []*FeePolicyResponse {
	result := make([]*FeePolicyResponse, len(policies))
	for i, p := range policies {
		result[i] = &FeePolicyResponse{
			Name:        p.Name(),
			Description: p.Description(),
			MinDays:     p.Range().MinDays,
			MaxDays:     p.Range().MaxDays,
		}
	}
	return result
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
