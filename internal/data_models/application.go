package dto

type ApplyRequest struct {
	ProposedRate      *float64 `json:"proposedRate" validate:"omitempty,gt=0"`
	Message           string   `json:"message" validate:"max=1000"`
	EstimatedDuration string   `json:"estimatedDuration" validate:"max=100"`
}
