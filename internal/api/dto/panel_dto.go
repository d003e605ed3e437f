package dto

// AcknowledgeCheckRequest payload for acknowledging a flagged compliance check.
type AcknowledgeCheckRequest struct {
	Note string `json:"note,omitempty"`
}
