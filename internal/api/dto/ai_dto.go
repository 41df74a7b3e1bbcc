package dto

// IdentifyProtocolRequest payload.
type IdentifyProtocolRequest struct {
	Needs string `json:"needs"`
}

// IdentifyProtocolResponse is the model's recommendation.
type IdentifyProtocolResponse struct {
	Protocol string `json:"protocol"`
	Reason   string `json:"reason"`
}

// SummarizeRequest payload.
type SummarizeRequest struct {
	RequestText string `json:"requestText"`
}

// SummarizeResponse is the model's triage summary.
type SummarizeResponse struct {
	Summary          string `json:"summary"`
	UserNeed         string `json:"userNeed"`
	SuggestedService string `json:"suggestedService"`
}
