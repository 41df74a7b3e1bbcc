package ai

// ProtocolRecommendation is the structured output of the identify_protocol
// prompt.
type ProtocolRecommendation struct {
	Protocol string `json:"protocol"`
	Reason   string `json:"reason"`
}

// RequestSummary is the structured output of the summarize_request prompt.
type RequestSummary struct {
	Summary          string `json:"summary"`
	UserNeed         string `json:"userNeed"`
	SuggestedService string `json:"suggestedService"`
}
