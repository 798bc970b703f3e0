package models

// AIAnalysis is the structured vehicle report produced by the advisory
// service for a single listing.
type AIAnalysis struct {
	Summary              string   `json:"summary"`
	Pros                 []string `json:"pros"`
	Cons                 []string `json:"cons"`
	CompetitorComparison string   `json:"competitorComparison"`
	CommonIssues         []string `json:"commonIssues"`
	IdealBuyer           string   `json:"idealBuyer"`
	Verdict              string   `json:"verdict"`
	Confidence           float64  `json:"confidence"` // 0..1
}

// Message is one turn in a vehicle chat transcript.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the wire body for a chat turn. The full prior history is
// sent with every turn; the server owns ordering and content of the reply.
type ChatRequest struct {
	Car            Vehicle   `json:"car"`
	MessageHistory []Message `json:"messageHistory"`
	Message        string    `json:"message"`
}

// ChatResponse carries the server-authoritative transcript.
type ChatResponse struct {
	MessageHistory []Message `json:"messageHistory"`
}
