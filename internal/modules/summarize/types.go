package summarize

// summarizeDTO is the request body for POST /api/summarize.
type summarizeDTO struct {
	Text string `json:"text"`
}
