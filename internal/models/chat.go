package models

// AskRequest is the webhook payload. The chat platform can be configured to
// post the user text under different key names, so a few common ones are
// accepted alongside the canonical "question".
type AskRequest struct {
	Question string `json:"question"`
	Message  string `json:"message"`
	Query    string `json:"query"`
	Text     string `json:"text"`
}

// UserText returns the first populated text field, or "" when the payload
// carries no usable message.
func (r AskRequest) UserText() string {
	for _, v := range []string{r.Question, r.Message, r.Query, r.Text} {
		if v != "" {
			return v
		}
	}
	return ""
}

// AskResponse is the reply envelope returned to the webhook.
type AskResponse struct {
	Reply string `json:"reply"`
}

// API Error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
