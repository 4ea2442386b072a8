package dto

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ErrorBody is the stable error envelope content.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// ErrorResponse is returned for every failed request: {"error": {"code", "message"}}.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
