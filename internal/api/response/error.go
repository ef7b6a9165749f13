package response

// Error is the extras body of a failed request.
type Error struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Type    string `json:"type,omitempty"`
	Field   string `json:"field,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

func NewError(message string) Error {
	return Error{Message: message}
}
