package httperror

// Error is the response body for failed requests.
type Error struct {
	Message string `json:"error"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

// NewMessage wraps a plain message in the error envelope.
func NewMessage(message string) Error {
	return Error{
		Message: message,
	}
}
