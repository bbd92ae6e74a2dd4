package transport

// Message is the body of every error response and of the confirmation
// replies for toggle/delete operations.
type Message struct {
	Message string `json:"message"`
}
