package dto

// Envelope is the standard response wrapper: {success, data} on success,
// {success:false, message} on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK wraps data in a success envelope
func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Fail wraps an error message in a failure envelope
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
