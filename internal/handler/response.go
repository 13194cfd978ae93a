package handler

// Envelope is the body shape every endpoint responds with. Data is set
// on success and Message on failure; TraceID ties an error body to its
// request log line.
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Envelope {
	return &Envelope{Status: "success", Data: data}
}

func NewErrorResponse(message string) *Envelope {
	return &Envelope{Status: "error", Message: message}
}

func (e *Envelope) WithTrace(traceID string) *Envelope {
	e.TraceID = traceID
	return e
}
