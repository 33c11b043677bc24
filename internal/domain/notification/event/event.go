package event

// Event is a typed payload carried over the notification channel. Op names
// the payload shape for the client.
type Event interface {
	Op() string
}

// Metadata routes an event inside the proxy. It never reaches the client.
type Metadata struct {
	To string `json:"to"`
}

type EventRequest struct {
	Op       string   `json:"op"`
	Data     any      `json:"data"`
	Metadata Metadata `json:"metadata"`
}

// EventResponse is the client-facing frame. Seq is monotonic per connection
// so the client can detect gaps.
type EventResponse struct {
	Op   string `json:"op"`
	Seq  int64  `json:"seq"`
	Data any    `json:"data"`
}

func New(ev Event, metadata Metadata) *EventRequest {
	return &EventRequest{
		Op:       ev.Op(),
		Data:     ev,
		Metadata: metadata,
	}
}

func Format(req *EventRequest, seq int64) *EventResponse {
	return &EventResponse{
		Op:   req.Op,
		Seq:  seq,
		Data: req.Data,
	}
}
