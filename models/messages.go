package models

// Message kinds exchanged with the presentation layer.
const (
	MsgGetSelection    = "get-selection"
	MsgPopulateSingle  = "populate-single"
	MsgPopulateBatch   = "populate-batch"
	MsgSelectionUpdate = "selection-update"
	MsgProgress        = "populate-progress"
	MsgSuccess         = "populate-success"
	MsgError           = "populate-error"
)

// Message is the discriminated record on the channel. Only the fields
// relevant to Type are populated. Every populate request ends in exactly
// one terminal success or error message.
type Message struct {
	Type string `json:"type"`

	// selection-update
	Count   int  `json:"count,omitempty"`
	HasPods bool `json:"hasPods,omitempty"`

	// populate-progress
	Current int `json:"current,omitempty"`
	Total   int `json:"total,omitempty"`

	// populate-error
	Text string `json:"message,omitempty"`

	// inbound payloads
	Fields *PodFields  `json:"fields,omitempty"`
	Items  []PodFields `json:"items,omitempty"`
}

func SelectionUpdate(count int, hasPods bool) Message {
	return Message{Type: MsgSelectionUpdate, Count: count, HasPods: hasPods}
}

func ProgressMessage(current, total int) Message {
	return Message{Type: MsgProgress, Current: current, Total: total}
}

func SuccessMessage(count int) Message {
	return Message{Type: MsgSuccess, Count: count}
}

func ErrorMessage(text string) Message {
	return Message{Type: MsgError, Text: text}
}
