package models

// Event is one inbound user action delivered by the transport.
type Event interface {
	isEvent()
}

// TextEvent is a plain text message.
type TextEvent struct {
	Text string
}

// ContactEvent is a shared contact card.
type ContactEvent struct {
	Phone string
}

// CallbackEvent is an inline button press, already decoded.
type CallbackEvent struct {
	Action Action
}

func (TextEvent) isEvent()     {}
func (ContactEvent) isEvent()  {}
func (CallbackEvent) isEvent() {}

// Reply is one outbound message for the transport to deliver.
type Reply struct {
	UserID   int64
	Text     string
	Keyboard Keyboard
}
