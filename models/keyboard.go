package models

// Keyboard is an abstract keyboard description; the transport renders it.
type Keyboard interface {
	isKeyboard()
}

// ReplyKeyboard is a grid of labeled buttons shown under the input field.
type ReplyKeyboard struct {
	Rows   [][]ReplyButton
	Resize bool
}

type ReplyButton struct {
	Label          string
	RequestContact bool
}

// InlineKeyboard is a grid of buttons attached to a message, each
// carrying a callback action the transport echoes back on press.
type InlineKeyboard struct {
	Rows [][]InlineButton
}

type InlineButton struct {
	Label  string
	Action Action
}

// RemoveKeyboard hides a previously shown reply keyboard.
type RemoveKeyboard struct{}

func (ReplyKeyboard) isKeyboard()  {}
func (InlineKeyboard) isKeyboard() {}
func (RemoveKeyboard) isKeyboard() {}
