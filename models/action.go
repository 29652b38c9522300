package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionKind enumerates every inline button the bot can show.
type ActionKind string

const (
	ActionCreateOrder   ActionKind = "create_order"
	ActionViewOrders    ActionKind = "view_orders"
	ActionCreateInquiry ActionKind = "create_inquiry"
	ActionViewInquiries ActionKind = "view_inquiries"
	ActionViewInquiry   ActionKind = "view_inquiry"
)

// Action is a decoded callback payload. InquiryID is set only for
// ActionViewInquiry.
type Action struct {
	Kind      ActionKind
	InquiryID uint
}

// Encode serializes the action into the opaque token carried by an
// inline button. The transport echoes it back verbatim on press.
func (a Action) Encode() string {
	if a.Kind == ActionViewInquiry {
		return fmt.Sprintf("%s:%d", a.Kind, a.InquiryID)
	}
	return string(a.Kind)
}

// ParseAction decodes a callback token produced by Encode.
func ParseAction(data string) (Action, error) {
	kind, arg, hasArg := strings.Cut(data, ":")
	switch ActionKind(kind) {
	case ActionCreateOrder, ActionViewOrders, ActionCreateInquiry, ActionViewInquiries:
		if hasArg {
			return Action{}, fmt.Errorf("callback %q: unexpected argument", data)
		}
		return Action{Kind: ActionKind(kind)}, nil
	case ActionViewInquiry:
		if !hasArg {
			return Action{}, fmt.Errorf("callback %q: missing inquiry id", data)
		}
		id, err := strconv.ParseUint(arg, 10, 32)
		if err != nil {
			return Action{}, fmt.Errorf("callback %q: bad inquiry id: %w", data, err)
		}
		return Action{Kind: ActionViewInquiry, InquiryID: uint(id)}, nil
	default:
		return Action{}, fmt.Errorf("unknown callback %q", data)
	}
}
