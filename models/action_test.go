package models

import (
	"testing"
)

func TestActionRoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: ActionCreateOrder},
		{Kind: ActionViewOrders},
		{Kind: ActionCreateInquiry},
		{Kind: ActionViewInquiries},
		{Kind: ActionViewInquiry, InquiryID: 17},
	}
	for _, a := range actions {
		parsed, err := ParseAction(a.Encode())
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", a.Encode(), err)
		}
		if parsed != a {
			t.Fatalf("round trip of %+v gave %+v", a, parsed)
		}
	}
}

func TestParseActionRejectsGarbage(t *testing.T) {
	for _, data := range []string{
		"",
		"drop_tables",
		"view_inquiry",
		"view_inquiry:seventeen",
		"view_inquiry:-1",
		"view_orders:5",
	} {
		if _, err := ParseAction(data); err == nil {
			t.Fatalf("ParseAction(%q) accepted invalid token", data)
		}
	}
}
