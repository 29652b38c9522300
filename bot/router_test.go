package bot

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ordersbot/database"
	"ordersbot/models"
	"ordersbot/states"
)

type staticRoles map[int64]bool

func (s staticRoles) IsAdmin(userID int64) bool { return s[userID] }

func newTestRouter(t *testing.T, roles staticRoles) (*Router, *database.Store) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	store := database.NewStore(db)
	return NewRouter(store, states.NewTracker(), roles), store
}

func onlyText(t *testing.T, replies []models.Reply) string {
	t.Helper()
	if len(replies) != 1 {
		t.Fatalf("got %d replies, want 1: %+v", len(replies), replies)
	}
	return replies[0].Text
}

func TestUnrecognizedTextIsNoOp(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{})
	ctx := context.Background()

	text := onlyText(t, router.OnText(ctx, 1, "ничего не значащий текст"))
	if !strings.Contains(text, "не распознана") {
		t.Fatalf("reply = %q, want the unrecognized-command message", text)
	}

	orders, err := store.AllOrders(ctx)
	if err != nil {
		t.Fatalf("AllOrders: %v", err)
	}
	inquiries, err := store.AllInquiries(ctx)
	if err != nil {
		t.Fatalf("AllInquiries: %v", err)
	}
	if len(orders) != 0 || len(inquiries) != 0 {
		t.Fatal("unrecognized text created rows")
	}

	// And no flow was started: the next message is still menu-matched.
	again := onlyText(t, router.OnText(ctx, 1, "все еще непонятно"))
	if !strings.Contains(again, "не распознана") {
		t.Fatalf("second reply = %q, a flow must not have started", again)
	}
}

func TestRegistrationScenario(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{})
	ctx := context.Background()

	welcome := onlyText(t, router.OnText(ctx, 10, "/start"))
	if !strings.Contains(welcome, "поделитесь") {
		t.Fatalf("/start for unknown user = %q, want contact request", welcome)
	}

	router.OnContact(ctx, 10, "+15550009999")
	confirmation := onlyText(t, router.OnText(ctx, 10, "Ann Lee"))
	if !strings.Contains(confirmation, "Ann Lee") {
		t.Fatalf("confirmation = %q", confirmation)
	}

	user, err := store.FindUser(ctx, 10)
	if err != nil {
		t.Fatalf("FindUser: %v", err)
	}
	if user.Phone != "+15550009999" || user.FullName != "Ann Lee" {
		t.Fatalf("persisted user = %+v", user)
	}

	// A fresh user has no orders yet.
	empty := onlyText(t, router.OnCallback(ctx, 10, models.Action{Kind: models.ActionViewOrders}.Encode()))
	if !strings.Contains(empty, "еще не сделали заказов") {
		t.Fatalf("empty order listing = %q", empty)
	}
}

func TestOrderScenario(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{})
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, 20, "+1555", "Bob"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	router.OnCallback(ctx, 20, models.Action{Kind: models.ActionCreateOrder}.Encode())
	router.OnText(ctx, 20, "Widget")
	router.OnText(ctx, 20, "3")
	done := onlyText(t, router.OnText(ctx, 20, "221B Baker St"))
	if !strings.Contains(done, "успешно") {
		t.Fatalf("order confirmation = %q", done)
	}

	orders, err := store.OrdersFor(ctx, 20)
	if err != nil {
		t.Fatalf("OrdersFor: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	o := orders[0]
	if o.Product != "Widget" || o.Quantity != "3" || o.Address != "221B Baker St" || o.Status != database.StatusPending {
		t.Fatalf("persisted order = %+v", o)
	}

	listing := onlyText(t, router.OnCallback(ctx, 20, models.Action{Kind: models.ActionViewOrders}.Encode()))
	if !strings.Contains(listing, "Widget") || !strings.Contains(listing, "Количество: 3") {
		t.Fatalf("listing = %q", listing)
	}
}

func TestInquiryListingAndView(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{})
	ctx := context.Background()

	empty := onlyText(t, router.OnCallback(ctx, 30, models.Action{Kind: models.ActionViewInquiries}.Encode()))
	if !strings.Contains(empty, "пока нет обращений") {
		t.Fatalf("empty inquiry listing = %q", empty)
	}

	created, err := store.CreateInquiry(ctx, 30, "Billing", "Charged twice")
	if err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}

	replies := router.OnCallback(ctx, 30, models.Action{Kind: models.ActionViewInquiries}.Encode())
	if len(replies) != 1 {
		t.Fatalf("got %d replies", len(replies))
	}
	kb, ok := replies[0].Keyboard.(models.InlineKeyboard)
	if !ok || len(kb.Rows) != 1 {
		t.Fatalf("inquiry listing keyboard = %+v", replies[0].Keyboard)
	}
	if kb.Rows[0][0].Action.InquiryID != created.ID {
		t.Fatalf("button action = %+v", kb.Rows[0][0].Action)
	}

	view := onlyText(t, router.OnCallback(ctx, 30, kb.Rows[0][0].Action.Encode()))
	if !strings.Contains(view, "Billing") || !strings.Contains(view, "Charged twice") {
		t.Fatalf("inquiry view = %q", view)
	}

	// Another non-admin user must not see it.
	foreign := onlyText(t, router.OnCallback(ctx, 31, kb.Rows[0][0].Action.Encode()))
	if strings.Contains(foreign, "Charged twice") {
		t.Fatalf("foreign user saw inquiry body: %q", foreign)
	}
}

func TestAdminGating(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{99: true})
	ctx := context.Background()

	if _, err := store.CreateOrder(ctx, 1, "Widget", "3", "addr"); err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	denied := onlyText(t, router.OnText(ctx, 50, "Клиентские заказы"))
	if strings.Contains(denied, "Widget") {
		t.Fatalf("non-admin got order data: %q", denied)
	}

	listing := onlyText(t, router.OnText(ctx, 99, "Клиентские заказы"))
	if !strings.Contains(listing, "Widget") {
		t.Fatalf("admin listing = %q", listing)
	}

	noInquiries := onlyText(t, router.OnText(ctx, 99, "Тикеты"))
	if !strings.Contains(noInquiries, "пока нет") {
		t.Fatalf("admin empty inquiry listing = %q", noInquiries)
	}
}

func TestAdminStart(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{99: true})
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, 99, "+1555", "Root"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	greeting := onlyText(t, router.OnText(ctx, 99, "/start"))
	if !strings.Contains(greeting, "администратор") {
		t.Fatalf("admin greeting = %q", greeting)
	}
}

func TestStartingFlowTwiceDiscardsPartialData(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{})
	ctx := context.Background()

	router.OnCallback(ctx, 40, models.Action{Kind: models.ActionCreateOrder}.Encode())
	router.OnText(ctx, 40, "Widget")

	// Restart the flow; the captured product must be gone.
	router.OnCallback(ctx, 40, models.Action{Kind: models.ActionCreateOrder}.Encode())
	router.OnText(ctx, 40, "Gadget")
	router.OnText(ctx, 40, "5")
	router.OnText(ctx, 40, "addr")

	orders, err := store.OrdersFor(ctx, 40)
	if err != nil {
		t.Fatalf("OrdersFor: %v", err)
	}
	if len(orders) != 1 || orders[0].Product != "Gadget" {
		t.Fatalf("orders after restart = %+v, want one Gadget order", orders)
	}
}

func TestConcurrentFinalStepCommitsOnce(t *testing.T) {
	router, store := newTestRouter(t, staticRoles{})
	ctx := context.Background()

	router.OnCallback(ctx, 60, models.Action{Kind: models.ActionCreateOrder}.Encode())
	router.OnText(ctx, 60, "Widget")
	router.OnText(ctx, 60, "3")

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			router.OnText(ctx, 60, "221B Baker St")
		}()
	}
	wg.Wait()

	orders, err := store.OrdersFor(ctx, 60)
	if err != nil {
		t.Fatalf("OrdersFor: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("racing final steps committed %d orders, want exactly 1", len(orders))
	}
}
