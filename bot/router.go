package bot

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ordersbot/database"
	"ordersbot/flows"
	"ordersbot/models"
	"ordersbot/states"
)

// RoleResolver answers whether a user is an administrator. It is
// queried on every admin-gated call, never cached.
type RoleResolver interface {
	IsAdmin(userID int64) bool
}

// Router turns inbound events into replies. It owns no transport: the
// Telegram adapter feeds it events and delivers what it returns.
type Router struct {
	store   *database.Store
	tracker *states.Tracker
	engine  *flows.Engine
	roles   RoleResolver
}

func NewRouter(store *database.Store, tracker *states.Tracker, roles RoleResolver) *Router {
	engine := flows.NewEngine(store, tracker,
		flows.Registration(ClientMenu()),
		flows.Order(ClientMenu()),
		flows.Inquiry(ClientMenu()),
	)
	return &Router{store: store, tracker: tracker, engine: engine, roles: roles}
}

// OnText handles a plain text message.
func (r *Router) OnText(ctx context.Context, userID int64, text string) []models.Reply {
	r.tracker.Lock(userID)
	defer r.tracker.Unlock(userID)

	if reply, handled := r.engine.Handle(ctx, userID, models.TextEvent{Text: text}); handled {
		return []models.Reply{reply}
	}
	return r.dispatchMenu(ctx, userID, text)
}

// OnContact handles a shared contact card.
func (r *Router) OnContact(ctx context.Context, userID int64, phone string) []models.Reply {
	r.tracker.Lock(userID)
	defer r.tracker.Unlock(userID)

	if reply, handled := r.engine.Handle(ctx, userID, models.ContactEvent{Phone: phone}); handled {
		return []models.Reply{reply}
	}
	return nil
}

// OnCallback handles an inline button press. The raw token comes from
// the transport verbatim.
func (r *Router) OnCallback(ctx context.Context, userID int64, data string) []models.Reply {
	action, err := models.ParseAction(data)
	if err != nil {
		log.Printf("user %d: %v", userID, err)
		return nil
	}

	r.tracker.Lock(userID)
	defer r.tracker.Unlock(userID)

	switch action.Kind {
	case models.ActionCreateOrder:
		return []models.Reply{r.engine.Start(userID, flows.FlowOrder)}
	case models.ActionViewOrders:
		return r.listOwnOrders(ctx, userID)
	case models.ActionCreateInquiry:
		return []models.Reply{r.engine.Start(userID, flows.FlowInquiry)}
	case models.ActionViewInquiries:
		return r.listOwnInquiries(ctx, userID)
	case models.ActionViewInquiry:
		return r.showInquiry(ctx, userID, action.InquiryID)
	default:
		return nil
	}
}

func (r *Router) dispatchMenu(ctx context.Context, userID int64, text string) []models.Reply {
	switch text {
	case "/start":
		return r.start(ctx, userID)
	case "Мои заказы":
		return []models.Reply{{
			UserID:   userID,
			Text:     "Выберите действие:",
			Keyboard: orderOptions(),
		}}
	case "Обращения":
		return []models.Reply{{
			UserID:   userID,
			Text:     "Выберите действие:",
			Keyboard: inquiryOptions(),
		}}
	case "Техническая поддержка":
		return []models.Reply{{
			UserID: userID,
			Text:   "Начат поиск оператора для технической поддержки.",
		}}
	case "Клиентские заказы":
		return r.listAllOrders(ctx, userID)
	case "Тикеты":
		return r.listAllInquiries(ctx, userID)
	case "Поддержка":
		if !r.roles.IsAdmin(userID) {
			return r.denied(userID)
		}
		return []models.Reply{{UserID: userID, Text: "Раздел поддержки пока в разработке."}}
	default:
		return []models.Reply{{
			UserID:   userID,
			Text:     "Команда не распознана. Пожалуйста, выберите действие из меню.",
			Keyboard: r.menuFor(userID),
		}}
	}
}

// start greets a known user with their menu or begins registration.
func (r *Router) start(ctx context.Context, userID int64) []models.Reply {
	user, err := r.store.FindUser(ctx, userID)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return []models.Reply{r.engine.Start(userID, flows.FlowRegistration)}
	case err != nil:
		log.Printf("find user %d: %v", userID, err)
		return []models.Reply{{UserID: userID, Text: "Что-то пошло не так. Попробуйте позже."}}
	}

	if r.roles.IsAdmin(userID) {
		return []models.Reply{{
			UserID:   userID,
			Text:     "Добрый день, администратор!",
			Keyboard: AdminMenu(),
		}}
	}
	return []models.Reply{{
		UserID:   userID,
		Text:     fmt.Sprintf("Добрый день, %s!", user.FullName),
		Keyboard: ClientMenu(),
	}}
}

func (r *Router) menuFor(userID int64) models.Keyboard {
	if r.roles.IsAdmin(userID) {
		return AdminMenu()
	}
	return ClientMenu()
}

func (r *Router) denied(userID int64) []models.Reply {
	return []models.Reply{{UserID: userID, Text: "Доступ запрещен."}}
}
