package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"ordersbot/database"
	"ordersbot/models"
)

func (r *Router) listOwnOrders(ctx context.Context, userID int64) []models.Reply {
	orders, err := r.store.OrdersFor(ctx, userID)
	if err != nil {
		return r.queryFailure(userID, err)
	}
	if len(orders) == 0 {
		return []models.Reply{{
			UserID: userID,
			Text:   "Вы еще не сделали заказов. Чтобы сделать заказ, выберите 'Создать заказ'.",
		}}
	}
	return []models.Reply{{UserID: userID, Text: formatOrders("Список ваших заказов:", orders)}}
}

func (r *Router) listAllOrders(ctx context.Context, userID int64) []models.Reply {
	if !r.roles.IsAdmin(userID) {
		return r.denied(userID)
	}
	orders, err := r.store.AllOrders(ctx)
	if err != nil {
		return r.queryFailure(userID, err)
	}
	if len(orders) == 0 {
		return []models.Reply{{UserID: userID, Text: "Заказов пока нет."}}
	}
	return []models.Reply{{UserID: userID, Text: formatOrders("Список заказов:", orders)}}
}

// listOwnInquiries answers with an inline keyboard so the client can
// open any inquiry in full.
func (r *Router) listOwnInquiries(ctx context.Context, userID int64) []models.Reply {
	inquiries, err := r.store.InquiriesFor(ctx, userID)
	if err != nil {
		return r.queryFailure(userID, err)
	}
	if len(inquiries) == 0 {
		return []models.Reply{{UserID: userID, Text: "У вас пока нет обращений."}}
	}

	rows := make([][]models.InlineButton, 0, len(inquiries))
	for _, inq := range inquiries {
		rows = append(rows, []models.InlineButton{{
			Label:  fmt.Sprintf("%s - %s", inq.Topic, inq.Status),
			Action: models.Action{Kind: models.ActionViewInquiry, InquiryID: inq.ID},
		}})
	}
	return []models.Reply{{
		UserID:   userID,
		Text:     "Выберите обращение для просмотра:",
		Keyboard: models.InlineKeyboard{Rows: rows},
	}}
}

func (r *Router) listAllInquiries(ctx context.Context, userID int64) []models.Reply {
	if !r.roles.IsAdmin(userID) {
		return r.denied(userID)
	}
	inquiries, err := r.store.AllInquiries(ctx)
	if err != nil {
		return r.queryFailure(userID, err)
	}
	if len(inquiries) == 0 {
		return []models.Reply{{UserID: userID, Text: "Обращений пока нет."}}
	}

	var b strings.Builder
	b.WriteString("Список обращений:\n")
	for _, inq := range inquiries {
		fmt.Fprintf(&b, "Обращение #%d: Тема: %s, Статус: %s\n", inq.ID, inq.Topic, inq.Status)
	}
	return []models.Reply{{UserID: userID, Text: b.String()}}
}

// showInquiry displays one inquiry in full. Only the owner or an
// administrator may open it.
func (r *Router) showInquiry(ctx context.Context, userID int64, id uint) []models.Reply {
	inquiry, err := r.store.FindInquiry(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return []models.Reply{{UserID: userID, Text: "Обращение не найдено."}}
	}
	if err != nil {
		return r.queryFailure(userID, err)
	}
	if inquiry.TelegramID != userID && !r.roles.IsAdmin(userID) {
		return r.denied(userID)
	}
	return []models.Reply{{
		UserID: userID,
		Text: fmt.Sprintf("Тема: %s\nСтатус: %s\nСообщение: %s",
			inquiry.Topic, inquiry.Status, inquiry.Message),
	}}
}

func formatOrders(header string, orders []database.Order) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, o := range orders {
		fmt.Fprintf(&b, "Заказ #%d: %s, Количество: %s, Статус: %s\n",
			o.ID, o.Product, o.Quantity, o.Status)
	}
	return b.String()
}

func (r *Router) queryFailure(userID int64, err error) []models.Reply {
	log.Printf("query for user %d failed: %v", userID, err)
	return []models.Reply{{UserID: userID, Text: "Не удалось получить данные. Попробуйте позже."}}
}
