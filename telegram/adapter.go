package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ordersbot/bot"
	"ordersbot/models"
)

// Adapter connects the transport-free router to the Telegram Bot API:
// long-polls for updates, converts them into router events and renders
// the router's replies back into Bot API calls.
type Adapter struct {
	api     *tgbotapi.BotAPI
	router  *bot.Router
	timeout int
}

func New(token string, router *bot.Router, updateTimeout int, debug bool) (*Adapter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	api.Debug = debug
	log.Printf("Authorized on account %s", api.Self.UserName)
	return &Adapter{api: api, router: router, timeout: updateTimeout}, nil
}

// Run consumes updates until ctx is done. Each update is handled on its
// own goroutine; the router serializes per user internally.
func (a *Adapter) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = a.timeout
	u.AllowedUpdates = []string{tgbotapi.UpdateTypeMessage, tgbotapi.UpdateTypeCallbackQuery}

	updates := a.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			a.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go guard(func() { a.handleUpdate(ctx, update) })
		}
	}
}

// guard keeps a panicking handler from taking the process down; every
// failure stays scoped to its own update.
func guard(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("recovered from handler panic: %v", r)
		}
	}()
	fn()
}

func (a *Adapter) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var replies []models.Reply

	switch {
	case update.Message != nil && update.Message.Contact != nil:
		replies = a.router.OnContact(ctx, update.Message.From.ID, update.Message.Contact.PhoneNumber)
	case update.Message != nil:
		replies = a.router.OnText(ctx, update.Message.From.ID, update.Message.Text)
	case update.CallbackQuery != nil:
		// Acknowledge first so the button stops spinning.
		if _, err := a.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			log.Printf("answer callback: %v", err)
		}
		replies = a.router.OnCallback(ctx, update.CallbackQuery.From.ID, update.CallbackQuery.Data)
	default:
		return
	}

	for _, reply := range replies {
		a.send(reply)
	}
}

func (a *Adapter) send(reply models.Reply) {
	msg := tgbotapi.NewMessage(reply.UserID, reply.Text)
	if markup := renderKeyboard(reply.Keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := a.api.Send(msg); err != nil {
		log.Printf("send to %d: %v", reply.UserID, err)
	}
}

func renderKeyboard(kb models.Keyboard) interface{} {
	switch k := kb.(type) {
	case models.ReplyKeyboard:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(k.Rows))
		for _, row := range k.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, b := range row {
				if b.RequestContact {
					buttons = append(buttons, tgbotapi.NewKeyboardButtonContact(b.Label))
				} else {
					buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Label))
				}
			}
			rows = append(rows, buttons)
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = k.Resize
		return markup
	case models.InlineKeyboard:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(k.Rows))
		for _, row := range k.Rows {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action.Encode()))
			}
			rows = append(rows, buttons)
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	case models.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(false)
	default:
		return nil
	}
}
