package flows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ordersbot/database"
	"ordersbot/models"
)

const (
	FlowRegistration = "registration"
	FlowOrder        = "order"
	FlowInquiry      = "inquiry"
)

const (
	msgStorageFailure = "Не удалось сохранить данные. Пожалуйста, попробуйте еще раз."
	msgInternalError  = "Что-то пошло не так. Попробуйте позже."
	hintNeedContact   = "Пожалуйста, отправьте контакт кнопкой ниже."
	hintNeedText      = "Пожалуйста, отправьте текстовое сообщение."
)

type RegistrationForm struct {
	Phone    string
	FullName string
}

type OrderForm struct {
	Product  string
	Quantity string
	Address  string
}

type InquiryForm struct {
	Topic   string
	Message string
}

// bindText validates a non-empty text event and stores it via assign.
func bindText(assign func(form any, text string)) func(any, models.Event) error {
	return func(form any, ev models.Event) error {
		msg, ok := ev.(models.TextEvent)
		if !ok {
			return ErrInvalidInput
		}
		text := strings.TrimSpace(msg.Text)
		if text == "" {
			return ErrInvalidInput
		}
		assign(form, text)
		return nil
	}
}

// Registration collects a shared contact and a full name, then creates
// the user. Re-entry by an already registered user still confirms.
func Registration(doneKeyboard models.Keyboard) *Flow {
	return &Flow{
		ID:      FlowRegistration,
		NewForm: func() any { return &RegistrationForm{} },
		Steps: []Step{
			{
				Prompt: "Добро пожаловать! Для начала, поделитесь своим контактным номером телефона.",
				Keyboard: models.ReplyKeyboard{
					Rows: [][]models.ReplyButton{
						{{Label: "Скинуть свой номер", RequestContact: true}},
					},
					Resize: true,
				},
				Hint: hintNeedContact,
				Bind: func(form any, ev models.Event) error {
					contact, ok := ev.(models.ContactEvent)
					if !ok || strings.TrimSpace(contact.Phone) == "" {
						return ErrInvalidInput
					}
					form.(*RegistrationForm).Phone = contact.Phone
					return nil
				},
			},
			{
				Prompt:   "Отлично! Теперь укажите Ваше ФИО.",
				Keyboard: models.RemoveKeyboard{},
				Hint:     hintNeedText,
				Bind: bindText(func(form any, text string) {
					form.(*RegistrationForm).FullName = text
				}),
			},
		},
		Commit: func(ctx context.Context, store *database.Store, userID int64, form any) (string, error) {
			f := form.(*RegistrationForm)
			_, err := store.CreateUser(ctx, userID, f.Phone, f.FullName)
			if err != nil && !errors.Is(err, database.ErrAlreadyExists) {
				return "", err
			}
			return fmt.Sprintf("Спасибо, %s! Вы успешно авторизованы.", f.FullName), nil
		},
		DoneKeyboard: doneKeyboard,
	}
}

// Order collects product, quantity and delivery address, then creates
// a pending order.
func Order(doneKeyboard models.Keyboard) *Flow {
	return &Flow{
		ID:      FlowOrder,
		NewForm: func() any { return &OrderForm{} },
		Steps: []Step{
			{
				Prompt: "Введите название товара:",
				Hint:   hintNeedText,
				Bind: bindText(func(form any, text string) {
					form.(*OrderForm).Product = text
				}),
			},
			{
				Prompt: "Введите количество товара:",
				Hint:   hintNeedText,
				Bind: bindText(func(form any, text string) {
					form.(*OrderForm).Quantity = text
				}),
			},
			{
				Prompt: "Введите адрес доставки:",
				Hint:   hintNeedText,
				Bind: bindText(func(form any, text string) {
					form.(*OrderForm).Address = text
				}),
			},
		},
		Commit: func(ctx context.Context, store *database.Store, userID int64, form any) (string, error) {
			f := form.(*OrderForm)
			if _, err := store.CreateOrder(ctx, userID, f.Product, f.Quantity, f.Address); err != nil {
				return "", err
			}
			return "Ваш заказ успешно создан!", nil
		},
		DoneKeyboard: doneKeyboard,
	}
}

// Inquiry collects a topic and a message body, then creates a pending
// support inquiry.
func Inquiry(doneKeyboard models.Keyboard) *Flow {
	return &Flow{
		ID:      FlowInquiry,
		NewForm: func() any { return &InquiryForm{} },
		Steps: []Step{
			{
				Prompt: "Введите тему вашего обращения:",
				Hint:   hintNeedText,
				Bind: bindText(func(form any, text string) {
					form.(*InquiryForm).Topic = text
				}),
			},
			{
				Prompt: "Тема обращения сохранена. Теперь введите текст вашего обращения:",
				Hint:   hintNeedText,
				Bind: bindText(func(form any, text string) {
					form.(*InquiryForm).Message = text
				}),
			},
		},
		Commit: func(ctx context.Context, store *database.Store, userID int64, form any) (string, error) {
			f := form.(*InquiryForm)
			if _, err := store.CreateInquiry(ctx, userID, f.Topic, f.Message); err != nil {
				return "", err
			}
			return "Обращение успешно создано!", nil
		},
		DoneKeyboard: doneKeyboard,
	}
}
