package bot

import (
	"ordersbot/models"
)

// ClientMenu is the reply keyboard shown to registered clients.
func ClientMenu() models.Keyboard {
	return models.ReplyKeyboard{
		Rows: [][]models.ReplyButton{
			{{Label: "Мои заказы"}},
			{{Label: "Обращения"}},
			{{Label: "Техническая поддержка"}},
		},
		Resize: true,
	}
}

// AdminMenu is the reply keyboard shown to administrators.
func AdminMenu() models.Keyboard {
	return models.ReplyKeyboard{
		Rows: [][]models.ReplyButton{
			{{Label: "Клиентские заказы"}, {Label: "Тикеты"}},
			{{Label: "Поддержка"}},
		},
		Resize: true,
	}
}

func orderOptions() models.Keyboard {
	return models.InlineKeyboard{
		Rows: [][]models.InlineButton{
			{{Label: "Создать заказ", Action: models.Action{Kind: models.ActionCreateOrder}}},
			{{Label: "Просмотреть мои заказы", Action: models.Action{Kind: models.ActionViewOrders}}},
		},
	}
}

func inquiryOptions() models.Keyboard {
	return models.InlineKeyboard{
		Rows: [][]models.InlineButton{
			{{Label: "Создать обращение", Action: models.Action{Kind: models.ActionCreateInquiry}}},
			{{Label: "Просмотреть обращения", Action: models.Action{Kind: models.ActionViewInquiries}}},
		},
	}
}
