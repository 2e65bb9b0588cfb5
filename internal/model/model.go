package model

type EmailNotification struct {
	To       string
	Subject  string
	Template string         // имя шаблона (например, "order_placed")
	Data     map[string]any // данные для шаблона
}
