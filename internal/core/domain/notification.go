package domain

import "time"

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

// Notification is a user-facing message about the outcome of a cart operation.
type Notification struct {
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	ProductID ProductID         `json:"product_id,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewSuccessNotification(productID ProductID, message string) Notification {
	return Notification{Level: NotificationSuccess, Message: message, ProductID: productID, CreatedAt: time.Now()}
}

func NewErrorNotification(productID ProductID, message string) Notification {
	return Notification{Level: NotificationError, Message: message, ProductID: productID, CreatedAt: time.Now()}
}

func (n *Notification) GetName() string {
	return "notification." + string(n.Level)
}

func (n *Notification) GetEntityName() string {
	return "notification"
}
