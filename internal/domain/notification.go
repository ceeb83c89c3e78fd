package domain

import "time"

type NotificationType string

const (
	NotifTaskUpdate    NotificationType = "Task Update"
	NotifProjectUpdate NotificationType = "Project Update"
	NotifPayment       NotificationType = "Payment"
	NotifRequisition   NotificationType = "Requisition"
)

type Notification struct {
	ID        int64            `gorm:"primaryKey" json:"id"`
	ProjectID int64            `gorm:"index;not null" json:"project_id"`
	Title     string           `json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	Type      NotificationType `gorm:"type:varchar(30);index" json:"type"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
