package domain

import "time"

type ProjectStatus string

const (
	ProjectOnGoing  ProjectStatus = "OnGoing"
	ProjectOnWork   ProjectStatus = "OnWork"
	ProjectFinished ProjectStatus = "Finished"
)

// Project is the authoritative lifecycle record for one installation.
// Status drives whether its tasks can be worked at all.
type Project struct {
	ID             int64         `gorm:"primaryKey" json:"id"`
	Name           string        `gorm:"not null" json:"name"`
	Description    string        `gorm:"type:text" json:"description"`
	Status         ProjectStatus `gorm:"type:varchar(20);default:'OnGoing';index" json:"status"`
	KWCapacity     float64       `json:"kw_capacity"`
	SystemType     string        `json:"system_type"`
	DiscountRate   float64       `json:"discount_rate"`
	VATRate        float64       `json:"vat_rate"`
	ProfitRate     float64       `json:"profit_rate"`
	ClientID       int64         `gorm:"index" json:"client_id"`
	Demobilization bool          `gorm:"default:false" json:"demobilization"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

type WorkLogRole string

const (
	WorkRoleFacilitator WorkLogRole = "facilitator"
	WorkRoleInstaller   WorkLogRole = "installer"
	WorkRoleAdmin       WorkLogRole = "admin"
)

// ProjectWorkLog links a project to an assigned worker.
type ProjectWorkLog struct {
	ID         int64       `gorm:"primaryKey" json:"id"`
	ProjectID  int64       `gorm:"index;not null" json:"project_id"`
	UserID     int64       `gorm:"index;not null" json:"user_id"`
	Role       WorkLogRole `gorm:"type:varchar(20)" json:"role"`
	AssignedAt time.Time   `json:"assigned_at"`
	WorkStart  *time.Time  `json:"work_start,omitempty"`
	WorkEnd    *time.Time  `json:"work_end,omitempty"`
}

func (ProjectWorkLog) TableName() string { return "project_work_logs" }
