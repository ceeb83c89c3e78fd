package domain

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleFacilitator UserRole = "facilitator"
	RoleInstaller   UserRole = "installer"
	RoleClient      UserRole = "client"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);index" json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

// UserLog is one audit trail row, written after every externally
// visible mutation.
type UserLog struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserEmail  string    `gorm:"index" json:"user_email"`
	Action     string    `json:"action"`
	EntityName string    `json:"entity_name"`
	EntityID   int64     `json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
}

func (UserLog) TableName() string { return "user_logs" }
