package domain

import "time"

// Payment is one installment of a project's 60/30/10 split. ID is the
// payment gateway's intent reference; settlement state lives at the
// gateway and is read through the payment service.
type Payment struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	ProjectID      int64      `gorm:"index;not null" json:"project_id"`
	CheckoutURL    string     `gorm:"type:text" json:"checkout_url"`
	Percent        int        `json:"percent"`
	Amount         float64    `json:"amount"`
	Acknowledged   bool       `gorm:"default:false" json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	CashPayment    bool       `gorm:"default:false" json:"cash_payment"`
	CashPaidAt     *time.Time `json:"cash_paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
