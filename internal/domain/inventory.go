package domain

import "time"

// Material is a consumable stock item (cable, rail, fasteners).
type Material struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Quantity  int       `gorm:"default:0" json:"quantity"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Material) TableName() string { return "materials" }

// Equipment is a durable stock item (inverters, panels, tooling).
type Equipment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	Quantity  int       `gorm:"default:0" json:"quantity"`
	Unit      string    `json:"unit"`
	UnitPrice float64   `json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Equipment) TableName() string { return "equipments" }

type RequisitionStatus string

const (
	RequisitionPending  RequisitionStatus = "Pending"
	RequisitionApproved RequisitionStatus = "Approved"
	RequisitionDeclined RequisitionStatus = "Declined"
)

type RequisitionKind string

const (
	RequisitionMaterial  RequisitionKind = "material"
	RequisitionEquipment RequisitionKind = "equipment"
)

// Requisition is one request for stock, raised by a facilitator for a
// project and decided by an admin.
type Requisition struct {
	ID          int64             `gorm:"primaryKey" json:"id"`
	ProjectID   int64             `gorm:"index" json:"project_id"`
	Kind        RequisitionKind   `gorm:"type:varchar(20)" json:"kind"`
	ItemID      int64             `gorm:"index;not null" json:"item_id"`
	ItemName    string            `json:"item_name"`
	Quantity    int               `gorm:"not null" json:"quantity"`
	Reason      string            `gorm:"type:text" json:"reason"`
	Status      RequisitionStatus `gorm:"type:varchar(20);default:'Pending';index" json:"status"`
	RequestedBy string            `json:"requested_by"`
	DecidedBy   string            `json:"decided_by,omitempty"`
	DecidedAt   *time.Time        `json:"decided_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (Requisition) TableName() string { return "requisitions" }
