package inventory

type CreateItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"gte=0"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type UpdateItemRequest struct {
	Name      string   `json:"name"`
	Quantity  *int     `json:"quantity" binding:"omitempty,gte=0"`
	Unit      string   `json:"unit"`
	UnitPrice *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

type SubmitRequisitionRequest struct {
	ProjectID int64  `json:"project_id" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=material equipment"`
	ItemID    int64  `json:"item_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason"`
}
