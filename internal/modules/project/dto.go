package project

import "time"

type CreateProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	KWCapacity   float64 `json:"kw_capacity" binding:"required,gt=0"`
	SystemType   string  `json:"system_type" binding:"required"`
	DiscountRate float64 `json:"discount_rate"`
	VATRate      float64 `json:"vat_rate"`
	ProfitRate   float64 `json:"profit_rate"`
	ClientID     int64   `json:"client_id" binding:"required"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=OnGoing OnWork Finished"`
}

type AssignRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=facilitator installer admin"`
}

type CreateTaskRequest struct {
	TaskName     string     `json:"task_name" binding:"required"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	Duration     int        `json:"duration"`
	Predecessor  string     `json:"predecessor"`
	ParentID     *int64     `json:"parent_id"`
}

type UpdateTaskRequest struct {
	TaskName     string     `json:"task_name"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	Duration     int        `json:"duration"`
	Predecessor  string     `json:"predecessor"`
}
