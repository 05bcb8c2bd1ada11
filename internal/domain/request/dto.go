package request

import "time"

type CreateRequestDTO struct {
	RequestType string     `json:"request_type" binding:"required,oneof=budget_change keyword_add_delete ad_material_edit targeting_change report_request account_setting other"`
	Platform    string     `json:"platform" binding:"required,oneof=naver kakao google other"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=normal urgent critical"`
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"required"`
	DesiredDate *time.Time `json:"desired_date,omitempty"`
}

// UpdateRequestDTO rewrites client-editable content. Only honored while
// the request is still pending.
type UpdateRequestDTO struct {
	RequestType *string    `json:"request_type,omitempty" binding:"omitempty,oneof=budget_change keyword_add_delete ad_material_edit targeting_change report_request account_setting other"`
	Platform    *string    `json:"platform,omitempty" binding:"omitempty,oneof=naver kakao google other"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=normal urgent critical"`
	Title       *string    `json:"title,omitempty" binding:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	DesiredDate *time.Time `json:"desired_date,omitempty"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed on_hold"`
}

type AssignOperatorDTO struct {
	OperatorID uint `json:"operator_id" binding:"required"`
}
