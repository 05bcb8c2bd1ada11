package client

type CreateClientDTO struct {
	UserID             *uint   `json:"user_id,omitempty"`
	DepartmentName     string  `json:"department_name" binding:"required,max=100"`
	ContactName        string  `json:"contact_name" binding:"required,max=50"`
	Email              string  `json:"email" binding:"required,email,max=100"`
	Phone              *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	AssignedOperatorID *uint   `json:"assigned_operator_id,omitempty"`
}

type UpdateClientDTO struct {
	UserID             *uint   `json:"user_id,omitempty"`
	DepartmentName     *string `json:"department_name,omitempty" binding:"omitempty,max=100"`
	ContactName        *string `json:"contact_name,omitempty" binding:"omitempty,max=50"`
	Email              *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Phone              *string `json:"phone,omitempty" binding:"omitempty,max=30"`
	Status             *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
	AssignedOperatorID *uint   `json:"assigned_operator_id,omitempty"`
}
