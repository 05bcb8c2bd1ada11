package profile

type CreateProfileDTO struct {
	Email      string  `json:"email" form:"email" binding:"required,email,max=100"`
	Password   string  `json:"password" form:"password" binding:"required,min=6,max=72"`
	Name       string  `json:"name" form:"name" binding:"required,max=50"`
	Role       string  `json:"role" form:"role" binding:"required,oneof=client operator admin"`
	Department *string `json:"department,omitempty" form:"department,omitempty"`
}

type UpdateProfileDTO struct {
	Email      *string `json:"email,omitempty" binding:"omitempty,email,max=100"`
	Name       *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Role       *string `json:"role,omitempty" binding:"omitempty,oneof=client operator admin"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive"`
}

type ChangePasswordDTO struct {
	OldPassword *string `json:"old_password,omitempty"`
	NewPassword string  `json:"new_password" binding:"required,min=6,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}
