package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email        string `json:"email" form:"email" validate:"required,email" example:"alice@example.com"`
	Password     string `json:"password" form:"password" validate:"required,min=6" example:"Secret123!"`
	Name         string `json:"name" form:"name" validate:"required" example:"Alice"`
	WorkingGroup string `json:"working_group" form:"working_group" validate:"required,working_group" example:"Smart Click"`
}

// swagger:model api.RegisterResponse
type RegisterResponse struct {
	Message string `json:"message" example:"Registration successful. Waiting for admin approval."`
	IsAdmin bool   `json:"is_admin" example:"false"`
}
