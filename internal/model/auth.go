package model

// LoginRequest 登入請求；vendor 可附帶 event_id 換取場次權杖
type LoginRequest struct {
	Role     Role   `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
	EventID  *int   `json:"event_id"`
}

// LoginResponse 登入成功回應
type LoginResponse struct {
	Message string      `json:"message"`
	Role    Role        `json:"role"`
	Access  AccessScope `json:"access"`
	EventID *int        `json:"event_id,omitempty"`
	Token   string      `json:"token"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type UpdateVendorPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
