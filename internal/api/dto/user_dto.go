package dto

import "time"

// RegisterDTO 注册，角色创建后不可修改
type RegisterDTO struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email,max=100"`
	Password string  `json:"password" validate:"required,min=6,max=64"`
	Role     string  `json:"role" validate:"required,oneof=business pitcher"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

// CredentialDTO 登录
type CredentialDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenDTO struct {
	Token string `json:"token"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	RoleName  string    `json:"role_name"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
