package dto

import "time"

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=20"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	Nickname string `json:"nickname" validate:"omitempty,max=50"`
}

type CredentialDTO struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password" validate:"required"`
}

type TokenDTO struct {
	Token  string `json:"token"`
	UserID uint64 `json:"user_id"`
}

// UserDTO 用户主页信息
type UserDTO struct {
	UserID         uint64     `json:"user_id"`
	Username       string     `json:"username"`
	Nickname       string     `json:"nickname"`
	AvatarURL      string     `json:"avatar_url"`
	Bio            string     `json:"bio"`
	PostCount      int64      `json:"post_count"`
	FollowerCount  int64      `json:"follower_count"`
	FollowingCount int64      `json:"following_count"`
	IsFollowing    bool       `json:"is_following"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// UserCardDTO 列表场景的用户摘要
type UserCardDTO struct {
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio,omitempty"`
}

type UpdateUserDTO struct {
	Nickname  *string `json:"nickname" validate:"omitempty,max=50"`
	Bio       *string `json:"bio" validate:"omitempty,max=255"`
	AvatarURL *string `json:"avatar_url"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=64"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordDTO struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=64"`
}
