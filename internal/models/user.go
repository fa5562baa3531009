package models

import "gorm.io/gorm"

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	AvatarURL   string `json:"avatar_url,omitempty"`
	AvatarColor string `json:"avatar_color,omitempty"`
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
}

// UserCompact is the trimmed-down representation embedded in enriched
// responses (notification actors, comment authors).
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

// ToCompact returns the compact representation of the user
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		Nickname:    u.Nickname,
		AvatarURL:   u.AvatarURL,
		AvatarColor: u.AvatarColor,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Nickname    string `json:"nickname" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AvatarColor string `json:"avatar_color,omitempty"`
}

type UpdateUserRequest struct {
	Nickname    string `json:"nickname,omitempty" validate:"omitempty,min=2,max=50"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AvatarColor string `json:"avatar_color,omitempty"`
}
