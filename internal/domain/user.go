package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	Avatar       string    `bson:"avatar" json:"avatar"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"date" json:"date"`
}

// Summary 用于 profile 中回填 owner（name + avatar）
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
