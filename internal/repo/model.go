package repo

import (
	"time"

	"devconnector/internal/domain"
)

// 文档里的内嵌序列（experience / likes / comments ...）以 JSON 列整体存取

type UserModel struct {
	ID           string `gorm:"primaryKey;type:varchar(24)"`
	Name         string `gorm:"size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	Avatar       string `gorm:"size:255"`
	Role         string `gorm:"size:16;not null;default:user"`
	CreatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

func toUserModel(u *domain.User) *UserModel {
	return &UserModel{
		ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		Avatar: u.Avatar, Role: u.Role, CreatedAt: u.CreatedAt,
	}
}

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID: m.ID, Name: m.Name, Email: m.Email, PasswordHash: m.PasswordHash,
		Avatar: m.Avatar, Role: m.Role, CreatedAt: m.CreatedAt,
	}
}

type ProfileModel struct {
	ID             string              `gorm:"primaryKey;type:varchar(24)"`
	UserID         string              `gorm:"uniqueIndex;type:varchar(24);not null"`
	Handle         string              `gorm:"index;size:64"`
	Company        string              `gorm:"size:255"`
	Website        string              `gorm:"size:255"`
	Location       string              `gorm:"size:255"`
	Status         string              `gorm:"size:255"`
	Bio            string              `gorm:"type:text"`
	GitHubUsername string              `gorm:"size:64"`
	Skills         []string            `gorm:"serializer:json;type:text"`
	Social         domain.Social       `gorm:"serializer:json;type:text"`
	Experience     []domain.Experience `gorm:"serializer:json;type:text"`
	Education      []domain.Education  `gorm:"serializer:json;type:text"`
	CreatedAt      time.Time
}

func (ProfileModel) TableName() string { return "profiles" }

func toProfileModel(p *domain.Profile) *ProfileModel {
	return &ProfileModel{
		ID: p.ID, UserID: p.UserID, Handle: p.Handle, Company: p.Company,
		Website: p.Website, Location: p.Location, Status: p.Status, Bio: p.Bio,
		GitHubUsername: p.GitHubUsername, Skills: p.Skills, Social: p.Social,
		Experience: p.Experience, Education: p.Education, CreatedAt: p.CreatedAt,
	}
}

func (m *ProfileModel) toDomain() *domain.Profile {
	return &domain.Profile{
		ID: m.ID, UserID: m.UserID, Handle: m.Handle, Company: m.Company,
		Website: m.Website, Location: m.Location, Status: m.Status, Bio: m.Bio,
		GitHubUsername: m.GitHubUsername, Skills: m.Skills, Social: m.Social,
		Experience: m.Experience, Education: m.Education, CreatedAt: m.CreatedAt,
	}
}

type PostModel struct {
	ID        string           `gorm:"primaryKey;type:varchar(24)"`
	UserID    string           `gorm:"index;type:varchar(24);not null"`
	Text      string           `gorm:"type:text;not null"`
	Name      string           `gorm:"size:64"`
	Avatar    string           `gorm:"size:255"`
	Likes     []domain.Like    `gorm:"serializer:json;type:text"`
	Comments  []domain.Comment `gorm:"serializer:json;type:text"`
	CreatedAt time.Time        `gorm:"index"`
}

func (PostModel) TableName() string { return "posts" }

func toPostModel(p *domain.Post) *PostModel {
	return &PostModel{
		ID: p.ID, UserID: p.UserID, Text: p.Text, Name: p.Name, Avatar: p.Avatar,
		Likes: p.Likes, Comments: p.Comments, CreatedAt: p.CreatedAt,
	}
}

func (m *PostModel) toDomain() *domain.Post {
	return &domain.Post{
		ID: m.ID, UserID: m.UserID, Text: m.Text, Name: m.Name, Avatar: m.Avatar,
		Likes: m.Likes, Comments: m.Comments, CreatedAt: m.CreatedAt,
	}
}

// Models 供 AutoMigrate 使用
func Models() []any { return []any{&UserModel{}, &ProfileModel{}, &PostModel{}} }
