package domain

import "time"

type Like struct {
	UserID string `bson:"user" json:"user"`
}

type Comment struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user" json:"user"`
	Text      string    `bson:"text" json:"text"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	CreatedAt time.Time `bson:"date" json:"date"`
}

// Post 的 name / avatar 是发帖时作者信息的快照
type Post struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user" json:"user"`
	Text      string    `bson:"text" json:"text"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar" json:"avatar"`
	Likes     []Like    `bson:"likes" json:"likes"`
	Comments  []Comment `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"date" json:"date"`
}

func (p *Post) LikedBy(userID string) bool {
	return p.likeIndex(userID) >= 0
}

func (p *Post) likeIndex(userID string) int {
	for i, l := range p.Likes {
		if l.UserID == userID {
			return i
		}
	}
	return -1
}

// Unlike 删除该用户的第一条 like
func (p *Post) Unlike(userID string) bool {
	i := p.likeIndex(userID)
	if i < 0 {
		return false
	}
	p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
	return true
}

func (p *Post) Comment(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

func (p *Post) RemoveComment(id string) bool {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			return true
		}
	}
	return false
}
