package domain

import "time"

type Social struct {
	YouTube   string `bson:"youtube" json:"youtube,omitempty"`
	Twitter   string `bson:"twitter" json:"twitter,omitempty"`
	Facebook  string `bson:"facebook" json:"facebook,omitempty"`
	Instagram string `bson:"instagram" json:"instagram,omitempty"`
	LinkedIn  string `bson:"linkedin" json:"linkedin,omitempty"`
}

type Experience struct {
	ID          string     `bson:"_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Company     string     `bson:"company" json:"company"`
	Location    string     `bson:"location" json:"location"`
	From        time.Time  `bson:"from" json:"from"`
	To          *time.Time `bson:"to,omitempty" json:"to"`
	Current     bool       `bson:"current" json:"current"`
	Description string     `bson:"description" json:"description"`
}

type Education struct {
	ID           string     `bson:"_id" json:"id"`
	School       string     `bson:"school" json:"school"`
	Degree       string     `bson:"degree" json:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy" json:"fieldofstudy"`
	From         time.Time  `bson:"from" json:"from"`
	To           *time.Time `bson:"to,omitempty" json:"to"`
	Current      bool       `bson:"current" json:"current"`
	Description  string     `bson:"description" json:"description"`
}

// Profile 与 User 一对一；experience / education 内嵌，新条目在前
type Profile struct {
	ID             string       `bson:"_id" json:"id"`
	UserID         string       `bson:"user" json:"userId"`
	User           *UserSummary `bson:"-" json:"user,omitempty"`
	Handle         string       `bson:"handle" json:"handle"`
	Company        string       `bson:"company" json:"company"`
	Website        string       `bson:"website" json:"website"`
	Location       string       `bson:"location" json:"location"`
	Status         string       `bson:"status" json:"status"`
	Bio            string       `bson:"bio" json:"bio"`
	GitHubUsername string       `bson:"githubusername" json:"githubusername"`
	Skills         []string     `bson:"skills" json:"skills"`
	Social         Social       `bson:"social" json:"social"`
	Experience     []Experience `bson:"experience" json:"experience"`
	Education      []Education  `bson:"education" json:"education"`
	CreatedAt      time.Time    `bson:"date" json:"date"`
}

// RemoveExperience 按 id 删除；不存在时返回 false，序列不变
func (p *Profile) RemoveExperience(id string) bool {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) RemoveEducation(id string) bool {
	for i := range p.Education {
		if p.Education[i].ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}
