package domain

// 请求入参；缺失字段即空串。json + form 两种绑定

type RegisterInput struct {
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
	Password2 string `json:"password2" form:"password2"`
}

type LoginInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// PostInput 同时用于发帖与评论
type PostInput struct {
	Text   string `json:"text" form:"text"`
	Name   string `json:"name" form:"name"`
	Avatar string `json:"avatar" form:"avatar"`
}

type ProfileInput struct {
	Handle         string `json:"handle" form:"handle"`
	Company        string `json:"company" form:"company"`
	Website        string `json:"website" form:"website"`
	Location       string `json:"location" form:"location"`
	Status         string `json:"status" form:"status"`
	Bio            string `json:"bio" form:"bio"`
	GitHubUsername string `json:"githubusername" form:"githubusername"`
	Skills         string `json:"skills" form:"skills"` // 逗号分隔
	YouTube        string `json:"youtube" form:"youtube"`
	Twitter        string `json:"twitter" form:"twitter"`
	Facebook       string `json:"facebook" form:"facebook"`
	Instagram      string `json:"instagram" form:"instagram"`
	LinkedIn       string `json:"linkedin" form:"linkedin"`
}

type ExperienceInput struct {
	Title       string `json:"title" form:"title"`
	Company     string `json:"company" form:"company"`
	Location    string `json:"location" form:"location"`
	From        string `json:"from" form:"from"`
	To          string `json:"to" form:"to"`
	Current     bool   `json:"current" form:"current"`
	Description string `json:"description" form:"description"`
}

type EducationInput struct {
	School       string `json:"school" form:"school"`
	Degree       string `json:"degree" form:"degree"`
	FieldOfStudy string `json:"fieldofstudy" form:"fieldofstudy"`
	From         string `json:"from" form:"from"`
	To           string `json:"to" form:"to"`
	Current      bool   `json:"current" form:"current"`
	Description  string `json:"description" form:"description"`
}
