package validation

import "devconnector/internal/domain"

func Register(in domain.RegisterInput) Errors {
	errs := Errors{}

	switch {
	case isEmpty(in.Name):
		errs["name"] = "Name field is required"
	case !isLength(in.Name, 2, 30):
		errs["name"] = "Name must be between 2 and 30 characters"
	}

	switch {
	case isEmpty(in.Email):
		errs["email"] = "Email field is required"
	case !isEmail(in.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case isEmpty(in.Password):
		errs["password"] = "Password field is required"
	case !isLength(in.Password, 8, 30):
		errs["password"] = "Password must be between 8 and 30 characters"
	}

	switch {
	case isEmpty(in.Password2):
		errs["password2"] = "Confirm password field is required"
	case in.Password2 != in.Password:
		errs["password2"] = "Passwords must match"
	}
	return errs
}

func Login(in domain.LoginInput) Errors {
	errs := Errors{}

	switch {
	case isEmpty(in.Email):
		errs["email"] = "Email field is required"
	case !isEmail(in.Email):
		errs["email"] = "Email is invalid"
	}

	switch {
	case isEmpty(in.Password):
		errs["password"] = "Password field is required"
	case !isLength(in.Password, 8, 30):
		errs["password"] = "Password must be between 8 and 30 characters"
	}
	return errs
}

// Post 发帖与评论共用
func Post(in domain.PostInput) Errors {
	errs := Errors{}
	switch {
	case isEmpty(in.Text):
		errs["text"] = "Text field is required"
	case !isLength(in.Text, 2, 300):
		errs["text"] = "Text must be between 2 and 300 characters"
	}
	return errs
}

func Profile(in domain.ProfileInput) Errors {
	errs := Errors{}

	if !isEmpty(in.Handle) && !isLength(in.Handle, 2, 40) {
		errs["handle"] = "Handle needs to be between 2 and 40 characters"
	}
	if isEmpty(in.Status) {
		errs["status"] = "Status field is required"
	}
	// 只有逗号和空白时拆分结果为空，同样算缺失
	if len(SplitSkills(in.Skills)) == 0 {
		errs["skills"] = "Skills field is required"
	}

	urls := []struct{ field, value string }{
		{"website", in.Website},
		{"youtube", in.YouTube},
		{"twitter", in.Twitter},
		{"facebook", in.Facebook},
		{"instagram", in.Instagram},
		{"linkedin", in.LinkedIn},
	}
	for _, u := range urls {
		if !isEmpty(u.value) && !isURL(u.value) {
			errs[u.field] = "Not a valid URL"
		}
	}
	return errs
}

func Experience(in domain.ExperienceInput) Errors {
	errs := Errors{}

	if isEmpty(in.Title) {
		errs["title"] = "Job title field is required"
	}

	switch {
	case isEmpty(in.Company):
		errs["company"] = "Company field is required"
	case !isLength(in.Company, 2, 0):
		errs["company"] = "Company must be at least 2 characters"
	}

	checkDates(errs, in.From, in.To)
	return errs
}

func Education(in domain.EducationInput) Errors {
	errs := Errors{}

	if isEmpty(in.School) {
		errs["school"] = "School field is required"
	}
	if isEmpty(in.Degree) {
		errs["degree"] = "Degree field is required"
	}
	if isEmpty(in.FieldOfStudy) {
		errs["fieldofstudy"] = "Field of study field is required"
	}

	checkDates(errs, in.From, in.To)
	return errs
}

func checkDates(errs Errors, from, to string) {
	switch {
	case isEmpty(from):
		errs["from"] = "From date field is required"
	default:
		if _, ok := ParseDate(from); !ok {
			errs["from"] = "From date is invalid"
		}
	}
	if !isEmpty(to) {
		if _, ok := ParseDate(to); !ok {
			errs["to"] = "To date is invalid"
		}
	}
}
