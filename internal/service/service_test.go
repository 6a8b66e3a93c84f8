package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"devconnector/internal/core/auth"
	"devconnector/internal/domain"
	"devconnector/internal/repo/memory"
	"devconnector/pkg/utils"
)

type fixture struct {
	store    *memory.Store
	auth     *AuthService
	profiles *ProfileService
	posts    *PostService
	users    *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "devconnector", TTL: time.Hour}
	return &fixture{
		store:    st,
		auth:     NewAuthService(st.Users(), utils.BcryptHasher{Cost: 4}, jwter, nil, nil),
		profiles: NewProfileService(st.Profiles(), st.Users(), nil),
		posts:    NewPostService(st.Posts(), nil, nil),
		users:    NewUserService(st.Users(), st.Profiles(), nil),
	}
}

func (f *fixture) register(t *testing.T, name, email string) *domain.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), domain.RegisterInput{
		Name: name, Email: email, Password: "password1", Password2: "password1",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

func wantCode(t *testing.T, err error, code int, field string) {
	t.Helper()
	de, ok := domain.AsError(err)
	if !ok {
		t.Fatalf("err = %v, want *domain.Error", err)
	}
	if de.Code != code {
		t.Fatalf("code = %d, want %d (%v)", de.Code, code, err)
	}
	if _, ok := de.Fields[field]; !ok {
		t.Fatalf("fields = %v, want key %q", de.Fields, field)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	u := f.register(t, "Ann", "ann@x.com")
	if u.PasswordHash != "" {
		t.Fatal("password hash leaked from Register")
	}
	if u.Avatar != utils.Gravatar("ann@x.com") {
		t.Fatalf("avatar = %q", u.Avatar)
	}

	_, err := f.auth.Register(ctx, domain.RegisterInput{
		Name: "Ann", Email: "ann@x.com", Password: "password1", Password2: "password1",
	})
	de, _ := domain.AsError(err)
	if de == nil || de.Code != http.StatusBadRequest || de.Fields["email"] != "Email already exists" {
		t.Fatalf("second register err = %v", err)
	}

	tok, err := f.auth.Login(ctx, domain.LoginInput{Email: "ann@x.com", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.auth.ResolvePrincipal(ctx, "Bearer "+tok)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != u.ID {
		t.Fatalf("principal = %s, want %s", p.ID, u.ID)
	}
}

func TestLoginFailuresAreOpaque(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "Ann", "ann@x.com")

	_, errUnknown := f.auth.Login(ctx, domain.LoginInput{Email: "bob@x.com", Password: "password1"})
	_, errWrong := f.auth.Login(ctx, domain.LoginInput{Email: "ann@x.com", Password: "password2"})

	a, _ := domain.AsError(errUnknown)
	b, _ := domain.AsError(errWrong)
	if a == nil || b == nil {
		t.Fatalf("errs = %v / %v", errUnknown, errWrong)
	}
	if a.Fields["email"] != b.Fields["email"] || a.Code != b.Code {
		t.Fatalf("login failures differ: %v vs %v", a.Fields, b.Fields)
	}
	if !errors.Is(errUnknown, ErrUserNotFound) || !errors.Is(errWrong, ErrPasswordMismatch) {
		t.Fatal("causes not distinguishable via errors.Is")
	}
}

func TestResolvePrincipalRejects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "ann@x.com")
	tok, err := f.auth.Login(ctx, domain.LoginInput{Email: "ann@x.com", Password: "password1"})
	if err != nil {
		t.Fatal(err)
	}

	for _, bad := range []string{"", "Bearer ", "Bearer not.a.token", tok + "x"} {
		if _, err := f.auth.ResolvePrincipal(ctx, bad); err == nil {
			t.Fatalf("token %q accepted", bad)
		} else {
			wantCode(t, err, http.StatusUnauthorized, "unauthorized")
		}
	}

	for _, good := range []string{tok, "Bearer " + tok, "bearer " + tok, "BEARER  " + tok} {
		if p, err := f.auth.ResolvePrincipal(ctx, good); err != nil || p.ID != u.ID {
			t.Fatalf("header %q: principal = %+v, err = %v", good[:6], p, err)
		}
	}

	if err := f.users.Delete(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	_, err = f.auth.ResolvePrincipal(ctx, tok)
	wantCode(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestProfileUpsertAndEntries(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")

	if _, err := f.profiles.GetOwn(ctx, ann); err == nil {
		t.Fatal("expected no profile")
	}

	p, err := f.profiles.Upsert(ctx, ann, domain.ProfileInput{
		Handle: "ann", Status: "Developer", Skills: "go, sql ,k8s", Website: "ann.dev",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Skills; len(got) != 3 || got[1] != "sql" {
		t.Fatalf("skills = %q", got)
	}
	if p.User == nil || p.User.Name != "Ann" {
		t.Fatalf("owner not populated: %+v", p.User)
	}

	p, err = f.profiles.AddExperience(ctx, ann, domain.ExperienceInput{Title: "Eng", Company: "Acme", From: "2020-01-02"})
	if err != nil {
		t.Fatal(err)
	}
	p, err = f.profiles.AddExperience(ctx, ann, domain.ExperienceInput{Title: "Lead", Company: "Acme", From: "2022-01-02"})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Experience) != 2 || p.Experience[0].Title != "Lead" {
		t.Fatalf("experience not prepended: %+v", p.Experience)
	}

	// 更新保留 experience，其余字段整体覆盖
	p, err = f.profiles.Upsert(ctx, ann, domain.ProfileInput{Handle: "ann", Status: "Lead", Skills: "go"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Website != "" || len(p.Experience) != 2 {
		t.Fatalf("update = %+v", p)
	}

	p, err = f.profiles.RemoveExperience(ctx, ann, utils.NewID())
	if err != nil || len(p.Experience) != 2 {
		t.Fatalf("absent id removal: %v %d", err, len(p.Experience))
	}
	p, err = f.profiles.RemoveExperience(ctx, ann, p.Experience[1].ID)
	if err != nil || len(p.Experience) != 1 || p.Experience[0].Title != "Lead" {
		t.Fatalf("remove: %v %+v", err, p.Experience)
	}

	_, err = f.profiles.RemoveEducation(ctx, ann, "nope")
	wantCode(t, err, http.StatusBadRequest, "edu_id")

	got, err := f.profiles.GetByHandle(ctx, "ann")
	if err != nil || got.UserID != ann.ID {
		t.Fatalf("by handle: %v", err)
	}
	_, err = f.profiles.GetByUserID(ctx, "bad")
	wantCode(t, err, http.StatusBadRequest, "user_id")
}

func TestProfileHandleConflict(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")
	bob := f.register(t, "Bob", "bob@x.com")

	if _, err := f.profiles.Upsert(ctx, ann, domain.ProfileInput{Handle: "dev", Status: "x", Skills: "go"}); err != nil {
		t.Fatal(err)
	}
	_, err := f.profiles.Upsert(ctx, bob, domain.ProfileInput{Handle: "dev", Status: "x", Skills: "go"})
	wantCode(t, err, http.StatusBadRequest, "handle")

	if _, err := f.profiles.Upsert(ctx, bob, domain.ProfileInput{Handle: "bob", Status: "x", Skills: "go"}); err != nil {
		t.Fatal(err)
	}
	_, err = f.profiles.Upsert(ctx, bob, domain.ProfileInput{Handle: "dev", Status: "x", Skills: "go"})
	wantCode(t, err, http.StatusBadRequest, "handle")
}

// 并发创建同一 handle：先查后写不是原子的，可能不止一个成功
func TestProfileHandleRaceIsDocumented(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	const n = 8
	users := make([]*domain.User, n)
	for i := range users {
		users[i] = f.register(t, "User", utils.NewID()+"@x.com")
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.profiles.Upsert(ctx, users[i], domain.ProfileInput{Handle: "same", Status: "x", Skills: "go"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		wantCode(t, err, http.StatusBadRequest, "handle")
	}
	if ok < 1 {
		t.Fatal("no profile created")
	}
	t.Logf("%d of %d concurrent creates succeeded", ok, n)
}

func TestDeleteOwnRemovesProfileAndUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")
	if _, err := f.profiles.Upsert(ctx, ann, domain.ProfileInput{Status: "x", Skills: "go"}); err != nil {
		t.Fatal(err)
	}
	if err := f.profiles.DeleteOwn(ctx, ann); err != nil {
		t.Fatal(err)
	}
	if u, _ := f.store.Users().FindByID(ctx, ann.ID); u != nil {
		t.Fatal("user still present")
	}
	all, err := f.profiles.ListAll(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("profiles = %v %v", all, err)
	}
}

func TestPostLikes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")

	p, err := f.posts.Create(ctx, ann, domain.PostInput{Text: "hello world"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Ann" || p.Avatar != ann.Avatar {
		t.Fatalf("byline = %q %q", p.Name, p.Avatar)
	}

	if _, err := f.posts.Unlike(ctx, ann, p.ID); err == nil {
		t.Fatal("unlike before like succeeded")
	} else {
		wantCode(t, err, http.StatusBadRequest, "notliked")
	}
	if _, err := f.posts.Like(ctx, ann, p.ID); err != nil {
		t.Fatal(err)
	}
	_, err = f.posts.Like(ctx, ann, p.ID)
	wantCode(t, err, http.StatusBadRequest, "alreadyliked")

	p, err = f.posts.Unlike(ctx, ann, p.ID)
	if err != nil || len(p.Likes) != 0 {
		t.Fatalf("unlike: %v %v", err, p.Likes)
	}
}

func TestPostDeleteOnlyByAuthor(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")
	bob := f.register(t, "Bob", "bob@x.com")

	p, err := f.posts.Create(ctx, ann, domain.PostInput{Text: "hello world", Name: "Annie"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Annie" {
		t.Fatalf("name = %q", p.Name)
	}
	err = f.posts.Delete(ctx, bob, p.ID)
	wantCode(t, err, http.StatusForbidden, "unauthorized")

	_, err = f.posts.GetByID(ctx, "bad")
	wantCode(t, err, http.StatusBadRequest, "post_id")
	_, err = f.posts.GetByID(ctx, utils.NewID())
	wantCode(t, err, http.StatusNotFound, "nopost")

	if err := f.posts.Delete(ctx, ann, p.ID); err != nil {
		t.Fatal(err)
	}
	all, _ := f.posts.ListAll(ctx)
	if len(all) != 0 {
		t.Fatalf("posts = %d", len(all))
	}
}

func TestPostComments(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")
	bob := f.register(t, "Bob", "bob@x.com")
	eve := f.register(t, "Eve", "eve@x.com")

	p, err := f.posts.Create(ctx, ann, domain.PostInput{Text: "hello world"})
	if err != nil {
		t.Fatal(err)
	}
	p, err = f.posts.AddComment(ctx, bob, p.ID, domain.PostInput{Text: "hi"})
	if err != nil {
		t.Fatal(err)
	}
	cid := p.Comments[0].ID

	// 不存在的评论 id 是 no-op
	p, err = f.posts.RemoveComment(ctx, bob, p.ID, utils.NewID())
	if err != nil || len(p.Comments) != 1 {
		t.Fatalf("absent comment: %v %d", err, len(p.Comments))
	}
	_, err = f.posts.RemoveComment(ctx, bob, p.ID, "bad")
	wantCode(t, err, http.StatusBadRequest, "comment_id")

	_, err = f.posts.RemoveComment(ctx, eve, p.ID, cid)
	wantCode(t, err, http.StatusForbidden, "unauthorized")

	// 帖子作者可以删别人的评论
	p, err = f.posts.RemoveComment(ctx, ann, p.ID, cid)
	if err != nil || len(p.Comments) != 0 {
		t.Fatalf("remove by post author: %v %d", err, len(p.Comments))
	}
}

// 读-改-写整文档：拿着旧副本保存会覆盖中间的更新
func TestPostLastWriteWins(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")
	bob := f.register(t, "Bob", "bob@x.com")

	p, err := f.posts.Create(ctx, ann, domain.PostInput{Text: "hello world"})
	if err != nil {
		t.Fatal(err)
	}
	stale, _ := f.store.Posts().FindByID(ctx, p.ID)

	if _, err := f.posts.Like(ctx, bob, p.ID); err != nil {
		t.Fatal(err)
	}
	stale.Likes = append([]domain.Like{{UserID: ann.ID}}, stale.Likes...)
	if err := f.store.Posts().Save(ctx, stale); err != nil {
		t.Fatal(err)
	}

	got, _ := f.posts.GetByID(ctx, p.ID)
	if len(got.Likes) != 1 || got.Likes[0].UserID != ann.ID {
		t.Fatalf("likes = %+v, want only the last writer's", got.Likes)
	}
}

func TestUserServiceListAndDelete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	ann := f.register(t, "Ann", "ann@x.com")
	f.register(t, "Bob", "bob@x.com")

	page, err := f.users.List(ctx, 0, 0, "ann")
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != ann.ID || page.Items[0].PasswordHash != "" {
		t.Fatalf("page = %+v", page)
	}

	err = f.users.Delete(ctx, utils.NewID())
	wantCode(t, err, http.StatusNotFound, "nouser")
	if err := f.users.Delete(ctx, ann.ID); err != nil {
		t.Fatal(err)
	}
	page, _ = f.users.List(ctx, 0, 10, "")
	if page.Total != 1 {
		t.Fatalf("total = %d", page.Total)
	}
}

func TestProfileEntriesRequireProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "ann@x.com")

	cases := []struct {
		name string
		call func() (*domain.Profile, error)
	}{
		{"add experience", func() (*domain.Profile, error) {
			return f.profiles.AddExperience(ctx, u, domain.ExperienceInput{Title: "Dev", Company: "Acme", From: "2020-01-01"})
		}},
		{"add education", func() (*domain.Profile, error) {
			return f.profiles.AddEducation(ctx, u, domain.EducationInput{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2010-09-01"})
		}},
		{"remove experience", func() (*domain.Profile, error) {
			return f.profiles.RemoveExperience(ctx, u, utils.NewID())
		}},
		{"remove education", func() (*domain.Profile, error) {
			return f.profiles.RemoveEducation(ctx, u, utils.NewID())
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := tc.call()
			if p != nil {
				t.Fatalf("profile = %+v, want nil", p)
			}
			wantCode(t, err, http.StatusNotFound, "noprofile")
		})
	}
}

func TestPostActionsOnMissingPost(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "ann@x.com")
	missing := utils.NewID()

	cases := []struct {
		name string
		call func() (*domain.Post, error)
	}{
		{"like", func() (*domain.Post, error) { return f.posts.Like(ctx, u, missing) }},
		{"unlike", func() (*domain.Post, error) { return f.posts.Unlike(ctx, u, missing) }},
		{"comment", func() (*domain.Post, error) {
			return f.posts.AddComment(ctx, u, missing, domain.PostInput{Text: "hello"})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.call()
			wantCode(t, err, http.StatusNotFound, "nopost")
		})
	}
}

// 删帖只看作者 id，不要求作者有资料
func TestPostDeleteWithoutProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	u := f.register(t, "Ann", "ann@x.com")

	p, err := f.posts.Create(ctx, u, domain.PostInput{Text: "hello"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.profiles.GetOwn(ctx, u); err == nil {
		t.Fatal("fixture user unexpectedly has a profile")
	}
	if err := f.posts.Delete(ctx, u, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = f.posts.GetByID(ctx, p.ID)
	wantCode(t, err, http.StatusNotFound, "nopost")
}
