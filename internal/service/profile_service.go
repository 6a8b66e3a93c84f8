package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"devconnector/internal/domain"
	"devconnector/internal/validation"
	"devconnector/pkg/utils"
)

func errNoProfile() error { return domain.NotFound("noprofile", "Profile not found") }

type ProfileService struct {
	profiles domain.ProfileRepository
	users    domain.UserRepository
	log      *zap.Logger
	now      func() time.Time
}

func NewProfileService(profiles domain.ProfileRepository, users domain.UserRepository, log *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, log: nopIfNil(log), now: time.Now}
}

// populate 回填 owner 的 name / avatar；owner 已不存在时保持 nil
func (s *ProfileService) populate(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	u, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("find profile owner: %w", err)
	}
	p.User = u.Summary()
	return p, nil
}

func (s *ProfileService) GetOwn(ctx context.Context, principal *domain.User) (*domain.Profile, error) {
	p, err := s.profiles.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}
	return s.populate(ctx, p)
}

func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*domain.Profile, error) {
	if handle == "" {
		return nil, errNoProfile()
	}
	p, err := s.profiles.FindByHandle(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("find profile by handle: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}
	return s.populate(ctx, p)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if !utils.ValidID(userID) {
		return nil, domain.Invalid("user_id", "Unable to find user")
	}
	p, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find profile by user: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}
	return s.populate(ctx, p)
}

// ListAll 没有资料时返回空切片
func (s *ProfileService) ListAll(ctx context.Context) ([]domain.Profile, error) {
	ps, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	out := make([]domain.Profile, 0, len(ps))
	for i := range ps {
		p, err := s.populate(ctx, &ps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// apply 所有字段整体覆盖，缺省即空串；experience / education 不动
func applyProfileInput(p *domain.Profile, in domain.ProfileInput) {
	p.Handle = in.Handle
	p.Company = in.Company
	p.Website = in.Website
	p.Location = in.Location
	p.Status = in.Status
	p.Bio = in.Bio
	p.GitHubUsername = in.GitHubUsername
	p.Skills = validation.SplitSkills(in.Skills)
	p.Social = domain.Social{
		YouTube:   in.YouTube,
		Twitter:   in.Twitter,
		Facebook:  in.Facebook,
		Instagram: in.Instagram,
		LinkedIn:  in.LinkedIn,
	}
}

// Upsert handle 唯一性是先查后写，并发创建同一 handle 可能都成功（存储层无唯一索引）
func (s *ProfileService) Upsert(ctx context.Context, principal *domain.User, in domain.ProfileInput) (*domain.Profile, error) {
	if errs := validation.Profile(in); !errs.IsValid() {
		return nil, domain.Validation(errs)
	}

	p, err := s.profiles.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if in.Handle != "" && (p == nil || p.Handle != in.Handle) {
		taken, err := s.profiles.FindByHandle(ctx, in.Handle)
		if err != nil {
			return nil, fmt.Errorf("find profile by handle: %w", err)
		}
		if taken != nil && taken.UserID != principal.ID {
			return nil, domain.Conflict("handle", "That handle already exists")
		}
	}

	if p != nil {
		applyProfileInput(p, in)
		if err := s.profiles.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
		return s.populate(ctx, p)
	}

	p = &domain.Profile{
		ID:         utils.NewID(),
		UserID:     principal.ID,
		Experience: []domain.Experience{},
		Education:  []domain.Education{},
		CreatedAt:  s.now().UTC(),
	}
	applyProfileInput(p, in)
	if err := s.profiles.Create(ctx, p); err != nil {
		// 同一用户并发创建，唯一索引只放行一个
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("profile", "Profile already exists")
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}
	s.log.Info("profile created", zap.String("user_id", principal.ID), zap.String("handle", p.Handle))
	return s.populate(ctx, p)
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, ok := validation.ParseDate(s)
	if !ok {
		return nil
	}
	return &t
}

func (s *ProfileService) AddExperience(ctx context.Context, principal *domain.User, in domain.ExperienceInput) (*domain.Profile, error) {
	if errs := validation.Experience(in); !errs.IsValid() {
		return nil, domain.Validation(errs)
	}
	p, err := s.profiles.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}

	from, _ := validation.ParseDate(in.From)
	exp := domain.Experience{
		ID:          utils.NewID(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        from,
		To:          optionalDate(in.To),
		Current:     in.Current,
		Description: in.Description,
	}
	p.Experience = append([]domain.Experience{exp}, p.Experience...)
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.populate(ctx, p)
}

func (s *ProfileService) AddEducation(ctx context.Context, principal *domain.User, in domain.EducationInput) (*domain.Profile, error) {
	if errs := validation.Education(in); !errs.IsValid() {
		return nil, domain.Validation(errs)
	}
	p, err := s.profiles.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}

	from, _ := validation.ParseDate(in.From)
	edu := domain.Education{
		ID:           utils.NewID(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         from,
		To:           optionalDate(in.To),
		Current:      in.Current,
		Description:  in.Description,
	}
	p.Education = append([]domain.Education{edu}, p.Education...)
	if err := s.profiles.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.populate(ctx, p)
}

// RemoveExperience id 不存在时不报错，原样返回资料
func (s *ProfileService) RemoveExperience(ctx context.Context, principal *domain.User, expID string) (*domain.Profile, error) {
	if !utils.ValidID(expID) {
		return nil, domain.Invalid("exp_id", "Unable to find experience")
	}
	p, err := s.profiles.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}
	if p.RemoveExperience(expID) {
		if err := s.profiles.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}
	return s.populate(ctx, p)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, principal *domain.User, eduID string) (*domain.Profile, error) {
	if !utils.ValidID(eduID) {
		return nil, domain.Invalid("edu_id", "Unable to find education")
	}
	p, err := s.profiles.FindByUserID(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if p == nil {
		return nil, errNoProfile()
	}
	if p.RemoveEducation(eduID) {
		if err := s.profiles.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("save profile: %w", err)
		}
	}
	return s.populate(ctx, p)
}

// DeleteOwn 先删资料再删用户；两次删除不在一个事务里
func (s *ProfileService) DeleteOwn(ctx context.Context, principal *domain.User) error {
	return deleteAccount(ctx, s.profiles, s.users, s.log, principal.ID)
}

func deleteAccount(ctx context.Context, profiles domain.ProfileRepository, users domain.UserRepository, log *zap.Logger, userID string) error {
	if err := profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := users.Delete(ctx, userID); err != nil {
		log.Error("profile deleted but user delete failed", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("delete user: %w", err)
	}
	log.Info("account deleted", zap.String("user_id", userID))
	return nil
}
