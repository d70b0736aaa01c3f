package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/entity"
	"backoffice/internal/form"
	"backoffice/internal/metrics"
	"backoffice/internal/repository"
	"backoffice/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const activityLimit = 50

type UserService struct {
	users        repository.UserRepository
	roles        repository.RoleRepository
	passwordHash PasswordHasher
	notifier     Notifier
	clock        Clock
	audit        auditor
	logger       logrus.FieldLogger
}

func NewUserService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	securityLogs repository.SecurityLogRepository,
	passwordHash PasswordHasher,
	notifier Notifier,
	clock Clock,
	logger logrus.FieldLogger,
) *UserService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger = logger.WithField("component", "user_service")
	return &UserService{
		users:        users,
		roles:        roles,
		passwordHash: passwordHash,
		notifier:     notifier,
		clock:        clock,
		audit:        auditor{logs: securityLogs, logger: logger},
		logger:       logger,
	}
}

func (s *UserService) ListUsers(ctx context.Context, query repository.UserListQuery) ([]entity.User, int64, error) {
	return s.users.List(ctx, query)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Schema builds the user form for mode with the current role options.
func (s *UserService) Schema(ctx context.Context, mode form.Mode) (form.Schema, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return form.Schema{}, err
	}
	options := make([]form.Option, 0, len(roles))
	for _, role := range roles {
		options = append(options, form.Option{Value: role.ID.String(), Label: role.Name})
	}
	return form.UserSchema(mode, options), nil
}

// EditForm returns the edit schema together with the form data filled from the stored user.
func (s *UserService) EditForm(ctx context.Context, id uuid.UUID) (form.Schema, form.UserFormData, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return form.Schema{}, form.UserFormData{}, err
	}
	schema, err := s.Schema(ctx, form.ModeEdit)
	if err != nil {
		return form.Schema{}, form.UserFormData{}, err
	}
	return schema, form.PrepareUserFormData(user), nil
}

func (s *UserService) CreateUser(ctx context.Context, actor Actor, input CreateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	taken, err := s.users.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	roles, err := s.resolveRoles(ctx, input.Roles)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: &hash,
		Roles:        roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.record(ctx, uuidPtr(actor.UserID), uuidPtr(user.ID), actor.IPAddress, entity.UserCreated, map[string]any{
		"email": user.Email,
		"roles": user.RoleNames(),
	})
	return user, nil
}

// UpdateUser saves an edit form submission. The email is checked against every
// other user before anything is written; the verified toggle is turned into
// email_verified_at and the record is persisted with a single update.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, id uuid.UUID, submission form.UserFormSubmission) (*entity.User, error) {
	if submission.Name != nil {
		name := strings.TrimSpace(*submission.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		submission.Name = &name
	}
	if submission.Email != nil {
		email := utils.NormalizeEmail(*submission.Email)
		if email == "" {
			return nil, ErrInvalidInput
		}
		submission.Email = &email
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if submission.Email != nil && *submission.Email != user.Email {
		taken, err := s.users.EmailTaken(ctx, *submission.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	var roles []entity.Role
	if submission.Roles != nil {
		roles, err = s.resolveRoles(ctx, *submission.Roles)
		if err != nil {
			return nil, err
		}
	}

	wasVerified := user.IsVerified()
	form.ApplyUserFormData(user, submission, roles, s.now())

	changes := repository.UserChanges{Verification: true, Roles: submission.Roles != nil}
	if err := s.users.Update(ctx, user, changes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.afterVerificationChange(ctx, user, wasVerified)
	s.audit.record(ctx, uuidPtr(actor.UserID), uuidPtr(user.ID), actor.IPAddress, entity.UserUpdated, map[string]any{
		"email":    user.Email,
		"verified": user.IsVerified(),
		"roles":    user.RoleNames(),
	})
	return user, nil
}

// UpdateProfile lets a user change their own name and email. Verification and
// roles are left as they are.
func (s *UserService) UpdateProfile(ctx context.Context, user *entity.User, input ProfileInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	email := utils.NormalizeEmail(input.Email)
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}
	if email != user.Email {
		taken, err := s.users.EmailTaken(ctx, email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	edited := *user
	edited.Name = name
	edited.Email = email
	if err := s.users.Update(ctx, &edited, repository.UserChanges{}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	s.audit.record(ctx, uuidPtr(user.ID), uuidPtr(user.ID), nil, entity.UserUpdated, map[string]any{"source": "profile"})
	return s.GetUser(ctx, user.ID)
}

// DeleteUsers soft-deletes the given users and returns how many were removed.
func (s *UserService) DeleteUsers(ctx context.Context, actor Actor, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrInvalidInput
	}
	deleted, err := s.users.Delete(ctx, ids...)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		s.audit.record(ctx, uuidPtr(actor.UserID), uuidPtr(id), actor.IPAddress, entity.UserDeleted, nil)
	}
	return deleted, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	deleted, err := s.DeleteUsers(ctx, actor, []uuid.UUID{id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) Activity(ctx context.Context, id uuid.UUID) ([]entity.SecurityLog, error) {
	if _, err := s.GetUser(ctx, id); err != nil {
		return nil, err
	}
	if s.audit.logs == nil {
		return []entity.SecurityLog{}, nil
	}
	return s.audit.logs.ListBySubject(ctx, id, activityLimit)
}

func (s *UserService) afterVerificationChange(ctx context.Context, user *entity.User, wasVerified bool) {
	isVerified := user.IsVerified()
	if wasVerified == isVerified {
		return
	}
	if !isVerified {
		metrics.VerificationChanges.WithLabelValues("unverified").Inc()
		return
	}
	metrics.VerificationChanges.WithLabelValues("verified").Inc()
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendAccountVerified(ctx, *user); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID.String()).Warn("account verified mail not sent")
	}
}

func (s *UserService) resolveRoles(ctx context.Context, ids []uuid.UUID) ([]entity.Role, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return []entity.Role{}, nil
	}
	roles, err := s.roles.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(unique) {
		return nil, ErrRoleNotFound
	}
	return roles, nil
}

func (s *UserService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
