package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"backoffice/internal/entity"
	"backoffice/internal/repository"

	"github.com/google/uuid"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(hash string, password string) bool {
	return hash == "hashed:"+password
}

type fakeUserRepo struct {
	users       map[uuid.UUID]*entity.User
	updateCalls int
	lastChanges repository.UserChanges
	createCalls int
	updateErr   error
	findErr     error
	passwords   map[uuid.UUID]string
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:     make(map[uuid.UUID]*entity.User),
		passwords: make(map[uuid.UUID]string),
	}
	for _, user := range users {
		repo.users[user.ID] = cloneUser(user)
	}
	return repo
}

func cloneUser(user *entity.User) *entity.User {
	clone := *user
	clone.Roles = append([]entity.Role(nil), user.Roles...)
	return &clone
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.createCalls++
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email string, exceptID uuid.UUID) (bool, error) {
	for id, user := range r.users {
		if id != exceptID && strings.EqualFold(user.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User, changes repository.UserChanges) error {
	r.updateCalls++
	r.lastChanges = changes
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	if changes.Verification {
		stored.EmailVerifiedAt = user.EmailVerifiedAt
	}
	if changes.Roles {
		stored.Roles = append([]entity.Role(nil), user.Roles...)
	}
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uuid.UUID, hash string) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = &hash
	r.passwords[userID] = hash
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, _ repository.UserListQuery) ([]entity.User, int64, error) {
	users := make([]entity.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, ids ...uuid.UUID) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := r.users[id]; ok {
			delete(r.users, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeRoleRepo struct {
	roles       map[uuid.UUID]*entity.Role
	permissions []entity.Permission
	seeded      []string
}

func newFakeRoleRepo(roles ...entity.Role) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: make(map[uuid.UUID]*entity.Role)}
	for i := range roles {
		role := roles[i]
		repo.roles[role.ID] = &role
	}
	for _, name := range entity.AllPermissionNames() {
		repo.permissions = append(repo.permissions, entity.Permission{ID: uuid.New(), Name: name})
	}
	return repo
}

func (r *fakeRoleRepo) List(_ context.Context) ([]entity.Role, error) {
	roles := make([]entity.Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, *role)
	}
	return roles, nil
}

func (r *fakeRoleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, nil
	}
	clone := *role
	return &clone, nil
}

func (r *fakeRoleRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Role, error) {
	roles := make([]entity.Role, 0, len(ids))
	for _, id := range ids {
		if role, ok := r.roles[id]; ok {
			roles = append(roles, *role)
		}
	}
	return roles, nil
}

func (r *fakeRoleRepo) FindByName(_ context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	clone := *role
	r.roles[role.ID] = &clone
	return nil
}

func (r *fakeRoleRepo) Update(_ context.Context, role *entity.Role) error {
	if _, ok := r.roles[role.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *role
	r.roles[role.ID] = &clone
	return nil
}

func (r *fakeRoleRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.roles, id)
	return nil
}

func (r *fakeRoleRepo) ListPermissions(_ context.Context) ([]entity.Permission, error) {
	return r.permissions, nil
}

func (r *fakeRoleRepo) FindPermissionsByName(_ context.Context, names []string) ([]entity.Permission, error) {
	found := make([]entity.Permission, 0, len(names))
	for _, name := range names {
		for _, permission := range r.permissions {
			if permission.Name == name {
				found = append(found, permission)
			}
		}
	}
	return found, nil
}

func (r *fakeRoleRepo) SeedPermissions(_ context.Context, names []string) error {
	r.seeded = append(r.seeded, names...)
	return nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
	revoked  []uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeSessionRepo) FindActive(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	session, ok := r.sessions[id]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, id uuid.UUID) error {
	if session, ok := r.sessions[id]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	r.revoked = append(r.revoked, id)
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUser(_ context.Context, userID uuid.UUID, except uuid.UUID) error {
	for id, session := range r.sessions {
		if session.UserID == userID && id != except && session.RevokedAt == nil {
			now := time.Now()
			session.RevokedAt = &now
			r.revoked = append(r.revoked, id)
		}
	}
	return nil
}

func (r *fakeSessionRepo) SetLocked(_ context.Context, id uuid.UUID, lockedAt *time.Time) error {
	session, ok := r.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	session.LockedAt = lockedAt
	return nil
}

func (r *fakeSessionRepo) CleanupExpired(_ context.Context) error {
	return nil
}

type fakeMFARepo struct {
	secrets map[uuid.UUID]*entity.MFASecret
}

func newFakeMFARepo() *fakeMFARepo {
	return &fakeMFARepo{secrets: make(map[uuid.UUID]*entity.MFASecret)}
}

func (r *fakeMFARepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.MFASecret, error) {
	secret, ok := r.secrets[userID]
	if !ok {
		return nil, nil
	}
	clone := *secret
	return &clone, nil
}

func (r *fakeMFARepo) Upsert(_ context.Context, secret *entity.MFASecret) error {
	clone := *secret
	r.secrets[secret.UserID] = &clone
	return nil
}

func (r *fakeMFARepo) Confirm(_ context.Context, userID uuid.UUID, at time.Time) error {
	secret, ok := r.secrets[userID]
	if !ok {
		return repository.ErrNotFound
	}
	secret.ConfirmedAt = &at
	return nil
}

func (r *fakeMFARepo) Delete(_ context.Context, userID uuid.UUID) error {
	delete(r.secrets, userID)
	return nil
}

type fakeSecurityLogRepo struct {
	logs []entity.SecurityLog
	err  error
}

func (r *fakeSecurityLogRepo) Log(_ context.Context, log *entity.SecurityLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeSecurityLogRepo) ListBySubject(_ context.Context, subjectID uuid.UUID, _ int) ([]entity.SecurityLog, error) {
	var logs []entity.SecurityLog
	for _, log := range r.logs {
		if log.SubjectID != nil && *log.SubjectID == subjectID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

func (r *fakeSecurityLogRepo) actions() []entity.SecurityAction {
	actions := make([]entity.SecurityAction, 0, len(r.logs))
	for _, log := range r.logs {
		actions = append(actions, log.Action)
	}
	return actions
}

type fakeNotifier struct {
	sent []entity.User
	err  error
}

func (n *fakeNotifier) SendAccountVerified(_ context.Context, user entity.User) error {
	n.sent = append(n.sent, user)
	return n.err
}

type fakeAccessIssuer struct{}

func (fakeAccessIssuer) IssueAccessToken(user entity.User, sessionID uuid.UUID, _ time.Time) (string, time.Duration, error) {
	return "access:" + user.ID.String() + ":" + sessionID.String(), time.Hour, nil
}

type fakeMFATokens struct{}

func (fakeMFATokens) IssueMFAToken(userID uuid.UUID) (string, time.Duration, error) {
	return "mfa:" + userID.String(), 5 * time.Minute, nil
}

func (fakeMFATokens) ParseMFAToken(token string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(token, "mfa:")
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return uuid.Parse(raw)
}

type fakeMFAProvider struct {
	validCode string
}

func (p fakeMFAProvider) Enroll(issuer string, accountName string) (MFAEnrollment, error) {
	return MFAEnrollment{Secret: "SECRET", URL: "otpauth://totp/" + issuer + ":" + accountName + "?secret=SECRET"}, nil
}

func (p fakeMFAProvider) Validate(_ string, code string, _ time.Time) bool {
	return code == p.validCode
}

func strPtr(value string) *string {
	return &value
}
