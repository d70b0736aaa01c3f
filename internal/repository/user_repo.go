package repository

import (
	"context"
	"errors"
	"strings"

	"backoffice/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserListQuery struct {
	Search string
	Name   string
	Email  string
	Sort   string
	Desc   bool
	Limit  int
	Offset int
}

// UserChanges selects what Update writes besides name and email.
type UserChanges struct {
	Verification bool
	Roles        bool
}

// userRole is a row of the user_roles join table.
type userRole struct {
	UserID uuid.UUID `gorm:"type:uuid"`
	RoleID uuid.UUID `gorm:"type:uuid"`
}

func (userRole) TableName() string {
	return "user_roles"
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	EmailTaken(ctx context.Context, email string, exceptID uuid.UUID) (bool, error)
	Update(ctx context.Context, user *entity.User, changes UserChanges) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error
	List(ctx context.Context, query UserListQuery) ([]entity.User, int64, error)
	Delete(ctx context.Context, ids ...uuid.UUID) (int64, error)
}

var userSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken checks trashed rows too, the unique index still covers them.
func (r *userRepository) EmailTaken(ctx context.Context, email string, exceptID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Unscoped().
		Model(&entity.User{}).
		Where("email = ?", email)
	if exceptID != uuid.Nil {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes name and email, plus email_verified_at and the role links when
// changes asks for them, in one transaction. Role rows themselves are never
// written and the password hash is never touched.
func (r *userRepository) Update(ctx context.Context, user *entity.User, changes UserChanges) error {
	columns := map[string]any{
		"name":  user.Name,
		"email": user.Email,
	}
	if changes.Verification {
		columns["email_verified_at"] = user.EmailVerifiedAt
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.User{}).
			Where("id = ?", user.ID).
			Updates(columns)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if !changes.Roles {
			return nil
		}
		return replaceUserRoles(tx, user.ID, user.Roles)
	})
}

// replaceUserRoles rewrites only the join rows; a role removed meanwhile fails
// the insert on its foreign key instead of being recreated.
func replaceUserRoles(tx *gorm.DB, userID uuid.UUID, roles []entity.Role) error {
	if err := tx.Where("user_id = ?", userID).Delete(&userRole{}).Error; err != nil {
		return err
	}
	if len(roles) == 0 {
		return nil
	}
	links := make([]userRole, 0, len(roles))
	for _, role := range roles {
		links = append(links, userRole{UserID: userID, RoleID: role.ID})
	}
	return tx.Create(&links).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, hash string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, q UserListQuery) ([]entity.User, int64, error) {
	filters := userFilters(q)

	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Scopes(filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := userSortColumns[q.Sort]
	if !ok {
		column = "created_at"
	}
	direction := " ASC"
	if q.Desc {
		direction = " DESC"
	}
	query := r.db.WithContext(ctx).Scopes(filters).Order(column + direction)
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	var users []entity.User
	if err := query.Preload("Roles").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func userFilters(q UserListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if search := strings.TrimSpace(q.Search); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
		}
		if name := strings.TrimSpace(q.Name); name != "" {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
		if email := strings.TrimSpace(q.Email); email != "" {
			db = db.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(email)+"%")
		}
		return db
	}
}

// Delete soft-deletes the given users and returns how many were live.
func (r *userRepository) Delete(ctx context.Context, ids ...uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&entity.User{})
	return result.RowsAffected, result.Error
}
