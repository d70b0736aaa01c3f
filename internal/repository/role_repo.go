package repository

import (
	"context"
	"errors"

	"backoffice/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository interface {
	List(ctx context.Context) ([]entity.Role, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPermissions(ctx context.Context) ([]entity.Permission, error)
	FindPermissionsByName(ctx context.Context, names []string) ([]entity.Permission, error)
	SeedPermissions(ctx context.Context, names []string) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) List(ctx context.Context) ([]entity.Role, error) {
	var roles []entity.Role
	if err := r.db.WithContext(ctx).Preload("Permissions").Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("id = ?", id).
		First(&role).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Role, error) {
	if len(ids) == 0 {
		return []entity.Role{}, nil
	}
	var roles []entity.Role
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) Create(ctx context.Context, role *entity.Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) Update(ctx context.Context, role *entity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Role{}).
			Where("id = ?", role.ID).
			Update("name", role.Name)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		permissions := role.Permissions
		if permissions == nil {
			permissions = []entity.Permission{}
		}
		return tx.Model(role).Association("Permissions").Replace(permissions)
	})
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Select(clause.Associations).Delete(&entity.Role{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *roleRepository) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	var permissions []entity.Permission
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *roleRepository) FindPermissionsByName(ctx context.Context, names []string) ([]entity.Permission, error) {
	if len(names) == 0 {
		return []entity.Permission{}, nil
	}
	var permissions []entity.Permission
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// SeedPermissions inserts the missing permissions and leaves existing rows alone.
func (r *roleRepository) SeedPermissions(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	permissions := make([]entity.Permission, 0, len(names))
	for _, name := range names {
		permissions = append(permissions, entity.Permission{Name: name})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&permissions).Error
}
