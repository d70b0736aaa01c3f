package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"backoffice/internal/entity"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RoleService struct {
	roles repository.RoleRepository
	audit auditor
}

func NewRoleService(roles repository.RoleRepository, securityLogs repository.SecurityLogRepository, logger logrus.FieldLogger) *RoleService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RoleService{
		roles: roles,
		audit: auditor{logs: securityLogs, logger: logger.WithField("component", "role_service")},
	}
}

// SeedPermissions makes sure every resource permission and the super admin role exist.
func (s *RoleService) SeedPermissions(ctx context.Context) error {
	if err := s.roles.SeedPermissions(ctx, entity.AllPermissionNames()); err != nil {
		return err
	}
	existing, err := s.roles.FindByName(ctx, entity.RoleSuperAdmin)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.roles.Create(ctx, &entity.Role{Name: entity.RoleSuperAdmin})
}

func (s *RoleService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.roles.ListPermissions(ctx)
}

func (s *RoleService) GetRole(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

func (s *RoleService) CreateRole(ctx context.Context, actor Actor, input RoleInput) (*entity.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	if err := s.ensureNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	permissions, err := s.resolvePermissions(ctx, input.Permissions)
	if err != nil {
		return nil, err
	}

	role := &entity.Role{Name: name, Permissions: permissions}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	s.audit.record(ctx, &actor.UserID, nil, actor.IPAddress, entity.RoleSaved, map[string]any{
		"role":        role.Name,
		"permissions": role.PermissionNames(),
	})
	return role, nil
}

func (s *RoleService) UpdateRole(ctx context.Context, actor Actor, id uuid.UUID, input RoleInput) (*entity.Role, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if role.Name == entity.RoleSuperAdmin && name != entity.RoleSuperAdmin {
		return nil, ErrProtectedRole
	}
	if name != role.Name {
		if err := s.ensureNameFree(ctx, name, role.ID); err != nil {
			return nil, err
		}
	}
	permissions, err := s.resolvePermissions(ctx, input.Permissions)
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.Permissions = permissions
	if err := s.roles.Update(ctx, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	s.audit.record(ctx, &actor.UserID, nil, actor.IPAddress, entity.RoleSaved, map[string]any{
		"role":        role.Name,
		"permissions": role.PermissionNames(),
	})
	return role, nil
}

func (s *RoleService) DeleteRole(ctx context.Context, actor Actor, id uuid.UUID) error {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if role.Name == entity.RoleSuperAdmin {
		return ErrProtectedRole
	}
	if err := s.roles.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	s.audit.record(ctx, &actor.UserID, nil, actor.IPAddress, entity.RoleDeleted, map[string]any{"role": role.Name})
	return nil
}

func (s *RoleService) ensureNameFree(ctx context.Context, name string, exceptID uuid.UUID) error {
	existing, err := s.roles.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != exceptID {
		return ErrRoleNameTaken
	}
	return nil
}

func (s *RoleService) resolvePermissions(ctx context.Context, names []string) ([]entity.Permission, error) {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[strings.TrimSpace(name)] = struct{}{}
	}
	unique := make([]string, 0, len(set))
	for name := range set {
		unique = append(unique, name)
	}
	sort.Strings(unique)

	permissions, err := s.roles.FindPermissionsByName(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(permissions) != len(unique) {
		return nil, ErrUnknownPermission
	}
	return permissions, nil
}
