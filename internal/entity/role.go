package entity

import (
	"time"

	"github.com/google/uuid"
)

const RoleSuperAdmin = "super_admin"

// Permission prefixes, combined with a resource as "<prefix>_<resource>".
const (
	PrefixView      = "view"
	PrefixViewAny   = "view_any"
	PrefixCreate    = "create"
	PrefixUpdate    = "update"
	PrefixDelete    = "delete"
	PrefixDeleteAny = "delete_any"
)

const (
	ResourceUser      = "user"
	ResourceRole      = "role"
	ResourceException = "exception"
)

var (
	PermissionPrefixes = []string{PrefixView, PrefixViewAny, PrefixCreate, PrefixUpdate, PrefixDelete, PrefixDeleteAny}
	Resources          = []string{ResourceUser, ResourceRole, ResourceException}
)

func PermissionName(prefix, resource string) string {
	return prefix + "_" + resource
}

// AllPermissionNames lists every prefix/resource combination.
func AllPermissionNames() []string {
	names := make([]string, 0, len(PermissionPrefixes)*len(Resources))
	for _, resource := range Resources {
		for _, prefix := range PermissionPrefixes {
			names = append(names, PermissionName(prefix, resource))
		}
	}
	return names
}

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(125);uniqueIndex;not null"`

	Permissions []Permission `gorm:"many2many:role_permissions;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Role) Grants(permission string) bool {
	for _, p := range r.Permissions {
		if p.Name == permission {
			return true
		}
	}
	return false
}

func (r Role) PermissionNames() []string {
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names
}

type Permission struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(125);uniqueIndex;not null"`

	CreatedAt time.Time
}
