package models

import (
	"strings"

	"github.com/dmitrijs2005/taskhub/internal/common"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type ProfileStatus string

const (
	ProfileStatusPending ProfileStatus = "pending"
	ProfileStatusActive  ProfileStatus = "active"
)

// Settings holds a member's notification preferences.
type Settings struct {
	NotifyAssignment bool `json:"notify_assignment"`
	NotifyCompletion bool `json:"notify_completion"`
	NotifyDueDate    bool `json:"notify_due_date"`
}

// DefaultSettings enables every notification.
func DefaultSettings() Settings {
	return Settings{NotifyAssignment: true, NotifyCompletion: true, NotifyDueDate: true}
}

// Profile is the application-side record of a team member. It shares its
// id with the member's auth user.
type Profile struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email,omitempty"`
	Role      Role          `json:"role"`
	Status    ProfileStatus `json:"status"`
	Settings  *Settings     `json:"settings,omitempty"`
	CreatedAt *Timestamp    `json:"created_at,omitempty"`
}

// IsAdmin reports whether the profile has the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsProtected reports whether the profile is the seeded administrator.
func (p Profile) IsProtected() bool {
	return IsProtectedRecord(p.Username, p.ID)
}

// IsProtectedRecord is the protection rule shared by every collection: a
// record is protected when it carries the administrator's username or an
// id derived from the administrator id prefix.
func IsProtectedRecord(username, id string) bool {
	return username == common.MasterUsername || strings.Contains(id, common.MasterIDPrefix)
}

// EffectiveSettings returns the stored settings or the defaults when none
// were stored yet.
func (p Profile) EffectiveSettings() Settings {
	if p.Settings == nil {
		return DefaultSettings()
	}
	return *p.Settings
}
