package domain

// UserRole grants access to reviewer actions.
type UserRole string

const (
	UserRoleMember  UserRole = "MEMBER"
	UserRoleFinance UserRole = "FINANCE"
	UserRoleBureau  UserRole = "BUREAU"
)

// User represents an authenticated portal member.
type User struct {
	UserID       string     `json:"userID"` // Primary Key (UUID)
	Username     string     `json:"username"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Roles        []UserRole `json:"roles"`
	AuditFields
}

// HasRole reports whether the user carries the given role.
func (u User) HasRole(role UserRole) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
