package user

const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleReadOnly = "read-only"
)

func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser || role == RoleReadOnly
}

// CanWrite reports whether the role may create, update or delete
// transactions. Admins and regular users are treated identically here.
func CanWrite(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// CanManageUsers reports whether the role may list accounts and change roles.
func CanManageUsers(role string) bool {
	return role == RoleAdmin
}
