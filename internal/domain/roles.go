package domain

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
	RoleParent  Role = "PARENT"
)

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return true
	default:
		return false
	}
}

// RoleIn reports whether r is one of allowed.
func RoleIn(r string, allowed ...Role) bool {
	for _, a := range allowed {
		if Role(r) == a {
			return true
		}
	}
	return false
}
