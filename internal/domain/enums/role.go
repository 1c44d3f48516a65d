package enums

type Role string

const (
	RoleCreator Role = "CREATOR"
	RoleBrand   Role = "BRAND"
	RoleAdmin   Role = "ADMIN"
)

// Opposite returns the discovery pool role for a viewer role. Admins
// have no feed, so anything but CREATOR/BRAND maps to an empty role.
func (r Role) Opposite() Role {
	switch r {
	case RoleCreator:
		return RoleBrand
	case RoleBrand:
		return RoleCreator
	default:
		return ""
	}
}
