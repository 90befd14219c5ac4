package rbac

// Role names. Keep these stable; they are part of issued tokens.
const (
	RoleOwner      = "owner"
	RoleManager    = "manager"
	RoleFrontDesk  = "front_desk"
	RoleSuperAdmin = "super_admin"
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

func IsKnownRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleFrontDesk, RoleSuperAdmin:
		return true
	default:
		return false
	}
}
