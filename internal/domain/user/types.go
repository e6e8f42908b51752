package user

type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleHCSAdmin   Role = "hcs_admin"
	RoleDoctor     Role = "doctor"
	RoleCustomer   Role = "customer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleSuperadmin, RoleHCSAdmin, RoleDoctor, RoleCustomer:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
