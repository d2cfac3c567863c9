package models

// Role is stored on the user document. Unknown values carry no capabilities.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Capability names one privileged action.
type Capability string

const (
	CapManageCamps         Capability = "manage_camps"
	CapManageRegistrations Capability = "manage_registrations"
	CapViewUsers           Capability = "view_users"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {CapManageCamps, CapManageRegistrations, CapViewUsers},
	RoleUser:  nil,
}

// Can reports whether the role grants cap.
func (r Role) Can(cap Capability) bool {
	for _, c := range roleCapabilities[r] {
		if c == cap {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role grants every admin capability.
func (r Role) IsAdmin() bool {
	for _, c := range roleCapabilities[RoleAdmin] {
		if !r.Can(c) {
			return false
		}
	}
	return true
}
