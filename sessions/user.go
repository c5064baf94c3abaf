package sessions

// RoleType is the single role the school API assigns to a user.
type RoleType string

const (
	RoleStudent RoleType = "eleve"
	RoleTeacher RoleType = "prof"
	RoleParent  RoleType = "parent"
	RoleAdmin   RoleType = "admin"
)

// Valid reports whether r is one of the roles the API knows.
func (r RoleType) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleParent, RoleAdmin:
		return true
	}
	return false
}

// GroupRef is a group as embedded in a user profile.
type GroupRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type User struct {
	ID       int        `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     RoleType   `json:"role"`
	Groups   []GroupRef `json:"groups,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageCoursework is true for the roles allowed to publish homework and grades.
func (u *User) CanManageCoursework() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}

// InGroup reports whether the user belongs to the group with the given id.
func (u *User) InGroup(groupID int) bool {
	for _, g := range u.Groups {
		if g.ID == groupID {
			return true
		}
	}
	return false
}

// GroupNames returns the names of the user's groups in profile order.
func (u *User) GroupNames() []string {
	names := make([]string, 0, len(u.Groups))
	for _, g := range u.Groups {
		names = append(names, g.Name)
	}
	return names
}
