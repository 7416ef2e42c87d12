package session

// Roles as the backend spells them.
const (
	RoleStudent = "estudiante"
	RoleTeacher = "docente"
	RoleAdmin   = "administrador"
)

var rolePriorities = map[string]int{
	RoleAdmin:   30,
	RoleTeacher: 20,
	RoleStudent: 10,
}

func RolePriority(role string) int {
	return rolePriorities[role]
}

// User is the authenticated identity. Immutable from the client's point of
// view except on login/logout.
type User struct {
	ID       string `json:"id_user"`
	Name     string `json:"nombre"`
	LastName string `json:"apellido"`
	Email    string `json:"correo"`
	Role     string `json:"rol"` // estudiante | docente | administrador
	Avatar   string `json:"avatar_url,omitempty"`

	// CI is set for students and teachers; it keys the academic endpoints.
	CI string `json:"ci,omitempty"`
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

func (u User) IsStudent() bool { return u.Role == RoleStudent }
func (u User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
