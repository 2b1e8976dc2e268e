package domain

import "time"

// Role is the coarse permission class attached to a user.
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleConsultor      Role = "CONSULTOR"
	RoleCapacitador    Role = "CAPACITADOR"
	RoleAdministrativo Role = "ADMINISTRATIVO"
)

// DefaultRole is assigned when registration does not name one.
const DefaultRole = RoleConsultor

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleConsultor, RoleCapacitador, RoleAdministrativo}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole resolves a role name. An empty name yields DefaultRole.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return DefaultRole, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User models a back-office account as persisted by the credential store.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the projection of a User that may leave the service.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Role     Role   `json:"role"`
}

// Public strips the password hash and timestamps.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// RegisterInput carries the fields accepted when an admin creates an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         PublicUser `json:"user"`
}
