package models

// User is a console account. Password is only populated from seed data and is
// replaced by PasswordHash at load.
type User struct {
	ID           string `json:"id" yaml:"id"`
	Email        string `json:"email" yaml:"email"`
	Name         string `json:"name" yaml:"name"`
	Role         string `json:"role" yaml:"role"`
	Password     string `json:"password,omitempty" yaml:"password,omitempty"`
	PasswordHash []byte `json:"-" yaml:"-"`
}

// PublicUser is the user as returned to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Public strips credentials.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool       `json:"success"`
	User    PublicUser `json:"user"`
	Token   string     `json:"token"`
}
