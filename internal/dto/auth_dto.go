package dto

// LoginRequest carries credentials for the admin/teacher and student logins.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest describes the payload for creating a generic User account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN TEACHER STUDENT"`
}

// LoginResponse reports a successful authentication.
type LoginResponse struct {
	UserID      uint   `json:"user_id"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	RedirectURL string `json:"redirect_url"`
	Token       string `json:"token"`
}

// RegisterResponse echoes the created account without its password hash.
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
