// AngelaMos | 2026
// dto.go

package auth

type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,min=1,max=100"`
	Lastname  string `json:"lastname"  validate:"required,min=1,max=100"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Password  string `json:"password"  validate:"required,min=8,max=128"`
}

type AuthenticationRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type AuthenticationResponse struct {
	Token string `json:"token"`
}
