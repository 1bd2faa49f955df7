package handler

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	// CurrentPassword is only checked when the service is configured to
	// require re-authentication.
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// resetPasswordRequest deliberately has no eqfield rule on ConfirmPassword:
// a mismatch is a typed outcome of the reset flow, not a malformed request.
type resetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type registerResponse struct {
	ID string `json:"id"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}
