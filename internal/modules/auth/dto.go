package auth

type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

type OTPVerifyRequest struct {
	Phone    string `json:"phone" binding:"required"`
	OTPToken string `json:"otp_token" binding:"required"`
	Code     string `json:"code" binding:"required,len=4,numeric"`
}

type AdminLoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name" binding:"max=150"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// OTPChallenge is handed back to the client, which echoes the token with the
// code it received by SMS.
type OTPChallenge struct {
	Token     string `json:"otp_token"`
	ExpiresIn int    `json:"expires_in"`
}

type UserPublic struct {
	ID         int64   `json:"id"`
	Phone      string  `json:"phone"`
	Email      *string `json:"email,omitempty"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	DateJoined string  `json:"date_joined"`
}
