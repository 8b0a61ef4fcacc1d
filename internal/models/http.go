package models

// UnlockRequest is the body of an unlock attempt on a protected link.
type UnlockRequest struct {
	Password string `json:"password"`
}

// ViewResponse is what a visitor receives for /view?token=<token>.
// URL is only filled when the gate is open.
type ViewResponse struct {
	Token        string  `json:"token"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url"`
	Protected    bool    `json:"protected"`
	Visible      bool    `json:"visible"`
	Password     *string `json:"password,omitempty"`
	URL          string  `json:"url,omitempty"`
	Views        int64   `json:"views"`
}

// SignUpRequest creates an account with a profile.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// SignInRequest opens a session.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordRequest replaces the password of the signed-in user.
type PasswordRequest struct {
	Password string `json:"password"`
}

// AvailabilityResponse answers a pre-signup username check.
type AvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// LinkResponse is a link as shown to its owner, with the shareable view URL.
type LinkResponse struct {
	Link
	ViewURL string `json:"view_url"`
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}
