package dto

// CredentialsRequest is the login/register form payload.
type CredentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// ActionResponse carries the closed result tag back to the caller.
type ActionResponse struct {
	Status string `json:"status"`
}
