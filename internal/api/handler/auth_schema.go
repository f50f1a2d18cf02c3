package handler

// Request/response shapes for the session endpoints. Field names mirror the
// storefront's wire contract ("user"/"pwd" on login, "jwt" cookie for the
// refresh token).

type loginRequest struct {
	User string `json:"user" validate:"required"`
	Pwd  string `json:"pwd" validate:"required"`
}

type loginResponse struct {
	Roles       []int  `json:"roles"`
	AccessToken string `json:"accessToken"`
}

type registerRequest struct {
	User    string `json:"user" validate:"required"`
	Pwd     string `json:"pwd" validate:"required"`
	Email   string `json:"email"`
	Age     string `json:"age"`
	Job     string `json:"job"`
	Country string `json:"country"`
}

type registeredUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Roles    []int  `json:"roles"`
}
