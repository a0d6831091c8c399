package model

// User is a registered resident. The password is stored as entered.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

const RoleUser = "user"

type SignupInput struct {
	Name     string
	Email    string
	Password string
}
