package usecase

// RegisterRequest carries the credentials for a new account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest carries the credentials for an existing account.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the bearer token for the created session.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreatePostRequest carries a new post's content.
type CreatePostRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}

// UpdatePostRequest carries replacement content for an existing post.
type UpdatePostRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required"`
}
