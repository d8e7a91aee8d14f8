package response

// UserResponse is the public view of a user. The password digest is never
// serialized.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AddResponse struct {
	A       float64 `json:"a"`
	B       float64 `json:"b"`
	Result  float64 `json:"result"`
	Message string  `json:"message"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DetailResponse is the error body shape: a plain message for domain and
// not-found failures, a field/message list for schema validation failures.
type DetailResponse struct {
	Detail any `json:"detail"`
}
