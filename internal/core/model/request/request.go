package request

type UserCreateRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserUpdateRequest carries a partial update. Pointer fields distinguish
// "not mentioned" (nil) from "set to a value", including the current value.
type UserUpdateRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty" validate:"omitempty,min=8"`
}

// AddRequest uses pointers so a zero operand still counts as present.
type AddRequest struct {
	A *float64 `json:"a" validate:"required"`
	B *float64 `json:"b" validate:"required"`
}
