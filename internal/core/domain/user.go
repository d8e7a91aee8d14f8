package domain

import (
	"time"
)

type User struct {
	ID        int64
	Name      string `validate:"required,min=3,max=50"`
	Email     string `validate:"required,email,max=100"`
	Password  string `validate:"required"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MutableColumns is the allow-list of columns a partial update may write.
// The password column only gets here through the password-change path.
var MutableColumns = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
}
