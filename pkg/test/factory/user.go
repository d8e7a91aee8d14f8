package factory

import (
	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"
)

// NewUser builds a test entity, filling in a bcrypt digest for Password
// unless the caller provided one.
func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	if len(customData) > 0 {
		hasPassword := false

		for _, data := range customData {
			if _, exists := data["Password"]; exists {
				hasPassword = true
				break
			}
		}

		if !hasPassword {
			hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

			customData = append(customData, map[string]any{
				"Password": string(hashed),
			})
		}
	}

	return instance.Build(customData...)
}
