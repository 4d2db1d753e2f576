package user

import "time"

// User is the application-level user row. Its ID matches the external
// auth service's user id.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	BusinessID *string   `json:"negocio_id"`
	CreatedAt  time.Time `json:"created_at"`
}
