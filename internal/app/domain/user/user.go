// Package user defines the registered-user model.
package user

// User is a registered account. Email is unique (stored lowercase) and
// immutable after registration, as is the identifier. Password holds a bcrypt
// hash, never the plaintext credential.
type User struct {
	ID              int     `json:"id"`
	Email           string  `json:"email"`
	Password        string  `json:"-"`
	FullName        string  `json:"full_name"`
	Phone           string  `json:"phone"`
	Gender          string  `json:"gender"`
	BirthDate       string  `json:"birth_date"`
	Street          string  `json:"street"`
	Number          string  `json:"number"`
	City            string  `json:"city"`
	Region          string  `json:"region"`
	Commune         string  `json:"commune"`
	ProfileImageRef *string `json:"profile_image_ref,omitempty"`
}
