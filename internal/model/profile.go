package model

import (
	"time"

	"gorm.io/datatypes"
)

// BlankBirthDate is the sentinel stored for profiles that have not filled
// in a birth date yet.
var BlankBirthDate = datatypes.Date(time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC))

// Profile is the single user entity: login credentials plus public profile
// fields. Kept free of persistence tags; the repository layer relies on
// gorm's naming conventions, and the unique email index is created by the
// migration step.
type Profile struct {
	ID        uint
	Email     string
	Password  string // sha256 hex digest, never serialized outward
	Avatar    string
	About     string
	BirthDate datatypes.Date
	Phone     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
