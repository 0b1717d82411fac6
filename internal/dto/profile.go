package dto

// CreateProfileRequest creates a profile record directly, without going
// through registration. Used by the profile endpoint only.
type CreateProfileRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Avatar    string `json:"avatar"`
	About     string `json:"about"`
	BirthDate string `json:"birthDate" binding:"omitempty,birthdate"`
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are
// left untouched by the merge.
type UpdateProfileRequest struct {
	Avatar    *string `json:"avatar"`
	About     *string `json:"about"`
	BirthDate *string `json:"birthDate" binding:"omitempty,birthdate"`
	Phone     *string `json:"phone"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}
