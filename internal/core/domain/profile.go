package domain

import "time"

// Profile is the single per-account profile record. The account_id column
// carries a unique constraint so at most one profile exists per account.
type Profile struct {
	ID        string
	AccountID string
	Name      string
	Age       int
	FileKey   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfilePatch carries a partial profile update; nil fields are left untouched.
type ProfilePatch struct {
	Name    *string
	Age     *int
	FileKey *string
}

// Apply merges the patch into the profile in place.
func (p ProfilePatch) Apply(profile *Profile) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Age != nil {
		profile.Age = *p.Age
	}
	if p.FileKey != nil {
		profile.FileKey = p.FileKey
	}
}
