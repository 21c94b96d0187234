package models

// UserProfile is a published profile. Profiles are keyed in the directory by
// the lower-cased name and are immutable after creation.
type UserProfile struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Interests  []string `json:"interests"`
	Photo      string   `json:"photo,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Location   string   `json:"location,omitempty"`
	Occupation string   `json:"occupation,omitempty"`
	LookingFor string   `json:"lookingFor,omitempty"`
}

// UserMatch is a profile as it appears in match and shortlist listings.
// SharedInterests and CompatibilityScore are only set by the matching engine.
type UserMatch struct {
	Name               string   `json:"name"`
	Interests          []string `json:"interests"`
	SharedInterests    []string `json:"sharedInterests,omitempty"`
	CompatibilityScore int      `json:"compatibilityScore,omitempty"`
	Age                int      `json:"age,omitempty"`
	Photo              string   `json:"photo,omitempty"`
	Bio                string   `json:"bio,omitempty"`
	Location           string   `json:"location,omitempty"`
	Occupation         string   `json:"occupation,omitempty"`
	LookingFor         string   `json:"lookingFor,omitempty"`
}

type CreateUserRequest struct {
	Name       string   `json:"name" binding:"required"`
	Age        int      `json:"age" binding:"required"`
	Interests  []string `json:"interests" binding:"required,interests"`
	Photo      string   `json:"photo,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Location   string   `json:"location,omitempty"`
	Occupation string   `json:"occupation,omitempty"`
	LookingFor string   `json:"lookingFor,omitempty"`
}

type CreateUserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserProfile `json:"user,omitempty"`
}

type GetMatchesResponse struct {
	Matches      []UserMatch `json:"matches"`
	TotalMatches int         `json:"totalMatches"`
}

type ShortlistRequest struct {
	Username       string `json:"username" binding:"required"`
	TargetUsername string `json:"targetUsername" binding:"required"`
}

type ShortlistResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GetShortlistResponse struct {
	Shortlist []UserMatch `json:"shortlist"`
}

// AsMatch converts a profile into its listing form, without derived fields.
func (u *UserProfile) AsMatch() UserMatch {
	return UserMatch{
		Name:       u.Name,
		Interests:  u.Interests,
		Age:        u.Age,
		Photo:      u.Photo,
		Bio:        u.Bio,
		Location:   u.Location,
		Occupation: u.Occupation,
		LookingFor: u.LookingFor,
	}
}
