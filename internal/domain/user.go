package domain

// CollectionRef names one flashcard collection owned by a user.
// The name is the collection's only identity: it is unique (case-sensitive,
// exact match) within a single user's list, and it doubles as the path
// segment under which the collection's cards are stored.
type CollectionRef struct {
	Name string `json:"name"`
}

// User represents one account record in the document store.
// The ID is the opaque, stable identifier issued by the external identity
// provider; this application never mints user IDs of its own.
//
// A User record is created lazily: reading an absent record yields an empty
// user, and the first successful save or reconciliation writes it.
type User struct {
	ID          string          `json:"id"`
	Collections []CollectionRef `json:"collections"`
	IsPro       bool            `json:"is_pro"`
}

// NewUser creates a User with the given identity-provider ID and no
// collections. Returns an error if validation fails.
func NewUser(id string) (*User, error) {
	user := &User{
		ID:          id,
		Collections: nil,
		IsPro:       false,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == "" {
		return ErrEmptyUserID
	}
	return nil
}

// HasCollection reports whether the user already owns a collection with the
// given name. The comparison is exact and case-sensitive.
func (u *User) HasCollection(name string) bool {
	for _, ref := range u.Collections {
		if ref.Name == name {
			return true
		}
	}
	return false
}
