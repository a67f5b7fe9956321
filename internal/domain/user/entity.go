package user

import (
	"context"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	BusinessType string    `json:"businessType,omitempty"`
	State        string    `json:"state,omitempty"`
	Language     string    `json:"language,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile holds the user-editable fields. Nil means unchanged.
type Profile struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	BusinessType *string `json:"businessType"`
	State        *string `json:"state"`
	Language     *string `json:"language"`
	AvatarURL    *string `json:"avatarUrl"`
}

func (u *User) Apply(p Profile, at time.Time) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&u.Name, p.Name)
	set(&u.Phone, p.Phone)
	set(&u.BusinessType, p.BusinessType)
	set(&u.State, p.State)
	set(&u.Language, p.Language)
	set(&u.AvatarURL, p.AvatarURL)
	u.UpdatedAt = at
}

type Repository interface {
	// Create fails with a conflict when the email is taken.
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}
