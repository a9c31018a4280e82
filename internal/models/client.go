package models

import "time"

// Client é a ficha do paciente; o login (User) aponta para ela.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Phone     string `gorm:"size:20;not null" json:"phone"`
	Email     string `gorm:"size:100" json:"email"`
	Reason    string `gorm:"size:255" json:"reason"`
	Notes     string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
