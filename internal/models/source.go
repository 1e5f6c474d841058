package models

import (
	"time"

	"github.com/google/uuid"
)

// Source is a named JSON document (document pairs or a result set) stored in
// the database backend.
type Source struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	Content   string    `gorm:"type:jsonb;not null" json:"-"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Source) TableName() string {
	return "sources"
}
