package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User — учётная запись владельца документов.
// Password пустой у аккаунтов, созданных через внешнего провайдера.
type User struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `json:"name"`
	Password string `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Account связывает пользователя с внешним провайдером входа.
type Account struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	UserID            string `gorm:"type:uuid;not null;index"`
	User              *User  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Provider          string `gorm:"not null;uniqueIndex:idx_provider_account"`
	ProviderAccountID string `gorm:"not null;uniqueIndex:idx_provider_account"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (a *Account) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
