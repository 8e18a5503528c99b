package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Every foreign key below is nullable on purpose: a missing relation is a
// legitimate state (a lead without a company, a deal without a contact), not
// a load failure.

type Lead struct {
	Base
	FirstName string         `gorm:"not null" json:"first_name" validate:"required"`
	LastName  string         `gorm:"not null" json:"last_name" validate:"required"`
	Email     string         `gorm:"not null;index" json:"email" validate:"required,email"`
	Phone     string         `json:"phone"`
	Status    string         `gorm:"default:'new'" json:"status" validate:"omitempty,lead_status"`
	Source    string         `json:"source"`
	CompanyID *string        `gorm:"type:uuid" json:"company_id" validate:"omitempty,uuid"`
	Company   *Company       `json:"company,omitempty"`
	OwnerID   *string        `gorm:"type:uuid;index" json:"owner_id" validate:"omitempty,uuid"`
	Owner     *Profile       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
}

type Contact struct {
	Base
	FirstName string   `gorm:"not null" json:"first_name" validate:"required"`
	LastName  string   `gorm:"not null" json:"last_name" validate:"required"`
	Email     string   `gorm:"not null;index" json:"email" validate:"required,email"`
	Phone     string   `json:"phone"`
	Title     string   `json:"title"`
	CompanyID *string  `gorm:"type:uuid" json:"company_id" validate:"omitempty,uuid"`
	Company   *Company `json:"company,omitempty"`
	OwnerID   *string  `gorm:"type:uuid;index" json:"owner_id" validate:"omitempty,uuid"`
	Owner     *Profile `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

type Company struct {
	Base
	Name     string   `gorm:"not null" json:"name" validate:"required"`
	Domain   string   `json:"domain"`
	Industry string   `json:"industry"`
	Size     string   `json:"size"`
	OwnerID  *string  `gorm:"type:uuid;index" json:"owner_id" validate:"omitempty,uuid"`
	Owner    *Profile `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

type Deal struct {
	Base
	Name        string     `gorm:"not null" json:"name" validate:"required"`
	Amount      float64    `json:"amount" validate:"omitempty,min=0"`
	Stage       string     `gorm:"default:'lead'" json:"stage" validate:"omitempty,deal_stage"`
	Probability int        `gorm:"default:0" json:"probability" validate:"min=0,max=100"`
	CloseDate   *time.Time `json:"close_date"`
	LeadID      *string    `gorm:"type:uuid" json:"lead_id" validate:"omitempty,uuid"`
	Lead        *Lead      `json:"lead,omitempty"`
	ContactID   *string    `gorm:"type:uuid" json:"contact_id" validate:"omitempty,uuid"`
	Contact     *Contact   `json:"contact,omitempty"`
	CompanyID   *string    `gorm:"type:uuid" json:"company_id" validate:"omitempty,uuid"`
	Company     *Company   `json:"company,omitempty"`
	OwnerID     *string    `gorm:"type:uuid;index" json:"owner_id" validate:"omitempty,uuid"`
	Owner       *Profile   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

type Task struct {
	Base
	Title       string     `gorm:"not null" json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `gorm:"default:'todo'" json:"status" validate:"omitempty,task_status"`
	Priority    string     `gorm:"default:'medium'" json:"priority" validate:"omitempty,task_priority"`
	DueDate     *time.Time `json:"due_date"`
	DealID      *string    `gorm:"type:uuid" json:"deal_id" validate:"omitempty,uuid"`
	Deal        *Deal      `json:"deal,omitempty"`
	ContactID   *string    `gorm:"type:uuid" json:"contact_id" validate:"omitempty,uuid"`
	Contact     *Contact   `json:"contact,omitempty"`
	OwnerID     *string    `gorm:"type:uuid;index" json:"owner_id" validate:"omitempty,uuid"`
	Owner       *Profile   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

type Campaign struct {
	Base
	Name         string         `gorm:"not null" json:"name" validate:"required"`
	Description  string         `json:"description"`
	Status       string         `gorm:"default:'draft'" json:"status" validate:"omitempty,campaign_status"`
	ScheduledFor *time.Time     `json:"scheduled_for"`
	Settings     datatypes.JSON `gorm:"type:jsonb" json:"settings,omitempty"`
	OwnerID      *string        `gorm:"type:uuid;index" json:"owner_id" validate:"omitempty,uuid"`
	Owner        *Profile       `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

type Role struct {
	Base
	Name        string         `gorm:"uniqueIndex;not null" json:"name" validate:"required"`
	Description string         `json:"description"`
	Permissions datatypes.JSON `gorm:"type:jsonb" json:"permissions,omitempty"`
}

type Profile struct {
	Base
	Email       string         `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string         `gorm:"not null" json:"-"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Role        string         `gorm:"default:'member'" json:"role" validate:"omitempty,profile_role"`
	Preferences datatypes.JSON `gorm:"type:jsonb" json:"preferences,omitempty"`
}

type Attachment struct {
	Base
	Name        string   `gorm:"not null" json:"name" validate:"required"`
	Path        string   `gorm:"not null" json:"path" validate:"required"`
	Size        int64    `json:"size"`
	ContentType string   `json:"content_type"`
	DealID      *string  `gorm:"type:uuid" json:"deal_id" validate:"omitempty,uuid"`
	Deal        *Deal    `json:"deal,omitempty"`
	UploaderID  *string  `gorm:"type:uuid" json:"uploader_id" validate:"omitempty,uuid"`
	Uploader    *Profile `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	SignedURL   string   `gorm:"-" json:"signed_url,omitempty"` // virtual, filled on read
}

// AfterFind resolves a short-lived download URL when a storage backend has
// been registered. Lookup failures abort the read: a row pointing at an
// unreadable object is worse than an error.
func (a *Attachment) AfterFind(tx *gorm.DB) error {
	generator := getURLGenerator()
	if generator == nil || a.Path == "" {
		return nil
	}
	url, err := generator.GetSignedURL(tx.Statement.Context, a.Path, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate signed URL: %w", err)
	}
	a.SignedURL = url
	return nil
}
