package models

import (
	"encoding/json"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	console "pipecrm/internal/utils/logger"
)

var log = console.New("models")

// SeedRoles inserts the built-in roles if they are not present yet.
func SeedRoles(db *gorm.DB) error {
	roles := []struct {
		name        string
		description string
		scopes      []string
	}{
		{RoleAdmin, "Full access to every resource", []string{"read", "write", "manage"}},
		{RoleMember, "Read and write access to CRM records", []string{"read", "write"}},
		{RoleViewer, "Read-only access", []string{"read"}},
	}

	for _, r := range roles {
		var existing Role
		err := db.Where("name = ?", r.name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		scopes, err := json.Marshal(r.scopes)
		if err != nil {
			return err
		}
		role := Role{
			Name:        r.name,
			Description: r.description,
			Permissions: datatypes.JSON(scopes),
		}
		if err := db.Create(&role).Error; err != nil {
			return err
		}
		log.Info("seeded role %s", r.name)
	}
	return nil
}

// SeedAdminProfile creates the initial admin account from the environment.
// It is a no-op when the email is unset or the profile already exists.
func SeedAdminProfile(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing Profile
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	profile := Profile{
		Email:    email,
		Password: string(hashed),
		Role:     RoleAdmin,
	}
	if err := db.Create(&profile).Error; err != nil {
		return err
	}
	log.Success("seeded admin profile %s", email)
	return nil
}
