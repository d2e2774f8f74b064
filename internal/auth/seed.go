package auth

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sharath018/event-management-backend/config"
)

const (
	RoleNameAdmin = "admin"
	RoleNameUser  = "user"
)

// SeedUserRoles makes sure the two builtin roles exist
func SeedUserRoles(db *gorm.DB) error {
	for _, name := range []string{RoleNameAdmin, RoleNameUser} {
		var role UserRole
		err := db.Where("role_name = ?", name).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&UserRole{RoleName: name}).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedSuperAdminUser creates the configured admin account if no admin exists
// yet. User row creation runs in a transaction so a half-seeded admin can
// never be observed.
func SeedSuperAdminUser(db *gorm.DB, cfg *config.Config) error {
	var adminRole UserRole
	if err := db.Where("role_name = ?", RoleNameAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&User{}).Where("role_id = ?", adminRole.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("✅ Super admin already seeded")
		return nil
	}

	if cfg.SuperAdminEmail == "" || cfg.SuperAdminPassword == "" {
		log.Println("⚠️ SUPER_ADMIN_EMAIL/SUPER_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperAdminPassword), 12)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := &User{
			Username:     "superadmin",
			Email:        cfg.SuperAdminEmail,
			PasswordHash: string(hash),
			RoleID:       adminRole.ID,
		}
		return tx.Create(admin).Error
	})
}
