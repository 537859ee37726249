package migration

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vinealis/vinea-backend/internal/domain"
)

// Run executes AutoMigrate for all tables and seeds baseline data if empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - creates missing tables, skips existing ones
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.Permission{},
		&domain.Page{},
		&domain.PageVersion{},
		&domain.ContentOverride{},
		&domain.ThemeDefault{},
		&domain.ThemeOverride{},
		&domain.Image{},
		&domain.AuditLog{},
		&domain.AuditHistory{},
	); err != nil {
		return err
	}

	// 2. Seed - only when the tables are empty
	var count int64
	db.Model(&domain.Role{}).Count(&count)
	if count == 0 {
		if err := seedRoles(db); err != nil {
			return err
		}
	}

	db.Model(&domain.User{}).Count(&count)
	if count == 0 {
		if err := seedAdminUser(db); err != nil {
			return err
		}
	}

	db.Model(&domain.ThemeDefault{}).Count(&count)
	if count == 0 {
		if err := seedThemeDefaults(db); err != nil {
			return err
		}
	}

	db.Model(&domain.Page{}).Count(&count)
	if count == 0 {
		if err := seedPages(db); err != nil {
			return err
		}
	}

	return nil
}

func seedRoles(db *gorm.DB) error {
	permissions := []domain.Permission{
		{Code: "pages.read", Description: "View pages and versions"},
		{Code: "pages.write", Description: "Create and edit page drafts"},
		{Code: "pages.publish", Description: "Publish page drafts"},
		{Code: "blocks.write", Description: "Edit content block drafts"},
		{Code: "blocks.publish", Description: "Publish content block drafts"},
		{Code: "theme.write", Description: "Override theme tokens"},
		{Code: "images.write", Description: "Upload and delete images"},
		{Code: "audit.read", Description: "View the audit log"},
		{Code: "users.manage", Description: "Manage accounts and roles"},
	}
	if err := db.Create(&permissions).Error; err != nil {
		return err
	}

	byCode := make(map[string]domain.Permission, len(permissions))
	for _, p := range permissions {
		byCode[p.Code] = p
	}

	roles := []domain.Role{
		{
			Name: "admin",
			Permissions: []domain.Permission{
				byCode["pages.read"], byCode["pages.write"], byCode["pages.publish"],
				byCode["blocks.write"], byCode["blocks.publish"],
				byCode["theme.write"], byCode["images.write"],
				byCode["audit.read"], byCode["users.manage"],
			},
		},
		{
			Name: "editor",
			Permissions: []domain.Permission{
				byCode["pages.read"], byCode["pages.write"], byCode["pages.publish"],
				byCode["blocks.write"], byCode["blocks.publish"],
				byCode["theme.write"], byCode["images.write"],
			},
		},
	}
	return db.Create(&roles).Error
}

func seedAdminUser(db *gorm.DB) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminRole domain.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		return err
	}

	admin := domain.User{
		Email:    "admin@vinealis.example",
		Name:     "Administrator",
		Password: string(hashed),
		Active:   true,
		Roles:    []domain.Role{adminRole},
	}
	return db.Create(&admin).Error
}

func seedThemeDefaults(db *gorm.DB) error {
	defaults := []domain.ThemeDefault{
		{Key: "color.primary", Value: "#5b2333"},
		{Key: "color.secondary", Value: "#8a6d3b"},
		{Key: "color.background", Value: "#faf6f0"},
		{Key: "color.text", Value: "#2d2a26"},
		{Key: "color.accent", Value: "#b59410"},
		{Key: "font.heading", Value: "Playfair Display, serif"},
		{Key: "font.body", Value: "Source Sans 3, sans-serif"},
		{Key: "spacing.section", Value: "6rem"},
		{Key: "spacing.block", Value: "2rem"},
		{Key: "radius.card", Value: "0.5rem"},
	}
	return db.Create(&defaults).Error
}

func seedPages(db *gorm.DB) error {
	pages := []domain.Page{
		{
			Route: "/home",
			Title: "Home",
			DefaultContent: `{"blocks":[` +
				`{"type":"hero","content":{"heading":"Welcome","subheading":"Estate wines from our family vineyard"}},` +
				`{"type":"text","content":{"html":"<p>Handcrafted wines since 1987.</p>"}}]}`,
		},
		{
			Route: "/about",
			Title: "About",
			DefaultContent: `{"blocks":[` +
				`{"type":"text","content":{"html":"<p>Our story begins on a south-facing slope above the river.</p>"}}]}`,
		},
		{
			Route: "/wines",
			Title: "Wines",
			DefaultContent: `{"blocks":[` +
				`{"type":"text","content":{"html":"<p>Current releases and library vintages.</p>"}}]}`,
		},
		{
			Route: "/visit",
			Title: "Visit",
			DefaultContent: `{"blocks":[` +
				`{"type":"text","content":{"html":"<p>Tastings by appointment, Thursday through Sunday.</p>"}}]}`,
		},
		{
			Route: "/contact",
			Title: "Contact",
			DefaultContent: `{"blocks":[` +
				`{"type":"text","content":{"html":"<p>Write to us or call the cellar door.</p>"}}]}`,
		},
	}
	return db.Create(&pages).Error
}
