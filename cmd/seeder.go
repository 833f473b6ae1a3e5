package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/hr-management/internal/objectperm"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Named permission exceptions seeded alongside the generated codenames.
var exceptionPermissions = []struct {
	Codename string
	Desc     string
	Category string
}{
	{"can_change_user_password", "Can change another user's password", "user"},
	{"can_activate_and_deactivate_user", "Can activate and deactivate user accounts", "user"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with permission catalog and sample accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}

		seedPermissionCatalog(db)
		adminID := seedUser(db, "admin@mail.com", "Admin", true, true)
		hrID := seedUser(db, "hr@mail.com", "HR Staff", false, false)

		grantAllPermissions(db, adminID)
		seedGroup(db, "hr-managers", "HR managers with full department access", hrID, []string{
			objectperm.ModelDepartment.ViewPermission(),
			objectperm.ModelDepartment.CreatePermission(),
			objectperm.ModelAttendance.ViewPermission(),
			objectperm.ModelAttendance.CreatePermission(),
		})

		fmt.Println("Seed complete")
	},
}

func clearSeedData(db *gorm.DB) {
	tables := []string{
		"user_permissions", "group_permissions", "user_groups",
		"object_permission_users", "object_permission_groups", "object_permissions",
		"permissions", "permission_categories", "groups",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing permission data")
}

// seedPermissionCatalog inserts one category per known model plus the
// generated can_<verb>_<model> codenames, then the named exceptions.
func seedPermissionCatalog(db *gorm.DB) {
	models := []objectperm.Model{
		objectperm.ModelDepartment,
		objectperm.ModelAttendance,
		objectperm.ModelEmployee,
		objectperm.ModelLeave,
		objectperm.ModelOvertime,
		objectperm.ModelProject,
		objectperm.ModelClient,
	}

	for _, m := range models {
		categoryID := ensureCategory(db, string(m))

		codenames := []struct {
			Codename string
			Desc     string
		}{
			{m.ViewPermission(), fmt.Sprintf("Can view %s records", m)},
			{m.CreatePermission(), fmt.Sprintf("Can create %s records", m)},
			{m.EditPermission(), fmt.Sprintf("Can edit %s records", m)},
			{m.DeletePermission(), fmt.Sprintf("Can delete %s records", m)},
			{m.ExportPermission(), fmt.Sprintf("Can export %s records", m)},
		}
		for _, c := range codenames {
			ensurePermission(db, c.Codename, c.Desc, categoryID)
		}
	}

	for _, p := range exceptionPermissions {
		categoryID := ensureCategory(db, p.Category)
		ensurePermission(db, p.Codename, p.Desc, categoryID)
	}

	fmt.Println("Permission catalog seeded")
}

func ensureCategory(db *gorm.DB, name string) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM permission_categories WHERE name = ?", name).Row().Scan(&id); err == nil {
		return id
	}
	if err := db.Exec("INSERT INTO permission_categories (name, created_at) VALUES (?, now())", name).Error; err != nil {
		log.Fatalf("failed to insert permission category %s: %v", name, err)
	}
	if err := db.Raw("SELECT id FROM permission_categories WHERE name = ?", name).Row().Scan(&id); err != nil {
		log.Fatalf("category not found after insert %s: %v", name, err)
	}
	return id
}

func ensurePermission(db *gorm.DB, codename, desc string, categoryID int64) {
	var id int64
	if err := db.Raw("SELECT id FROM permissions WHERE codename = ?", codename).Row().Scan(&id); err == nil {
		return
	}
	if err := db.Exec("INSERT INTO permissions (codename, description, category_id, created_at) VALUES (?, ?, ?, now())", codename, desc, categoryID).Error; err != nil {
		log.Fatalf("failed to insert permission %s: %v", codename, err)
	}
}

func seedUser(db *gorm.DB, email, name string, isAdmin, isSuperUser bool) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists:", email)
		return id
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err := db.Exec(
		"INSERT INTO users (email, name, password_hash, is_active, is_email_verified, is_admin, is_superuser, created_at, updated_at) VALUES (?, ?, ?, true, true, ?, ?, now(), now())",
		email, name, string(hash), isAdmin, isSuperUser,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("user not found after insert %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}

func grantAllPermissions(db *gorm.DB, userID int64) {
	rows, err := db.Raw("SELECT id FROM permissions").Rows()
	if err != nil {
		log.Fatalf("failed to list permissions: %v", err)
	}
	defer rows.Close()

	var permissionIDs []int64
	for rows.Next() {
		var pid int64
		if err := rows.Scan(&pid); err != nil {
			log.Fatalf("failed to scan permission id: %v", err)
		}
		permissionIDs = append(permissionIDs, pid)
	}

	for _, pid := range permissionIDs {
		var exists int
		if err := db.Raw("SELECT 1 FROM user_permissions WHERE user_id = ? AND permission_id = ?", userID, pid).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO user_permissions (user_id, permission_id, granted_by) VALUES (?, ?, NULL)", userID, pid).Error; err != nil {
			log.Fatalf("failed to grant permission %d: %v", pid, err)
		}
	}
	fmt.Println("Granted all permissions to user id:", userID)
}

func seedGroup(db *gorm.DB, name, desc string, memberID int64, codenames []string) {
	var groupID int64
	if err := db.Raw("SELECT id FROM groups WHERE name = ?", name).Row().Scan(&groupID); err != nil {
		if err := db.Exec("INSERT INTO groups (name, description, is_active, created_at, updated_at) VALUES (?, ?, true, now(), now())", name, desc).Error; err != nil {
			log.Fatalf("failed to insert group %s: %v", name, err)
		}
		if err := db.Raw("SELECT id FROM groups WHERE name = ?", name).Row().Scan(&groupID); err != nil {
			log.Fatalf("group not found after insert %s: %v", name, err)
		}
		fmt.Println("Seeded group:", name)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM user_groups WHERE user_id = ? AND group_id = ?", memberID, groupID).Row().Scan(&exists); err != nil {
		if err := db.Exec("INSERT INTO user_groups (user_id, group_id) VALUES (?, ?)", memberID, groupID).Error; err != nil {
			log.Fatalf("failed to add user to group %s: %v", name, err)
		}
	}

	for _, codename := range codenames {
		var pid int64
		if err := db.Raw("SELECT id FROM permissions WHERE codename = ?", codename).Row().Scan(&pid); err != nil {
			log.Fatalf("permission not found %s: %v", codename, err)
		}
		if err := db.Raw("SELECT 1 FROM group_permissions WHERE group_id = ? AND permission_id = ?", groupID, pid).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO group_permissions (group_id, permission_id) VALUES (?, ?)", groupID, pid).Error; err != nil {
			log.Fatalf("failed to grant %s to group %s: %v", codename, name, err)
		}
	}
}
