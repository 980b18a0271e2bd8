// database/bootstrap.go
package database

import (
	"encoding/json"
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"wellconnect/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.Well{},
		&entities.UserProfile{},
		&entities.DeviceToken{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	// IMPORTANT: run AFTER AutoMigrate so the wells table exists to import into
	if err := migrateLegacyWellPrefs(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	return db
}

// migrateLegacyWellPrefs imports the pre-agent storage format: older builds
// kept the whole well list as one JSON document in legacy_well_prefs(payload).
// After a successful import the table is dropped.
func migrateLegacyWellPrefs(db *gorm.DB) error {
	// does table exist?
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='legacy_well_prefs'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}

	var payload string
	if err := db.Raw(`SELECT payload FROM legacy_well_prefs LIMIT 1`).Scan(&payload).Error; err != nil {
		return fmt.Errorf("read legacy payload: %w", err)
	}

	var wells []entities.Well
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &wells); err != nil {
			return fmt.Errorf("decode legacy payload: %w", err)
		}
	}

	// do it in a transaction
	return db.Transaction(func(tx *gorm.DB) error {
		for i := range wells {
			var count int64
			if err := tx.Model(&entities.Well{}).Where("id = ?", wells[i].ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				// already imported on an earlier run
				continue
			}
			if err := tx.Create(&wells[i]).Error; err != nil {
				return err
			}
		}
		return tx.Exec(`DROP TABLE legacy_well_prefs`).Error
	})
}
