package database

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"wellconnect/entities"
)

func TestOpenSQLiteFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	db := OpenSQLite(path)

	require.NoError(t, db.Create(&entities.Well{ID: 1, Name: "North"}).Error)
	var count int64
	require.NoError(t, db.Model(&entities.Well{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLegacyWellPrefsImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	// lay down the pre-agent format: the whole list as one JSON document
	raw, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, raw.Exec(`CREATE TABLE legacy_well_prefs (payload TEXT)`).Error)
	payload := `[{"id":3,"name":"Imported","water_level":"120"},{"id":5,"name":"Also imported"}]`
	require.NoError(t, raw.Exec(`INSERT INTO legacy_well_prefs (payload) VALUES (?)`, payload).Error)
	sqlDB, err := raw.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	db := OpenSQLite(path)

	var wells []entities.Well
	require.NoError(t, db.Order("id asc").Find(&wells).Error)
	require.Len(t, wells, 2)
	assert.Equal(t, "Imported", wells[0].Name)
	assert.Equal(t, "120", wells[0].WaterLevel)
	assert.Equal(t, uint(5), wells[1].ID)

	// the legacy table is gone after a successful import
	var tbl string
	require.NoError(t, db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='legacy_well_prefs'`).Scan(&tbl).Error)
	assert.Empty(t, tbl)
}
