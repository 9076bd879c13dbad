package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func foreignKeys(t *testing.T, db *gorm.DB, table string) []foreignKey {
	t.Helper()
	var keys []foreignKey
	require.NoError(t, db.Raw("SELECT * FROM pragma_foreign_key_list(?)", table).Scan(&keys).Error)
	return keys
}

func TestAutoMigrate_ForeignKeys(t *testing.T) {
	db := newTestDB(t)

	assert.Contains(t, foreignKeys(t, db, "promotion_records"),
		foreignKey{Table: "materials", From: "material_id", To: "id", OnDelete: "RESTRICT"})
	assert.Contains(t, foreignKeys(t, db, "materials"),
		foreignKey{Table: "influencers", From: "influencer_id", To: "id", OnDelete: "RESTRICT"})

	for _, key := range foreignKeys(t, db, "materials") {
		assert.NotEqual(t, "promotion_records", key.Table, "materials must not reference promotion_records")
	}
}

func TestAutoMigrate_MaterialNoIsText(t *testing.T) {
	db := newTestDB(t)

	columns, err := db.Migrator().ColumnTypes("materials")
	require.NoError(t, err)
	found := false
	for _, column := range columns {
		if column.Name() == "material_no" {
			found = true
			assert.Contains(t, strings.ToLower(column.DatabaseTypeName()), "varchar")
		}
	}
	assert.True(t, found)
	assert.False(t, db.Migrator().HasColumn("materials", "material_id"))
}
