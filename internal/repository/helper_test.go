package repository

import (
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/database"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{Username: username, Email: username + "@example.com", Password: "x", Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedInfluencer(t *testing.T, db *gorm.DB, uid string, owner *model.User) *model.Influencer {
	t.Helper()
	influencer := &model.Influencer{UID: uid, Name: "达人" + uid, PlatformID: "dy-" + uid, CreatedBy: owner.ID}
	require.NoError(t, db.Create(influencer).Error)
	return influencer
}

func seedMaterial(t *testing.T, db *gorm.DB, materialID string, influencer *model.Influencer, owner *model.User) *model.Material {
	t.Helper()
	material := &model.Material{
		MaterialNo:   materialID,
		InfluencerID: influencer.ID,
		VideoURL:     "https://www.douyin.com/video/" + materialID,
		CreatedBy:    owner.ID,
	}
	require.NoError(t, db.Create(material).Error)
	return material
}

func seedPromotion(t *testing.T, db *gorm.DB, material *model.Material, date time.Time, owner *model.User) *model.PromotionRecord {
	t.Helper()
	record := &model.PromotionRecord{
		MaterialID:  material.ID,
		Date:        date,
		Cost:        decimal.NewFromInt(100),
		SalesAmount: decimal.NewFromInt(250),
		CreatedBy:   owner.ID,
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

// execBeforeDelete 在删除 table 的语句执行前，于同一事务内插入一条关联行，模拟计数检查之后的并发写入
func execBeforeDelete(t *testing.T, db *gorm.DB, table, sql string, args ...interface{}) {
	t.Helper()
	fired := false
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:exec_before_delete_"+table, func(tx *gorm.DB) {
		if fired || tx.Statement.Table != table {
			return
		}
		fired = true
		_ = tx.AddError(tx.Session(&gorm.Session{NewDB: true}).Exec(sql, args...).Error)
	}))
}
