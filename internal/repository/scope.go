package repository

import (
	"KolAnalytics/internal/model"

	"gorm.io/gorm"
)

// ScopeFor 按角色限制可见行：商务只能看到自己创建的达人、素材及其名下达人的推广数据，投手可见全部
// 只负责读过滤，写权限由 authz.AccessPolicy 判定
func ScopeFor(actor *model.Actor, kind model.Kind) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor == nil || actor.ID == 0 {
			return db.Where("1 = 0")
		}
		switch actor.Role {
		case model.RolePitcher:
			return db
		case model.RoleBusiness:
			switch kind {
			case model.KindInfluencer:
				return db.Where("influencers.created_by = ?", actor.ID)
			case model.KindMaterial:
				return db.Where("materials.created_by = ?", actor.ID)
			case model.KindPromotion:
				return db.Where(
					"promotion_records.material_id IN (SELECT materials.id FROM materials "+
						"JOIN influencers ON influencers.id = materials.influencer_id "+
						"WHERE influencers.created_by = ?)", actor.ID)
			}
		}
		return db.Where("1 = 0")
	}
}

// Paginate 分页，page 从 1 开始
func Paginate(page, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if size < 1 {
			size = 10
		}
		if size > 100 {
			size = 100
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}
