package repository

import (
	"KolAnalytics/internal/model"
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PromotionFilter 推广数据列表筛选条件
type PromotionFilter struct {
	MaterialID *uint64
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Size       int
}

// PromotionSummary 推广数据汇总
type PromotionSummary struct {
	RecordCount int64
	TotalCost   decimal.Decimal
	TotalSales  decimal.Decimal
}

type PromotionRepo interface {
	GetPromotionById(ctx context.Context, id uint64) (*model.PromotionRecord, error)
	GetPromotionByMaterialAndDate(ctx context.Context, materialID uint64, date time.Time) (*model.PromotionRecord, error)
	ListPromotions(ctx context.Context, actor *model.Actor, filter *PromotionFilter) ([]*model.PromotionRecord, int64, error)
	SummarizePromotions(ctx context.Context, actor *model.Actor) (*PromotionSummary, error)
	CreatePromotion(ctx context.Context, record *model.PromotionRecord) error
	UpdatePromotion(ctx context.Context, record *model.PromotionRecord) error
	DeletePromotion(ctx context.Context, id uint64) error
	// SaveIngested 在单个事务内写入抓取结果，已存在的 (material, date) 跳过；任一写入失败整体回滚
	SaveIngested(ctx context.Context, materialID uint64, records []*model.PromotionRecord) (saved int, skipped int, err error)
}

type promotionRepoImpl struct {
	db *gorm.DB
}

func NewPromotionRepo(db *gorm.DB) PromotionRepo {
	return &promotionRepoImpl{db: db}
}

func (s *promotionRepoImpl) GetPromotionById(ctx context.Context, id uint64) (*model.PromotionRecord, error) {
	return s.first(s.db.WithContext(ctx).Preload("Material.Influencer").Where("id = ?", id))
}

func (s *promotionRepoImpl) GetPromotionByMaterialAndDate(ctx context.Context, materialID uint64, date time.Time) (*model.PromotionRecord, error) {
	return s.first(s.db.WithContext(ctx).Where("material_id = ? AND date = ?", materialID, model.TruncateDay(date)))
}

func (s *promotionRepoImpl) ListPromotions(ctx context.Context, actor *model.Actor, filter *PromotionFilter) ([]*model.PromotionRecord, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.PromotionRecord{}).Scopes(ScopeFor(actor, model.KindPromotion))
	if filter.MaterialID != nil {
		query = query.Where("promotion_records.material_id = ?", *filter.MaterialID)
	}
	if filter.StartDate != nil {
		query = query.Where("promotion_records.date >= ?", model.TruncateDay(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("promotion_records.date <= ?", model.TruncateDay(*filter.EndDate))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	records := make([]*model.PromotionRecord, 0)
	result := query.
		Preload("Material.Influencer").
		Order("promotion_records.date DESC, promotion_records.id DESC").
		Scopes(Paginate(filter.Page, filter.Size)).
		Find(&records)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return records, total, nil
}

func (s *promotionRepoImpl) SummarizePromotions(ctx context.Context, actor *model.Actor) (*PromotionSummary, error) {
	summary := &PromotionSummary{}
	err := s.db.WithContext(ctx).
		Model(&model.PromotionRecord{}).
		Scopes(ScopeFor(actor, model.KindPromotion)).
		Select("COUNT(*) AS record_count, COALESCE(SUM(promotion_records.cost), 0) AS total_cost, " +
			"COALESCE(SUM(promotion_records.sales_amount), 0) AS total_sales").
		Scan(summary).Error
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *promotionRepoImpl) CreatePromotion(ctx context.Context, record *model.PromotionRecord) error {
	err := s.db.WithContext(ctx).Omit("Material", "Creator").Create(record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// UpdatePromotion 整行覆盖可编辑字段，ROI 随之重算
func (s *promotionRepoImpl) UpdatePromotion(ctx context.Context, record *model.PromotionRecord) error {
	record.Date = model.TruncateDay(record.Date)
	record.ROI = model.ComputeROI(record.Cost, record.SalesAmount)
	result := s.db.WithContext(ctx).
		Model(&model.PromotionRecord{}).
		Where("id = ?", record.ID).
		Select("material_id", "date", "name", "exposure_count", "click_count", "conversion_count",
			"cost", "sales_amount", "roi", "notes", "updated_at").
		Updates(record)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return result.Error
}

func (s *promotionRepoImpl) DeletePromotion(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.PromotionRecord{}, id).Error
}

func (s *promotionRepoImpl) SaveIngested(ctx context.Context, materialID uint64, records []*model.PromotionRecord) (int, int, error) {
	if len(records) == 0 {
		return 0, 0, nil
	}

	saved, skipped := 0, 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dates := make([]time.Time, 0, len(records))
		for _, record := range records {
			record.Date = model.TruncateDay(record.Date)
			dates = append(dates, record.Date)
		}

		existing := make([]time.Time, 0)
		err := tx.Model(&model.PromotionRecord{}).
			Where("material_id = ? AND date IN ?", materialID, dates).
			Pluck("date", &existing).Error
		if err != nil {
			return err
		}
		seen := make(map[string]struct{}, len(existing)+len(records))
		for _, d := range existing {
			seen[d.Format(time.DateOnly)] = struct{}{}
		}

		for _, record := range records {
			key := record.Date.Format(time.DateOnly)
			if _, ok := seen[key]; ok {
				skipped++
				continue
			}
			record.MaterialID = materialID

			// 并发抓取可能在查询之后抢先写入，唯一约束冲突视为已存在
			result := tx.Omit("Material", "Creator").Clauses(clause.OnConflict{DoNothing: true}).Create(record)
			if result.Error != nil {
				if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
					seen[key] = struct{}{}
					skipped++
					continue
				}
				return result.Error
			}
			seen[key] = struct{}{}
			if result.RowsAffected == 0 {
				record.ID = 0
				skipped++
				continue
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return saved, skipped, nil
}

func (s *promotionRepoImpl) first(query *gorm.DB) (*model.PromotionRecord, error) {
	record := &model.PromotionRecord{}
	result := query.First(record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return record, nil
}
