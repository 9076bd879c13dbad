package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/authz"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/metrics"
	"KolAnalytics/internal/pkg/util"
	"KolAnalytics/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"
)

type PromotionIngestService interface {
	// Ingest 从广告平台抓取素材推广数据并幂等写入，(素材, 日期) 已存在的行跳过
	Ingest(ctx context.Context, actor *model.Actor, materialID string, dateRange *adplatform.DateRange) (*dto.IngestResultDTO, error)
	IngestDTO(ctx context.Context, actor *model.Actor, ingestDTO *dto.IngestDTO) (*dto.IngestResultDTO, error)
}

type PromotionIngestServiceImpl struct {
	materialRepo     repository.MaterialRepo
	promotionRepo    repository.PromotionRepo
	policy           authz.AccessPolicy
	source           adplatform.Client
	dashboardService DashboardService
	metrics          *metrics.Metrics
	maxRangeDays     int
}

func NewPromotionIngestService(
	materialRepo repository.MaterialRepo,
	promotionRepo repository.PromotionRepo,
	policy authz.AccessPolicy,
	source adplatform.Client,
	dashboardService DashboardService,
	m *metrics.Metrics,
	maxRangeDays int,
) PromotionIngestService {
	return &PromotionIngestServiceImpl{
		materialRepo:     materialRepo,
		promotionRepo:    promotionRepo,
		policy:           policy,
		source:           source,
		dashboardService: dashboardService,
		metrics:          m,
		maxRangeDays:     maxRangeDays,
	}
}

func (s *PromotionIngestServiceImpl) IngestDTO(ctx context.Context, actor *model.Actor, ingestDTO *dto.IngestDTO) (*dto.IngestResultDTO, error) {
	dateRange, err := parseDateRange(ingestDTO.StartDate, ingestDTO.EndDate, s.maxRangeDays)
	if err != nil {
		return nil, err
	}
	return s.Ingest(ctx, actor, ingestDTO.MaterialID, dateRange)
}

func (s *PromotionIngestServiceImpl) Ingest(ctx context.Context, actor *model.Actor, materialID string, dateRange *adplatform.DateRange) (*dto.IngestResultDTO, error) {
	err := authorize(s.policy, actor, model.Resource{Kind: model.KindPromotion, OwnerID: actor.GetID()}, model.ActionCreate)
	if err != nil {
		return nil, err
	}
	if err = validateDateRange(dateRange, s.maxRangeDays); err != nil {
		return nil, err
	}

	material, err := s.materialRepo.GetMaterialByNo(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}

	start := time.Now()
	rows, err := s.source.FetchPromotionRows(ctx, materialID, dateRange)
	if err != nil {
		s.metrics.ObserveIngest("upstream_error", 0, 0, 0, time.Since(start))
		log.WarnContext(ctx, "fetch promotion rows failed", "material_id", materialID, "err", err)
		return nil, upstreamError(err)
	}

	records, duplicated, invalid := s.buildRecords(ctx, actor, material, rows)

	saved, skipped, err := s.promotionRepo.SaveIngested(ctx, material.ID, records)
	if err != nil {
		s.metrics.ObserveIngest("failed", 0, 0, invalid, time.Since(start))
		return nil, fmt.Errorf("save ingested promotions for %s: %w", materialID, err)
	}
	skipped += duplicated

	s.metrics.ObserveIngest("success", saved, skipped, invalid, time.Since(start))
	if saved > 0 {
		if err = s.dashboardService.Invalidate(ctx); err != nil {
			logCacheError(ctx, err)
		}
	}

	log.InfoContext(ctx, "promotion ingest finished",
		"material_id", materialID,
		"actor_id", actor.ID,
		"fetched", len(rows),
		"saved", saved,
		"skipped", skipped,
		"errors", invalid,
	)

	return &dto.IngestResultDTO{
		MaterialID:   materialID,
		SavedCount:   saved,
		SkippedCount: skipped,
		ErrorCount:   invalid,
	}, nil
}

// buildRecords 校验上游数据并转换为待写入记录
// 日期格式错误、金额为负、日期在未来的行计入 invalid；同一批次重复日期只保留第一条
func (s *PromotionIngestServiceImpl) buildRecords(ctx context.Context, actor *model.Actor, material *model.Material, rows []adplatform.PromotionRow) ([]*model.PromotionRecord, int, int) {
	today := util.Today()
	seen := make(map[time.Time]struct{}, len(rows))
	records := make([]*model.PromotionRecord, 0, len(rows))
	duplicated, invalid := 0, 0

	for _, row := range rows {
		date, err := util.ParseDate(row.Date)
		if err != nil {
			invalid++
			log.WarnContext(ctx, "skip promotion row with malformed date", "material_id", material.MaterialNo, "date", row.Date)
			continue
		}
		if date.After(today) {
			invalid++
			log.WarnContext(ctx, "skip promotion row with future date", "material_id", material.MaterialNo, "date", row.Date)
			continue
		}
		if err = validateMoney(row.Cost, row.SalesAmount); err != nil {
			invalid++
			log.WarnContext(ctx, "skip promotion row with negative amount", "material_id", material.MaterialNo, "date", row.Date)
			continue
		}
		if _, ok := seen[date]; ok {
			duplicated++
			continue
		}
		seen[date] = struct{}{}

		records = append(records, &model.PromotionRecord{
			MaterialID:      material.ID,
			Date:            date,
			Name:            material.Title,
			ExposureCount:   row.ExposureCount,
			ClickCount:      row.ClickCount,
			ConversionCount: row.ConversionCount,
			Cost:            row.Cost.Round(2),
			SalesAmount:     row.SalesAmount.Round(2),
			CreatedBy:       actor.ID,
		})
	}
	return records, duplicated, invalid
}
