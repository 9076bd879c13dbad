package job

import (
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/consts"
	"KolAnalytics/internal/pkg/metrics"
	"KolAnalytics/internal/pkg/util"
	"KolAnalytics/internal/repository"
	"KolAnalytics/internal/service"
	"context"
	log "log/slog"
	"time"
)

const promotionFetchJobName = "promotion_fetch"

// FetchSummary 一次全量抓取的汇总
type FetchSummary struct {
	Materials int
	Failed    int
	Saved     int
	Skipped   int
	Errors    int
}

// PromotionFetchJob 每日抓取所有素材前一天的推广数据，记录归属于第一个投手账号
type PromotionFetchJob struct {
	userRepo     repository.UserRepo
	materialRepo repository.MaterialRepo
	ingestSvc    service.PromotionIngestService
	metrics      *metrics.Metrics
	batchSize    int
}

func NewPromotionFetchJob(
	userRepo repository.UserRepo,
	materialRepo repository.MaterialRepo,
	ingestSvc service.PromotionIngestService,
	m *metrics.Metrics,
	batchSize int,
) *PromotionFetchJob {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &PromotionFetchJob{
		userRepo:     userRepo,
		materialRepo: materialRepo,
		ingestSvc:    ingestSvc,
		metrics:      m,
		batchSize:    batchSize,
	}
}

func (s *PromotionFetchJob) Run() {
	ctx := newJobContext(promotionFetchJobName)
	locked := withLock(ctx, consts.PromotionFetchJobLock, 30*time.Minute, func(ctx context.Context) {
		yesterday := util.Today().AddDate(0, 0, -1)
		if _, err := s.FetchRange(ctx, &adplatform.DateRange{Start: yesterday, End: yesterday}); err != nil {
			s.metrics.ObserveJob(promotionFetchJobName, "failed")
			log.ErrorContext(ctx, "promotion fetch job failed", "err", err)
			return
		}
		s.metrics.ObserveJob(promotionFetchJobName, "success")
	})
	if !locked {
		s.metrics.ObserveJob(promotionFetchJobName, "skipped")
	}
}

// FetchRange 对所有素材执行一次抓取，单个素材失败只记录日志
func (s *PromotionFetchJob) FetchRange(ctx context.Context, dateRange *adplatform.DateRange) (*FetchSummary, error) {
	summary := &FetchSummary{}

	pitcher, err := s.userRepo.GetFirstUserByRole(ctx, model.RolePitcher)
	if err != nil {
		return nil, err
	}
	if pitcher == nil {
		log.WarnContext(ctx, "no pitcher user, skip promotion fetch")
		return summary, nil
	}
	actor := pitcher.Actor()

	err = s.materialRepo.ListAllMaterialIDs(ctx, s.batchSize, func(batch []*model.Material) error {
		for _, material := range batch {
			summary.Materials++
			result, err := s.ingestSvc.Ingest(ctx, actor, material.MaterialNo, dateRange)
			if err != nil {
				summary.Failed++
				log.WarnContext(ctx, "ingest material failed", "material_id", material.MaterialNo, "err", err)
				continue
			}
			summary.Saved += result.SavedCount
			summary.Skipped += result.SkippedCount
			summary.Errors += result.ErrorCount
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "promotion fetch finished",
		"materials", summary.Materials,
		"failed", summary.Failed,
		"saved", summary.Saved,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return summary, nil
}
