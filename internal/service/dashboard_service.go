package service

import (
	"KolAnalytics/internal/api/dto"
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/consts"
	"KolAnalytics/internal/pkg/redis"
	"KolAnalytics/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const dashboardCacheTTL = 5 * time.Minute

type DashboardService interface {
	GetDashboard(ctx context.Context, actor *model.Actor) (*dto.DashboardDTO, error)
	// Invalidate 清除所有用户的统计缓存，推广数据写入后调用
	Invalidate(ctx context.Context) error
}

type DashboardServiceImpl struct {
	influencerRepo repository.InfluencerRepo
	materialRepo   repository.MaterialRepo
	promotionRepo  repository.PromotionRepo
}

func NewDashboardService(
	influencerRepo repository.InfluencerRepo,
	materialRepo repository.MaterialRepo,
	promotionRepo repository.PromotionRepo,
) DashboardService {
	return &DashboardServiceImpl{
		influencerRepo: influencerRepo,
		materialRepo:   materialRepo,
		promotionRepo:  promotionRepo,
	}
}

func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, actor *model.Actor) (*dto.DashboardDTO, error) {
	if actor == nil || actor.ID == 0 {
		return nil, ErrUnauthenticated
	}

	// 命中缓存
	key := consts.DashboardKey + strconv.FormatUint(actor.ID, 10)
	value, err := redis.GetValue(ctx, key)
	if err == nil && value != "" {
		dashboard := &dto.DashboardDTO{}
		if err = json.Unmarshal([]byte(value), dashboard); err == nil {
			return dashboard, nil
		}
		log.WarnContext(ctx, "dashboard cache corrupted", "key", key, "err", err)
	}

	dashboard := &dto.DashboardDTO{}
	var summary *repository.PromotionSummary

	// 三类统计使用同一 scope，互不依赖
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.influencerRepo.CountInfluencers(gctx, actor)
		dashboard.InfluencerCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.materialRepo.CountMaterials(gctx, actor)
		dashboard.MaterialCount = count
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = s.promotionRepo.SummarizePromotions(gctx, actor)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	dashboard.PromotionCount = summary.RecordCount
	dashboard.TotalCost = summary.TotalCost.Round(2)
	dashboard.TotalSales = summary.TotalSales.Round(2)
	if roi := model.ComputeROI(summary.TotalCost, summary.TotalSales); roi.Valid {
		dashboard.OverallROI = &roi.Decimal
	}

	payload, err := json.Marshal(dashboard)
	if err == nil {
		if err = redis.SetWithExpiration(ctx, key, string(payload), dashboardCacheTTL); err != nil {
			log.WarnContext(ctx, "set dashboard cache failed", "key", key, "err", err)
		}
	}
	return dashboard, nil
}

func (s *DashboardServiceImpl) Invalidate(ctx context.Context) error {
	return redis.DeleteByPattern(ctx, consts.DashboardKey+"*")
}
