package job

import (
	"KolAnalytics/internal/model"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/consts"
	"KolAnalytics/internal/pkg/metrics"
	"KolAnalytics/internal/pkg/util"
	"KolAnalytics/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const materialSyncJobName = "material_sync"

// MaterialSyncJob 定期从广告平台同步素材标题与播放、点赞等统计
type MaterialSyncJob struct {
	materialRepo repository.MaterialRepo
	source       adplatform.Client
	metrics      *metrics.Metrics
	batchSize    int
}

func NewMaterialSyncJob(materialRepo repository.MaterialRepo, source adplatform.Client, m *metrics.Metrics, batchSize int) *MaterialSyncJob {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &MaterialSyncJob{
		materialRepo: materialRepo,
		source:       source,
		metrics:      m,
		batchSize:    batchSize,
	}
}

func (s *MaterialSyncJob) Run() {
	ctx := newJobContext(materialSyncJobName)
	locked := withLock(ctx, consts.MaterialSyncJobLock, time.Hour, func(ctx context.Context) {
		if _, err := s.Sync(ctx); err != nil {
			s.metrics.ObserveJob(materialSyncJobName, "failed")
			log.ErrorContext(ctx, "material sync job failed", "err", err)
			return
		}
		s.metrics.ObserveJob(materialSyncJobName, "success")
	})
	if !locked {
		s.metrics.ObserveJob(materialSyncJobName, "skipped")
	}
}

// Sync 返回更新成功的素材数，上游只返回部分素材时其余保持不变
func (s *MaterialSyncJob) Sync(ctx context.Context) (int, error) {
	updated := 0
	err := s.materialRepo.ListAllMaterialIDs(ctx, s.batchSize, func(batch []*model.Material) error {
		wanted := make(map[string]struct{}, len(batch))
		ids := make([]string, 0, len(batch))
		for _, material := range batch {
			wanted[material.MaterialNo] = struct{}{}
			ids = append(ids, material.MaterialNo)
		}

		rows, err := s.source.FetchMaterialBatch(ctx, ids)
		if err != nil {
			log.WarnContext(ctx, "fetch material batch failed", "size", len(ids), "err", err)
			return nil
		}

		for _, row := range rows {
			if _, ok := wanted[row.MaterialID]; !ok {
				continue
			}
			err = s.materialRepo.UpdateMaterialStats(ctx, row.MaterialID, &repository.MaterialStats{
				Title:        util.PtrString(row.Title),
				PlayCount:    row.PlayCount,
				LikeCount:    row.LikeCount,
				CommentCount: row.CommentCount,
				ShareCount:   row.ShareCount,
			})
			if err != nil {
				log.WarnContext(ctx, "update material stats failed", "material_id", row.MaterialID, "err", err)
				continue
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return updated, err
	}

	log.InfoContext(ctx, "material sync finished", "updated", updated)
	return updated, nil
}
