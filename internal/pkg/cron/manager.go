package cron

import (
	"KolAnalytics/internal/api/config"
	"KolAnalytics/internal/job"
	"fmt"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	cfg               config.JobsConfig
	promotionFetchJob *job.PromotionFetchJob
	materialSyncJob   *job.MaterialSyncJob
	registered        []registeredJob
}

type registeredJob struct {
	id   cron.EntryID
	name string
	spec string
}

// JobSchedule 已注册任务的下一次触发时间
type JobSchedule struct {
	Name string
	Spec string
	Next time.Time
}

func NewCronManager(cfg config.JobsConfig, promotionFetchJob *job.PromotionFetchJob, materialSyncJob *job.MaterialSyncJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cfg:               cfg,
		promotionFetchJob: promotionFetchJob,
		materialSyncJob:   materialSyncJob,
	}
}

// RegisterJobs 注册定时任务，表达式带秒
func (s *Manager) RegisterJobs() error {
	if err := s.add("promotion_fetch", s.cfg.PromotionFetchSpec, s.promotionFetchJob); err != nil {
		return err
	}
	return s.add("material_sync", s.cfg.MaterialSyncSpec, s.materialSyncJob)
}

func (s *Manager) add(name, spec string, j cron.Job) error {
	if spec == "" {
		return fmt.Errorf("register %s job: empty spec", name)
	}
	id, err := s.engine.AddJob(spec, j)
	if err != nil {
		return fmt.Errorf("register %s job %q: %w", name, spec, err)
	}
	s.registered = append(s.registered, registeredJob{id: id, name: name, spec: spec})
	return nil
}

// Schedules 按注册顺序返回各任务相对 now 的下一次触发时间
func (s *Manager) Schedules(now time.Time) []JobSchedule {
	out := make([]JobSchedule, 0, len(s.registered))
	for _, r := range s.registered {
		out = append(out, JobSchedule{
			Name: r.name,
			Spec: r.spec,
			Next: s.engine.Entry(r.id).Schedule.Next(now),
		})
	}
	return out
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 停止调度并等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
