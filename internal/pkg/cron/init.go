package cron

import (
	log "log/slog"
	"time"
)

// InitCron 注册并启动定时任务，配置关闭时不启动；任一表达式非法则整体失败
func InitCron(mgr *Manager) error {
	if !mgr.cfg.Enabled {
		log.Info("Cron Jobs disabled")
		return nil
	}
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	for _, sch := range mgr.Schedules(time.Now()) {
		log.Info("Cron job registered", "job", sch.Name, "spec", sch.Spec, "next_run", sch.Next)
	}
	mgr.Start()
	return nil
}
