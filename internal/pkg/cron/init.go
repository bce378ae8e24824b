package cron

import log "log/slog"

// InitCron 注册对账与榜单任务并启动调度器
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	log.Info("scheduled jobs started")
	return nil
}
