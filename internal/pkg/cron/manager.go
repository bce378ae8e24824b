package cron

import (
	"Halation/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine                 *cron.Cron
	followReconcileJob     *job.FollowReconcileJob
	engagementReconcileJob *job.EngagementReconcileJob
	monthlyTopJob          *job.MonthlyTopJob
}

func NewCronManager(
	followReconcileJob *job.FollowReconcileJob,
	engagementReconcileJob *job.EngagementReconcileJob,
	monthlyTopJob *job.MonthlyTopJob,
) *Manager {
	return &Manager{
		engine:                 cron.New(cron.WithSeconds()),
		followReconcileJob:     followReconcileJob,
		engagementReconcileJob: engagementReconcileJob,
		monthlyTopJob:          monthlyTopJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("@every 1m", s.followReconcileJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 1m", s.engagementReconcileJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@every 10m", s.monthlyTopJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
