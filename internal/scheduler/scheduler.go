package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/tallum/pkg/models"
	"github.com/go-co-op/gocron"
)

// StatsSource provides the aggregates that get reported
type StatsSource interface {
	Stats(ctx context.Context, userID string) (models.Stats, error)
}

// Reporter receives each periodic stats snapshot
type Reporter interface {
	Report(stats models.Stats)
}

// LogReporter writes snapshots to the standard logger
type LogReporter struct{}

// Report logs one stats snapshot
func (LogReporter) Report(stats models.Stats) {
	log.Printf("Stats: %d words, average positive %.2f, average negative %.2f",
		stats.TotalWords, stats.AveragePositiveScore, stats.AverageNegativeScore)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    StatsSource
	reporter  Reporter
	interval  time.Duration
	timeout   time.Duration
}

// New creates a scheduler that reports global stats every interval
func New(source StatsSource, reporter Reporter, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		source:    source,
		reporter:  reporter,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).Do(s.reportStats); err != nil {
		return fmt.Errorf("schedule stats report: %w", err)
	}
	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// reportStats fetches the global aggregates and hands them to the reporter
func (s *Scheduler) reportStats() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stats, err := s.source.Stats(ctx, models.GlobalScope)
	if err != nil {
		log.Printf("Error getting stats for report: %v", err)
		return
	}
	s.reporter.Report(stats)
}

// RunManualReport runs the report job once, outside the schedule
func (s *Scheduler) RunManualReport() {
	s.reportStats()
}
