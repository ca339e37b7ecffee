package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/tallum/pkg/models"
)

type fakeSource struct {
	stats models.Stats
	err   error
	scope chan string
}

func (f *fakeSource) Stats(_ context.Context, userID string) (models.Stats, error) {
	if f.scope != nil {
		select {
		case f.scope <- userID:
		default:
		}
	}
	return f.stats, f.err
}

type recorder struct {
	mu      sync.Mutex
	reports []models.Stats
	got     chan struct{}
}

func newRecorder() *recorder {
	return &recorder{got: make(chan struct{}, 16)}
}

func (r *recorder) Report(stats models.Stats) {
	r.mu.Lock()
	r.reports = append(r.reports, stats)
	r.mu.Unlock()
	r.got <- struct{}{}
}

func TestRunManualReport(t *testing.T) {
	src := &fakeSource{stats: models.Stats{TotalWords: 3, AveragePositiveScore: 1.5}, scope: make(chan string, 1)}
	rec := newRecorder()
	s := New(src, rec, time.Hour)

	s.RunManualReport()
	if len(rec.reports) != 1 || rec.reports[0] != src.stats {
		t.Fatalf("unexpected reports %+v", rec.reports)
	}
	if scope := <-src.scope; scope != models.GlobalScope {
		t.Fatalf("expected the global scope, got %q", scope)
	}
}

func TestRunManualReport_SourceError(t *testing.T) {
	rec := newRecorder()
	s := New(&fakeSource{err: errors.New("database is locked")}, rec, time.Hour)
	s.RunManualReport()
	if len(rec.reports) != 0 {
		t.Fatalf("expected no report on error, got %+v", rec.reports)
	}
}

func TestStart_ReportsImmediately(t *testing.T) {
	rec := newRecorder()
	s := New(&fakeSource{stats: models.Stats{TotalWords: 1}}, rec, time.Hour)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	select {
	case <-rec.got:
	case <-time.After(3 * time.Second):
		t.Fatal("expected the first report when the scheduler starts")
	}
}
