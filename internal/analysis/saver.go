package analysis

import (
	"context"
	"sync"
	"time"

	"resume-studio/internal/queue"
	"resume-studio/internal/shared/telemetry"
)

const (
	saverBuffer  = 64
	saverTimeout = 5 * time.Second
)

// Saver persists analysis records off the request path. Enqueue never
// blocks and every failure is logged and swallowed; losing a record must
// not surface to the analyze caller.
type Saver struct {
	repo  Repo
	queue queue.Client
	tasks chan Analysis
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewSaver starts the persistence worker. The queue client is optional; when
// present, each stored record is also announced downstream.
func NewSaver(repo Repo, q queue.Client) *Saver {
	s := &Saver{
		repo:  repo,
		queue: q,
		tasks: make(chan Analysis, saverBuffer),
		done:  make(chan struct{}),
	}
	go s.run()
	return s
}

// Enqueue hands a record to the worker. A full or closed saver drops the
// record; the caller never fails.
func (s *Saver) Enqueue(analysis Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		telemetry.Error("analysis save dropped, saver closed", map[string]any{
			"analysisId": analysis.ID,
		})
		return
	}
	select {
	case s.tasks <- analysis:
	default:
		telemetry.Error("analysis save dropped, buffer full", map[string]any{
			"analysisId": analysis.ID,
		})
	}
}

// Close drains the buffer and stops the worker. Safe to call once; records
// enqueued afterwards are dropped.
func (s *Saver) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.tasks)
	s.mu.Unlock()
	<-s.done
}

func (s *Saver) run() {
	defer close(s.done)
	for analysis := range s.tasks {
		s.save(analysis)
	}
}

func (s *Saver) save(analysis Analysis) {
	ctx, cancel := context.WithTimeout(context.Background(), saverTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, analysis); err != nil {
		telemetry.Error("analysis save failed", map[string]any{
			"analysisId": analysis.ID,
			"error":      err.Error(),
		})
		return
	}

	if s.queue == nil {
		return
	}
	msg := queue.Message{
		AnalysisID: analysis.ID,
		UserID:     analysis.UserID,
		Score:      analysis.Score,
		EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
		Version:    1,
	}
	if err := s.queue.Send(ctx, msg); err != nil {
		telemetry.Error("analysis queue notify failed", map[string]any{
			"analysisId": analysis.ID,
			"error":      err.Error(),
		})
	}
}
