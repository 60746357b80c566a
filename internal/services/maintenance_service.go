package services

import (
	"context"
	"sync"
	"time"

	"gig-marketplace.com/gig-marketplace/internal/queue"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
)

type viewDelta struct {
	gigID string
	count int64
	done  *sync.WaitGroup
}

// MaintenanceService periodically flushes buffered view counts into the store
// and flips posted gigs past their expiry to expired. Search filters expired
// gigs by expiresAt on its own, so the sweep only keeps status honest.
type MaintenanceService struct {
	queue    chan viewDelta
	workers  int
	wg       sync.WaitGroup
	loopWG   sync.WaitGroup
	repo     repository.GigStore
	views    queue.ViewCounter
	log      *logging.Logger
	interval time.Duration
	stop     chan struct{}
	now      func() time.Time
}

// NewMaintenanceService starts workers that apply view deltas and, when
// interval is positive, a ticker running RunOnce.
func NewMaintenanceService(
	repo repository.GigStore,
	views queue.ViewCounter,
	log *logging.Logger,
	workers int,
	interval time.Duration,
) *MaintenanceService {
	if workers < 0 {
		workers = 0
	}
	p := &MaintenanceService{
		queue:    make(chan viewDelta, workers*4+1),
		workers:  workers,
		repo:     repo,
		views:    views,
		log:      log.With("component", "maintenance"),
		interval: interval,
		stop:     make(chan struct{}),
		now:      func() time.Time { return time.Now().UTC() },
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	if interval > 0 {
		p.loopWG.Add(1)
		go p.loop()
	}

	return p
}

func (p *MaintenanceService) worker(workerID int) {
	defer p.wg.Done()

	for d := range p.queue {
		p.applyDelta(context.Background(), workerID, d)
	}
}

func (p *MaintenanceService) applyDelta(ctx context.Context, workerID int, d viewDelta) {
	defer d.done.Done()

	if err := p.repo.AddViews(ctx, d.gigID, d.count); err != nil {
		p.log.Warn("failed to flush views", "worker", workerID, "gig_id", d.gigID, "count", d.count, "err", err)
	}
}

func (p *MaintenanceService) loop() {
	defer p.loopWG.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.RunOnce(context.Background())
		case <-p.stop:
			return
		}
	}
}

// RunOnce flushes views and expires stale gigs, logging rather than
// returning failures.
func (p *MaintenanceService) RunOnce(ctx context.Context) {
	if _, err := p.FlushViews(ctx); err != nil {
		p.log.Warn("view flush failed", "err", err)
	}
	if n, err := p.ExpireStale(ctx); err != nil {
		p.log.Warn("expiry sweep failed", "err", err)
	} else if n > 0 {
		p.log.Info("expired stale gigs", "count", n)
	}
}

// FlushViews drains the counter and waits until every delta has been
// written. It returns the number of gigs touched.
func (p *MaintenanceService) FlushViews(ctx context.Context) (int, error) {
	counts, err := p.views.Drain(ctx)
	if err != nil {
		return 0, err
	}

	var done sync.WaitGroup
	for gigID, n := range counts {
		if n <= 0 {
			continue
		}
		done.Add(1)
		d := viewDelta{gigID: gigID, count: n, done: &done}
		if p.workers == 0 {
			p.applyDelta(ctx, 0, d)
			continue
		}
		p.queue <- d
	}
	done.Wait()

	return len(counts), nil
}

func (p *MaintenanceService) ExpireStale(ctx context.Context) (int64, error) {
	return p.repo.ExpireStale(ctx, p.now())
}

// Shutdown stops the ticker, flushes what is left and waits for the workers.
// FlushViews must not be called afterwards.
func (p *MaintenanceService) Shutdown(ctx context.Context) {
	close(p.stop)
	p.loopWG.Wait()

	if _, err := p.FlushViews(ctx); err != nil {
		p.log.Warn("final view flush failed", "err", err)
	}
	close(p.queue)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.log.Info("maintenance workers shut down cleanly")
	case <-ctx.Done():
		p.log.Warn("maintenance shutdown timed out")
	}
}
