package worker

import (
	"context"

	"github.com/deskhook/deskhook/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Provisioner runs the end-to-end sequence for one order event.
type Provisioner interface {
	Provision(ctx context.Context, ev *models.OrderEvent) error
}

// DeadLetterFunc receives an event whose run failed. The sender has already
// been acknowledged by then, so this sink is the only place the failure
// surfaces.
type DeadLetterFunc func(ev *models.OrderEvent, err error)

// Dispatcher runs provisioning as detached background work so the webhook
// response never waits on the (potentially multi-second) external call
// chain. Failed runs go to the dead-letter sink; there is no retry and no
// persistence.
type Dispatcher struct {
	svc        Provisioner
	jobs       chan *models.OrderEvent
	workers    int
	deadLetter DeadLetterFunc
	log        *zap.Logger
}

// NewDispatcher creates a dispatcher with the given worker count. A nil
// deadLetter falls back to the error log.
func NewDispatcher(svc Provisioner, workers int, deadLetter DeadLetterFunc, log *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	d := &Dispatcher{
		svc:     svc,
		jobs:    make(chan *models.OrderEvent, 64),
		workers: workers,
		log:     log,
	}
	d.deadLetter = deadLetter
	if d.deadLetter == nil {
		d.deadLetter = d.logDeadLetter
	}
	return d
}

// Submit queues an order event for provisioning. It blocks only when the
// buffer is full.
func (d *Dispatcher) Submit(ev *models.OrderEvent) {
	d.jobs <- ev
}

// Run starts the worker goroutines and blocks until the context is done.
func (d *Dispatcher) Run(ctx context.Context) {
	done := make(chan struct{})
	for i := 0; i < d.workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			d.work(ctx)
		}()
	}
	for i := 0; i < d.workers; i++ {
		<-done
	}
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.log.Debug("dispatcher worker is done")
			return
		case ev, ok := <-d.jobs:
			if !ok {
				return
			}

			runID := uuid.NewString()
			d.log.Info("provisioning run started",
				zap.String("run_id", runID), zap.String("customer", ev.CustomerEmail))

			if err := d.svc.Provision(ctx, ev); err != nil {
				d.deadLetter(ev, err)
				continue
			}

			d.log.Info("provisioning run completed", zap.String("run_id", runID))
		}
	}
}

func (d *Dispatcher) logDeadLetter(ev *models.OrderEvent, err error) {
	d.log.Error("provisioning run dead-lettered",
		zap.String("customer", ev.CustomerEmail),
		zap.String("issue_kind", ev.Routing.IssueKind),
		zap.Error(err))
}
