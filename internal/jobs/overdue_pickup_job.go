package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"shoporders/internal/core/application/usecases/queries"
	"shoporders/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PickupOverdueNotice is the notice type sent to vendor notification topics.
const PickupOverdueNotice = "PICKUP_OVERDUE"

// OverduePickupsFinder is the query behind OverduePickupJob.
type OverduePickupsFinder interface {
	Handle(ctx context.Context, query queries.GetOverduePickupsQuery) ([]queries.GetOverduePickupsQueryResponse, error)
}

// VendorNotice is the payload published to a vendor's notifications topic.
type VendorNotice struct {
	Type                string    `json:"type"`
	Message             string    `json:"message"`
	OrderID             string    `json:"orderId"`
	ShopName            string    `json:"shopName"`
	CustomerName        string    `json:"customerName"`
	EstimatedPickupTime time.Time `json:"estimatedPickupTime"`
}

// OverduePickupJob reminds vendors of orders that are ready but not collected.
// Each order is announced once; an order that stops being overdue is forgotten, so it
// would be announced again only if it became overdue again.
type OverduePickupJob struct {
	finder   OverduePickupsFinder
	notifier ports.Notifier
	schedule string
	grace    time.Duration
	now      func() time.Time

	mu       sync.Mutex
	notified map[string]struct{}

	cron   *cron.Cron
	logger *slog.Logger
}

// NewOverduePickupJob creates the job. schedule is a cron expression with seconds.
func NewOverduePickupJob(
	finder OverduePickupsFinder,
	notifier ports.Notifier,
	schedule string,
	grace time.Duration,
	logger *slog.Logger,
) *OverduePickupJob {
	return &OverduePickupJob{
		finder:   finder,
		notifier: notifier,
		schedule: schedule,
		grace:    grace,
		now:      time.Now,
		notified: make(map[string]struct{}),
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_pickup_job"),
	}
}

// Start schedules the job.
func (j *OverduePickupJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue pickup job started", "schedule", j.schedule, "grace", j.grace)
	return nil
}

// Stop unschedules the job and waits for a running pass to finish.
func (j *OverduePickupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue pickup job stopped")
}

// Run performs one pass and returns the number of notices sent.
func (j *OverduePickupJob) Run(ctx context.Context) int {
	query, err := queries.NewGetOverduePickupsQuery(j.now(), j.grace)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue pickup job failed", "error", err)
		return 0
	}

	overdue, err := j.finder.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue pickup job failed", "error", err)
		return 0
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	current := make(map[string]struct{}, len(overdue))
	sent := 0
	for _, o := range overdue {
		key := o.OrderID.String()
		current[key] = struct{}{}
		if _, done := j.notified[key]; done {
			continue
		}

		j.notifier.Publish(ctx, ports.VendorNotificationsTopic(o.VendorID), newVendorNotice(o))
		sent++
	}
	j.notified = current

	if sent > 0 {
		j.logger.InfoContext(ctx, "Overdue pickups announced", "count", sent)
	}
	return sent
}

func newVendorNotice(o queries.GetOverduePickupsQueryResponse) VendorNotice {
	return VendorNotice{
		Type: PickupOverdueNotice,
		Message: fmt.Sprintf("Order %s for %s was due for pickup at %s and has not been collected",
			o.OrderID.String(), o.CustomerName, o.EstimatedPickupTime.Format(time.Kitchen)),
		OrderID:             o.OrderID.String(),
		ShopName:            o.ShopName,
		CustomerName:        o.CustomerName,
		EstimatedPickupTime: o.EstimatedPickupTime,
	}
}
