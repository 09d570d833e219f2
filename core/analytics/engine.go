package analytics

import (
	"context"

	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/user"
)

// RecordSource reads records from the store.
type RecordSource interface {
	QueryRecords(ctx context.Context, filter resource.Filter) ([]resource.Record, error)
}

// Engine computes aggregates over the records of a RecordSource.
// Reads are snapshots, nothing is cached between calls.
type Engine struct {
	records RecordSource
}

func NewEngine(records RecordSource) *Engine {
	return &Engine{records: records}
}

func (e *Engine) query(ctx context.Context, filter resource.Filter) ([]resource.Record, error) {
	records, err := e.records.QueryRecords(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return records, nil
}

// AggregateForUser sums and averages the records owned by the user.
func (e *Engine) AggregateForUser(ctx context.Context, userID string) (Stats, error) {
	records, err := e.query(ctx, resource.Filter{UserID: userID})
	if err != nil {
		return Stats{}, err
	}
	return Summarize(records).Stats, nil
}

// AggregateCampus sums and averages the records of every user in the period.
func (e *Engine) AggregateCampus(ctx context.Context, filter PeriodFilter) (CampusStats, error) {
	records, err := e.query(ctx, filter.records())
	if err != nil {
		return CampusStats{}, err
	}
	return Summarize(records), nil
}

// MonthlyTrends returns the usage of the MaxTrends most recent months in the period.
func (e *Engine) MonthlyTrends(ctx context.Context, filter PeriodFilter) ([]MonthlyTrend, error) {
	records, err := e.query(ctx, filter.records())
	if err != nil {
		return nil, err
	}
	return Trends(records, MaxTrends), nil
}

func (e *Engine) ResourceDistribution(ctx context.Context, filter PeriodFilter) (Distribution, error) {
	records, err := e.query(ctx, filter.records())
	if err != nil {
		return Distribution{}, err
	}
	return Distribute(records), nil
}

// OverallTotals sums every record in the store.
func (e *Engine) OverallTotals(ctx context.Context) (Totals, error) {
	records, err := e.query(ctx, resource.Filter{})
	if err != nil {
		return Totals{}, err
	}
	return Total(records), nil
}

// Analytics aggregates the actor's own records, or every record for actors managing all of them.
func (e *Engine) Analytics(ctx context.Context, actor user.User) (Stats, error) {
	if actor.Can(user.CapManageAllRecords) {
		cs, err := e.AggregateCampus(ctx, PeriodFilter{})
		return cs.Stats, err
	}
	return e.AggregateForUser(ctx, actor.ID)
}
