package backend

import (
	"context"
	"sort"

	"github.com/taskflow-dev/taskflow/pkg/db"
	"github.com/taskflow-dev/taskflow/pkg/proto"
)

// Activity counts the tasks the caller created per UTC day, oldest day first.
func (d *Backend) Activity(ctx context.Context, caller proto.User) ([]proto.ActivityDay, error) {
	times, err := d.store.ListTaskCreationTimes(ctx, d.db, caller.ID)
	if err != nil {
		d.logger.Error("error listing task creation times", "user", caller.ID, "err", err)
		return nil, db.WrapError(err)
	}

	counts := make(map[string]int)
	for _, t := range times {
		counts[t.UTC().Format("2006-01-02")]++
	}

	days := make([]proto.ActivityDay, 0, len(counts))
	for date, n := range counts {
		days = append(days, proto.ActivityDay{Date: date, Count: n})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days, nil
}
