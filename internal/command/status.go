package command

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/litteralabs/littera/internal/command/output"
	"github.com/litteralabs/littera/internal/entity"
	"github.com/litteralabs/littera/internal/repository"
	"github.com/litteralabs/littera/internal/storage"
)

// Status is the read-only "littera status" probe (§10, grounded on
// original_source/cli/status.py and tui/actions.py): cluster liveness,
// lease remaining, and Review counts by severity.
type Status struct {
	ClusterRunning bool
	LeaseRemaining time.Duration
	ReviewCounts   map[entity.ReviewSeverity]int
}

// Status reports cluster liveness and a Review severity breakdown for
// workID. cluster may be nil when called outside a command path that has
// already acquired one (ClusterRunning/LeaseRemaining are left zero).
func (a *App) Status(ctx context.Context, workID entity.ID, cluster *storage.Cluster) (*Status, error) {
	s := &Status{ReviewCounts: map[entity.ReviewSeverity]int{}}

	if cluster != nil {
		s.ClusterRunning = cluster.Running()
		s.LeaseRemaining = cluster.LeaseRemaining()
	}

	const pageSize = 10000
	reviews, _, err := a.Review.List(ctx, &repository.ListQuery{ParentID: &workID, Pagination: repository.Pagination{PageNo: 1, PageSize: pageSize}})
	if err != nil {
		return nil, err
	}
	for _, r := range reviews {
		s.ReviewCounts[r.Severity]++
	}

	fields := []output.Field{
		{Key: "cluster_running", Value: boolString(s.ClusterRunning)},
		{Key: "lease_remaining", Value: s.LeaseRemaining.String()},
	}
	sevs := make([]string, 0, len(s.ReviewCounts))
	for sev := range s.ReviewCounts {
		sevs = append(sevs, string(sev))
	}
	sort.Strings(sevs)
	for _, sev := range sevs {
		n := s.ReviewCounts[entity.ReviewSeverity(sev)]
		fields = append(fields, output.Field{Key: "reviews_" + sev, Value: strconv.Itoa(n)})
	}
	return s, a.Out.Record(fields, s)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
