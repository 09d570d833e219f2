// Package dashboard composes the role specific dashboard payloads.
package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core/analytics"
	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/user"
)

const (
	StudentRecentRecords = 6
	AdminRecentActivity  = 10
)

type (
	StudentView struct {
		Stats       analytics.Stats        `json:"stats"`
		Resources   []resource.Record      `json:"resources"`
		Suggestions []analytics.Suggestion `json:"suggestions"`
	}

	FacultyView struct {
		CampusStats          analytics.CampusStats    `json:"campusStats"`
		MonthlyTrends        []analytics.MonthlyTrend `json:"monthlyTrends"`
		ResourceDistribution analytics.Distribution   `json:"resourceDistribution"`
	}

	Summary struct {
		TotalUsers   int `json:"totalUsers"`
		TotalRecords int `json:"totalRecords"`
		TotalGoals   int `json:"totalGoals"`
	}

	AdminView struct {
		Summary        Summary              `json:"summary"`
		UsersByRole    []user.RoleCount     `json:"usersByRole"`
		RecentActivity []resource.Entry     `json:"recentActivity"`
		Goals          []goal.Goal          `json:"goals"`
		GoalProgress   []analytics.Progress `json:"goalProgress"`
		OverallStats   analytics.Totals     `json:"overallStats"`
	}
)

type Assembler struct {
	engine  *analytics.Engine
	records *resource.Service
	users   *user.Service
	goals   *goal.Service
}

func NewAssembler(engine *analytics.Engine, records *resource.Service, users *user.Service, goals *goal.Service) *Assembler {
	return &Assembler{
		engine:  engine,
		records: records,
		users:   users,
		goals:   goals,
	}
}

// Student returns the actor's stats, their latest records and the matching advice.
func (a *Assembler) Student(ctx context.Context, actor user.User) (StudentView, error) {
	stats, err := a.engine.AggregateForUser(ctx, actor.ID)
	if err != nil {
		return StudentView{}, errors.Wrap(err, "aggregating user records")
	}
	records, err := a.records.Records(ctx, actor, resource.Filter{UserID: actor.ID})
	if err != nil {
		return StudentView{}, errors.Wrap(err, "querying user records")
	}
	if len(records) > StudentRecentRecords {
		records = records[:StudentRecentRecords]
	}
	return StudentView{
		Stats:       stats,
		Resources:   records,
		Suggestions: analytics.Suggest(stats.Averages()),
	}, nil
}

// Faculty returns the campus aggregates of the period.
func (a *Assembler) Faculty(ctx context.Context, filter analytics.PeriodFilter) (FacultyView, error) {
	var view FacultyView
	var err error

	if view.CampusStats, err = a.engine.AggregateCampus(ctx, filter); err != nil {
		return FacultyView{}, errors.Wrap(err, "aggregating campus records")
	}
	if view.MonthlyTrends, err = a.engine.MonthlyTrends(ctx, filter); err != nil {
		return FacultyView{}, errors.Wrap(err, "computing monthly trends")
	}
	if view.ResourceDistribution, err = a.engine.ResourceDistribution(ctx, filter); err != nil {
		return FacultyView{}, errors.Wrap(err, "computing resource distribution")
	}
	return view, nil
}

// Admin returns the system wide counts, latest activity and goals progress.
// Users, records and goals are each read once so the counts agree with the lists.
func (a *Assembler) Admin(ctx context.Context) (AdminView, error) {
	var view AdminView
	var err error

	if view.UsersByRole, err = a.users.CountByRole(ctx); err != nil {
		return AdminView{}, errors.Wrap(err, "counting users by role")
	}
	for _, rc := range view.UsersByRole {
		view.Summary.TotalUsers += rc.Count
	}

	records, err := a.records.All(ctx)
	if err != nil {
		return AdminView{}, errors.Wrap(err, "querying records")
	}
	view.Summary.TotalRecords = len(records)
	if view.RecentActivity, err = a.records.Populate(ctx, resource.Newest(records, AdminRecentActivity)); err != nil {
		return AdminView{}, errors.Wrap(err, "attaching record owners")
	}

	if view.Goals, err = a.goals.QueryAll(ctx); err != nil {
		return AdminView{}, errors.Wrap(err, "querying goals")
	}
	view.Summary.TotalGoals = len(view.Goals)

	view.OverallStats = analytics.Total(records)
	view.GoalProgress = analytics.GoalProgress(view.Goals, view.OverallStats)
	return view, nil
}
