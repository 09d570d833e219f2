// Package testutil holds fixtures shared by the tests of several packages.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/goal"
	"github.com/greencampus/greencampus/core/resource"
	"github.com/greencampus/greencampus/core/user"
)

// NewConfig returns a configuration suitable for tests, without reading the environment.
func NewConfig() *core.Config {
	return &core.Config{
		TestMode:        true,
		Env:             "TEST",
		AppName:         "GreenCampus",
		SecretKey:       "test-secret",
		FrontendBaseURL: "http://localhost:3000",
		AllowedOrigins:  []string{"*"},
		Server: core.ServerConfig{
			ShutdownTimeout:           time.Second,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
		},
		Database: core.DatabaseConfig{Engine: core.EngineMemory},
	}
}

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd, role string, createdAt ...time.Time) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateRecord(
	t *testing.T,
	repo resource.Repository,
	owner user.User,
	electricity, water, waste float64,
	month, year int,
	createdAt ...time.Time,
) resource.Record {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	rec := resource.Record{
		ID:               uuid.New().String(),
		UserID:           owner.ID,
		ElectricityUsage: electricity,
		WaterConsumption: water,
		WasteGenerated:   waste,
		Month:            month,
		Year:             year,
		CreatedAt:        tstamp,
		UpdatedAt:        tstamp,
	}
	rec, err := repo.CreateRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateRecord() failed: %v", err)
	}
	return rec
}

func CreateGoal(t *testing.T, repo goal.Repository, targetType string, target float64, desc string, createdAt ...time.Time) goal.Goal {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	gl := goal.Goal{
		ID:          uuid.New().String(),
		TargetType:  targetType,
		TargetValue: target,
		Description: desc,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	gl, err := repo.CreateGoal(context.Background(), gl)
	if err != nil {
		t.Fatalf("CreateGoal() failed: %v", err)
	}
	return gl
}
