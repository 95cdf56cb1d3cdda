package usecase

import (
	"context"
	"log"
	"strings"

	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/infrastructure/portalapi"
)

const (
	MsgCreateJobFailed = "Failed to create job"
	MsgDeleteJobFailed = "Failed to delete job"
	MsgSeedFailed      = "Failed to seed data"
	MsgJobCreated      = "Job created successfully!"
	MsgJobDeleted      = "Job deleted successfully"
)

type AdminAPI interface {
	AdminDashboard(ctx context.Context, token string) (admin.Snapshot, error)
	ListJobs(ctx context.Context, f job.Filters) ([]job.Job, error)
	CreateJob(ctx context.Context, token string, in job.CreateInput) (job.Job, error)
	DeleteJob(ctx context.Context, token, id string) error
	SeedData(ctx context.Context, token string) (string, error)
}

// JobsNotifier is told about every successful job mutation.
type JobsNotifier interface {
	NotifyJobsUpdated(reason, jobID string)
}

type AdminOutcome struct {
	Result
	Message string
	Jobs    []job.Job
	Job     *job.Job
}

// Admin runs the admin panel's operations. Mutations never patch the job
// list locally: every successful mutation is followed by one re-fetch.
type Admin struct {
	api      AdminAPI
	notifier JobsNotifier
	logger   *log.Logger
}

func NewAdminUsecase(api AdminAPI, notifier JobsNotifier, logger *log.Logger) *Admin {
	return &Admin{api: api, notifier: notifier, logger: logger}
}

func (a *Admin) logf(format string, args ...any) {
	if a.logger != nil {
		a.logger.Printf("[Admin] "+format, args...)
	}
}

func (a *Admin) notify(reason, jobID string) {
	if a.notifier == nil {
		return
	}
	a.notifier.NotifyJobsUpdated(reason, jobID)
}

func (a *Admin) Dashboard(ctx context.Context, token string) (admin.Snapshot, error) {
	if strings.TrimSpace(token) == "" {
		return admin.Snapshot{}, ErrNoSession
	}
	return a.api.AdminDashboard(ctx, token)
}

func (a *Admin) ListJobs(ctx context.Context) ([]job.Job, error) {
	return a.api.ListJobs(ctx, nil)
}

func (a *Admin) CreateJob(ctx context.Context, token string, in job.CreateInput) AdminOutcome {
	if strings.TrimSpace(token) == "" {
		return AdminOutcome{Result: fail(MsgCreateJobFailed)}
	}
	created, err := a.api.CreateJob(ctx, token, in)
	if err != nil {
		a.logf("create job failed: %v", err)
		return AdminOutcome{Result: fail(portalapi.MessageOr(err, MsgCreateJobFailed))}
	}
	a.notify("created", created.ID)

	out := AdminOutcome{Result: ok(), Message: MsgJobCreated, Job: &created}
	out.Jobs = a.refetch(ctx)
	return out
}

// DeleteJob deletes the job and then re-fetches the list exactly once.
func (a *Admin) DeleteJob(ctx context.Context, token, id string) AdminOutcome {
	id = strings.TrimSpace(id)
	if strings.TrimSpace(token) == "" || id == "" {
		return AdminOutcome{Result: fail(MsgDeleteJobFailed)}
	}
	if err := a.api.DeleteJob(ctx, token, id); err != nil {
		a.logf("delete job failed id=%s: %v", id, err)
		return AdminOutcome{Result: fail(portalapi.MessageOr(err, MsgDeleteJobFailed))}
	}
	a.notify("deleted", id)

	return AdminOutcome{Result: ok(), Message: MsgJobDeleted, Jobs: a.refetch(ctx)}
}

// Seed asks the API to insert its sample jobs and then re-fetches the list.
func (a *Admin) Seed(ctx context.Context, token string) AdminOutcome {
	if strings.TrimSpace(token) == "" {
		return AdminOutcome{Result: fail(MsgSeedFailed)}
	}
	msg, err := a.api.SeedData(ctx, token)
	if err != nil {
		a.logf("seed failed: %v", err)
		return AdminOutcome{Result: fail(portalapi.MessageOr(err, MsgSeedFailed))}
	}
	a.notify("seeded", "")

	return AdminOutcome{Result: ok(), Message: msg, Jobs: a.refetch(ctx)}
}

func (a *Admin) refetch(ctx context.Context) []job.Job {
	jobs, err := a.api.ListJobs(ctx, nil)
	if err != nil {
		a.logf("re-fetch jobs failed: %v", err)
		return nil
	}
	return jobs
}
