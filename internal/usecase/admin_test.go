package usecase

import (
	"context"
	"net/http"
	"testing"

	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/infrastructure/portalapi"
)

func TestAdmin_DeleteThenSingleRefetch(t *testing.T) {
	api := newFakeAPI()
	api.jobs = []job.Job{{ID: "41"}, {ID: "42"}, {ID: "43"}}
	n := &fakeNotifier{}
	uc := NewAdminUsecase(api, n, nil)

	out := uc.DeleteJob(context.Background(), "tok-admin", "42")
	if !out.Success || out.Message != MsgJobDeleted {
		t.Fatalf("unexpected outcome %+v", out)
	}

	if len(api.calls) != 2 {
		t.Fatalf("expected delete + one re-fetch, got %+v", api.calls)
	}
	if api.calls[0].Name != "delete" || api.calls[0].ID != "42" || api.calls[0].Token != "tok-admin" {
		t.Fatalf("unexpected first call %+v", api.calls[0])
	}
	if api.calls[1].Name != "list" {
		t.Fatalf("expected re-fetch after delete, got %+v", api.calls[1])
	}
	if len(out.Jobs) != 2 {
		t.Fatalf("expected server list after delete, got %+v", out.Jobs)
	}
	if len(n.reasons) != 1 || n.reasons[0] != "deleted" {
		t.Fatalf("expected one deleted notification, got %+v", n.reasons)
	}
}

func TestAdmin_DeleteFailureSkipsRefetch(t *testing.T) {
	api := newFakeAPI()
	api.deleteErr = &portalapi.APIError{Status: http.StatusForbidden, Detail: "Admin access required"}
	n := &fakeNotifier{}
	uc := NewAdminUsecase(api, n, nil)

	out := uc.DeleteJob(context.Background(), "tok", "42")
	if out.Success || out.Error != "Admin access required" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if api.count("list") != 0 || len(n.reasons) != 0 {
		t.Fatalf("failed delete must not refetch or notify")
	}
}

func TestAdmin_RequiresToken(t *testing.T) {
	api := newFakeAPI()
	uc := NewAdminUsecase(api, nil, nil)
	ctx := context.Background()

	if out := uc.DeleteJob(ctx, "", "42"); out.Success {
		t.Fatalf("expected failure without token")
	}
	if out := uc.Seed(ctx, " "); out.Success {
		t.Fatalf("expected failure without token")
	}
	if _, err := uc.Dashboard(ctx, ""); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no API calls, got %+v", api.calls)
	}
}

func TestAdmin_SeedRefetches(t *testing.T) {
	api := newFakeAPI()
	api.seedMsg = "Seeded 3 mock jobs successfully"
	n := &fakeNotifier{}
	uc := NewAdminUsecase(api, n, nil)

	out := uc.Seed(context.Background(), "tok")
	if !out.Success || out.Message != api.seedMsg {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if api.count("seed") != 1 || api.count("list") != 1 {
		t.Fatalf("expected seed then one refetch, got %+v", api.calls)
	}
	if len(out.Jobs) != 1 {
		t.Fatalf("expected refetched list, got %+v", out.Jobs)
	}
	if len(n.reasons) != 1 || n.reasons[0] != "seeded" {
		t.Fatalf("unexpected notifications %+v", n.reasons)
	}
}

func TestAdmin_CreateAndDashboard(t *testing.T) {
	api := newFakeAPI()
	api.snapshot = admin.Snapshot{TotalJobs: 3, ActiveJobs: 2}
	uc := NewAdminUsecase(api, &fakeNotifier{}, nil)
	ctx := context.Background()

	out := uc.CreateJob(ctx, "tok", job.CreateInput{Title: "Clerk", Organization: "SBI", Category: job.CategoryBanking})
	if !out.Success || out.Job == nil || out.Job.Title != "Clerk" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(out.Jobs) != 1 {
		t.Fatalf("expected refetched list with new job")
	}

	snap, err := uc.Dashboard(ctx, "tok")
	if err != nil || snap.TotalJobs != 3 {
		t.Fatalf("unexpected snapshot %+v %v", snap, err)
	}
}
