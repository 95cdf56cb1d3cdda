package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
	"jobalert-web/internal/infrastructure/portalapi"
)

type call struct {
	Name    string
	Token   string
	ID      string
	Query   string
	Filters job.Filters
}

type fakeAPI struct {
	mu    sync.Mutex
	calls []call

	users     map[string]string // email -> password
	tokens    map[string]user.User
	jobs      []job.Job
	search    []job.Job
	notes     []notification.Notification
	snapshot  admin.Snapshot
	listErr   error
	searchErr error
	applyErr  error
	meErr     error
	regErr    error
	deleteErr error
	seedMsg   string

	// block, when set, is waited on inside ListJobs.
	block chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{users: map[string]string{}, tokens: map[string]user.User{}}
}

func (f *fakeAPI) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) callsNamed(name string) []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []call
	for _, c := range f.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (string, error) {
	f.record(call{Name: "login"})
	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.users[email]; !ok || pw != password {
		return "", &portalapi.APIError{Status: http.StatusUnauthorized, Detail: "Incorrect email or password"}
	}
	tok := "tok-" + email
	f.tokens[tok] = user.User{ID: "u-" + email, Email: email, FullName: email, Role: user.RoleUser}
	return tok, nil
}

func (f *fakeAPI) Register(_ context.Context, in user.RegisterInput) (user.User, error) {
	f.record(call{Name: "register"})
	if f.regErr != nil {
		return user.User{}, f.regErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[in.Email] = in.Password
	return user.User{ID: "u-" + in.Email, Email: in.Email, FullName: in.FullName}, nil
}

func (f *fakeAPI) Me(_ context.Context, token string) (user.User, error) {
	f.record(call{Name: "me", Token: token})
	if f.meErr != nil {
		return user.User{}, f.meErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.tokens[token]
	if !ok {
		return user.User{}, &portalapi.APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}
	}
	return u, nil
}

func (f *fakeAPI) ListJobs(_ context.Context, fl job.Filters) ([]job.Job, error) {
	f.record(call{Name: "list", Filters: fl})
	if f.block != nil {
		<-f.block
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]job.Job(nil), f.jobs...), nil
}

func (f *fakeAPI) SearchJobs(_ context.Context, q string, fl job.Filters) ([]job.Job, error) {
	f.record(call{Name: "search", Query: q, Filters: fl})
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return append([]job.Job(nil), f.search...), nil
}

func (f *fakeAPI) ApplyForJob(_ context.Context, token, id string) error {
	f.record(call{Name: "apply", Token: token, ID: id})
	return f.applyErr
}

func (f *fakeAPI) Notifications(_ context.Context, token string) ([]notification.Notification, error) {
	f.record(call{Name: "notifications", Token: token})
	return f.notes, nil
}

func (f *fakeAPI) AdminDashboard(_ context.Context, token string) (admin.Snapshot, error) {
	f.record(call{Name: "dashboard", Token: token})
	return f.snapshot, nil
}

func (f *fakeAPI) CreateJob(_ context.Context, token string, in job.CreateInput) (job.Job, error) {
	f.record(call{Name: "create", Token: token})
	j := job.Job{ID: "new-1", Title: in.Title, Organization: in.Organization, Category: in.Category}
	f.mu.Lock()
	f.jobs = append(f.jobs, j)
	f.mu.Unlock()
	return j, nil
}

func (f *fakeAPI) DeleteJob(_ context.Context, token, id string) error {
	f.record(call{Name: "delete", Token: token, ID: id})
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, j := range f.jobs {
		if j.ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return nil
		}
	}
	return &portalapi.APIError{Status: http.StatusNotFound, Detail: "Job not found"}
}

func (f *fakeAPI) SeedData(_ context.Context, token string) (string, error) {
	f.record(call{Name: "seed", Token: token})
	f.mu.Lock()
	f.jobs = append(f.jobs, job.Job{ID: "seed-1", Title: "Seeded"})
	f.mu.Unlock()
	return f.seedMsg, nil
}

type fakeStore struct {
	mu     sync.Mutex
	tokens map[string]string
	err    error
	prunes int
}

func newFakeStore() *fakeStore { return &fakeStore{tokens: map[string]string{}} }

func (s *fakeStore) LoadToken(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.tokens[sid], nil
}

func (s *fakeStore) SaveToken(_ context.Context, sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[sid] = token
	return nil
}

func (s *fakeStore) ClearToken(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, sid)
	return nil
}

func (s *fakeStore) PruneExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prunes++
	return 0
}

func (s *fakeStore) get(sid string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[sid]
}

type fakeNotifier struct {
	mu      sync.Mutex
	reasons []string
}

func (n *fakeNotifier) NotifyJobsUpdated(reason, _ string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
}

var errNetwork = errors.New("dial tcp: connection refused")
