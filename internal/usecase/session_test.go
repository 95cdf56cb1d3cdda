package usecase

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
	"jobalert-web/internal/infrastructure/portalapi"
	"jobalert-web/internal/pkg/jwt"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func newTestSession(api PortalAPI, store TokenStore) *Session {
	return NewSession("sid-1", api, store, jwt.NewUnverifiedInspector(0), nil)
}

func TestSession_LoginSuccess(t *testing.T) {
	api := newFakeAPI()
	api.users["a@b.com"] = "x"
	store := newFakeStore()
	s := newTestSession(api, store)

	res := s.Login(context.Background(), "a@b.com", "x")
	if !res.Success || res.Error != "" {
		t.Fatalf("expected success, got %+v", res)
	}
	if s.Token() == "" {
		t.Fatalf("expected token")
	}
	u, ok := s.User()
	if !ok || u.Email != "a@b.com" {
		t.Fatalf("expected user, got %+v %v", u, ok)
	}
	if store.get("sid-1") != s.Token() {
		t.Fatalf("expected token persisted")
	}
	if !s.Snapshot().Authenticated {
		t.Fatalf("expected authenticated snapshot")
	}
}

func TestSession_LoginInvalidCredentials(t *testing.T) {
	api := newFakeAPI()
	api.users["a@b.com"] = "x"
	store := newFakeStore()
	s := newTestSession(api, store)

	res := s.Login(context.Background(), "a@b.com", "wrong")
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error != "Incorrect email or password" {
		t.Fatalf("unexpected error %q", res.Error)
	}
	if s.Token() != "" {
		t.Fatalf("expected no token")
	}
	if _, ok := s.User(); ok {
		t.Fatalf("expected no user")
	}
	if store.get("sid-1") != "" {
		t.Fatalf("expected nothing persisted")
	}
	if api.count("me") != 0 {
		t.Fatalf("expected no user fetch after failed login")
	}
}

type failingLoginAPI struct{ *fakeAPI }

func (failingLoginAPI) Login(context.Context, string, string) (string, error) {
	return "", errNetwork
}

func TestSession_LoginFallbackMessage(t *testing.T) {
	s := newTestSession(failingLoginAPI{newFakeAPI()}, newFakeStore())
	res := s.Login(context.Background(), "a@b.com", "x")
	if res.Success || res.Error != MsgLoginFailed {
		t.Fatalf("expected %q, got %+v", MsgLoginFailed, res)
	}
}

func TestSession_LoginUserFetchFailureLogsOut(t *testing.T) {
	api := newFakeAPI()
	api.users["a@b.com"] = "x"
	api.meErr = &portalapi.APIError{Status: http.StatusInternalServerError}
	store := newFakeStore()
	store.tokens["sid-1"] = "old"
	s := newTestSession(api, store)

	res := s.Login(context.Background(), "a@b.com", "x")
	if res.Success || res.Error != MsgLoginFailed {
		t.Fatalf("expected login failure, got %+v", res)
	}
	if s.Token() != "" || store.get("sid-1") != "" {
		t.Fatalf("expected token cleared everywhere")
	}
	if _, ok := s.User(); ok {
		t.Fatalf("expected no user")
	}
}

func TestSession_LogoutAlwaysClears(t *testing.T) {
	api := newFakeAPI()
	api.users["a@b.com"] = "x"
	store := newFakeStore()
	s := newTestSession(api, store)
	ctx := context.Background()

	s.Logout(ctx)
	if s.Token() != "" || store.get("sid-1") != "" {
		t.Fatalf("logout on empty session must leave nothing behind")
	}

	_ = s.Login(ctx, "a@b.com", "x")
	before := len(api.calls)
	s.Logout(ctx)

	if s.Token() != "" {
		t.Fatalf("expected token cleared")
	}
	if _, ok := s.User(); ok {
		t.Fatalf("expected user cleared")
	}
	if store.get("sid-1") != "" {
		t.Fatalf("expected persisted token cleared")
	}
	if len(api.calls) != before {
		t.Fatalf("logout must not call the API")
	}
}

func TestSession_RegisterAutoLogin(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api, newFakeStore())

	res := s.Register(context.Background(), user.RegisterInput{Email: "a@b.com", Password: "x", FullName: "A B"})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if api.count("register") != 1 || api.count("login") != 1 {
		t.Fatalf("expected register then login, got %+v", api.calls)
	}
	if api.calls[0].Name != "register" || api.calls[1].Name != "login" {
		t.Fatalf("unexpected call order %+v", api.calls)
	}
	if _, ok := s.User(); !ok {
		t.Fatalf("expected user after auto-login")
	}
}

func TestSession_RegisterFailure(t *testing.T) {
	api := newFakeAPI()
	api.regErr = &portalapi.APIError{Status: http.StatusBadRequest, Detail: "Email already registered"}
	s := newTestSession(api, newFakeStore())

	res := s.Register(context.Background(), user.RegisterInput{Email: "a@b.com", Password: "x"})
	if res.Success || res.Error != "Email already registered" {
		t.Fatalf("unexpected result %+v", res)
	}
	if api.count("login") != 0 {
		t.Fatalf("login must not be attempted after a failed register")
	}

	api.regErr = errNetwork
	res = s.Register(context.Background(), user.RegisterInput{Email: "a@b.com", Password: "x"})
	if res.Error != MsgRegisterFailed {
		t.Fatalf("expected fallback, got %q", res.Error)
	}
}

func TestSession_LoadJobsPassesFilters(t *testing.T) {
	api := newFakeAPI()
	api.jobs = []job.Job{{ID: "1", Category: job.CategoryBanking}}
	s := newTestSession(api, nil)

	s.LoadJobs(context.Background(), job.Filters{job.FilterCategory: "banking", job.FilterState: ""})

	calls := api.callsNamed("list")
	if len(calls) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(calls))
	}
	if got := calls[0].Filters.Values().Encode(); got != "category=banking" {
		t.Fatalf("unexpected query %q", got)
	}
	st := s.Snapshot()
	if len(st.Jobs) != 1 || st.LoadingJobs {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSession_LoadJobsFailureKeepsList(t *testing.T) {
	api := newFakeAPI()
	api.jobs = []job.Job{{ID: "1"}, {ID: "2"}}
	s := newTestSession(api, nil)
	ctx := context.Background()

	s.LoadJobs(ctx, nil)
	api.listErr = errNetwork
	s.LoadJobs(ctx, job.Filters{job.FilterCategory: "railway"})

	st := s.Snapshot()
	if len(st.Jobs) != 2 {
		t.Fatalf("expected previous list kept, got %d", len(st.Jobs))
	}
	if !st.JobsFailed {
		t.Fatalf("expected failure flagged")
	}
}

type orderedListAPI struct {
	*fakeAPI
	mu      sync.Mutex
	n       int
	release chan struct{}
	entered chan struct{}
}

func (o *orderedListAPI) ListJobs(_ context.Context, _ job.Filters) ([]job.Job, error) {
	o.mu.Lock()
	o.n++
	n := o.n
	o.mu.Unlock()
	if n == 1 {
		close(o.entered)
		<-o.release
		return []job.Job{{ID: "old"}}, nil
	}
	return []job.Job{{ID: "new"}}, nil
}

func TestSession_LoadJobsIgnoresStaleResponse(t *testing.T) {
	api := &orderedListAPI{fakeAPI: newFakeAPI(), release: make(chan struct{}), entered: make(chan struct{})}
	s := newTestSession(api, nil)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		s.LoadJobs(ctx, job.Filters{job.FilterCategory: "banking"})
		close(done)
	}()
	<-api.entered

	s.LoadJobs(ctx, job.Filters{job.FilterCategory: "railway"})
	close(api.release)
	<-done

	st := s.Snapshot()
	if len(st.Jobs) != 1 || st.Jobs[0].ID != "new" {
		t.Fatalf("expected newest response to win, got %+v", st.Jobs)
	}
	if st.LoadingJobs {
		t.Fatalf("expected loading flag cleared")
	}
}

func TestSession_SearchBlankIsNoop(t *testing.T) {
	api := newFakeAPI()
	api.search = []job.Job{{ID: "s1"}}
	s := newTestSession(api, nil)
	ctx := context.Background()

	s.SearchJobs(ctx, "bank", nil)
	s.SearchJobs(ctx, "", nil)
	s.SearchJobs(ctx, "   ", nil)

	if api.count("search") != 1 {
		t.Fatalf("expected one search request, got %d", api.count("search"))
	}
	st := s.Snapshot()
	if len(st.SearchResults) != 1 || st.SearchQuery != "bank" {
		t.Fatalf("expected prior results unchanged, got %+v", st)
	}
}

func TestSession_SearchStoresQueryAndFilters(t *testing.T) {
	api := newFakeAPI()
	api.search = []job.Job{{ID: "a"}, {ID: "b"}}
	s := newTestSession(api, nil)

	s.SearchJobs(context.Background(), "  clerk ", job.Filters{job.FilterLocation: "Delhi"})

	calls := api.callsNamed("search")
	if len(calls) != 1 || calls[0].Query != "clerk" || calls[0].Filters.Get(job.FilterLocation) != "Delhi" {
		t.Fatalf("unexpected search call %+v", calls)
	}
	st := s.Snapshot()
	if st.SearchQuery != "clerk" || len(st.SearchResults) != 2 || st.SearchResults[1].ID != "b" {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSession_SearchFailureWithSameQueryIsReported(t *testing.T) {
	api := newFakeAPI()
	api.search = []job.Job{{ID: "a"}}
	s := newTestSession(api, nil)
	ctx := context.Background()

	if res := s.SearchJobs(ctx, "clerk", job.Filters{job.FilterCategory: "banking"}); !res.Success {
		t.Fatalf("expected first search to succeed, got %+v", res)
	}

	api.searchErr = errors.New("down")
	res := s.SearchJobs(ctx, "clerk", job.Filters{job.FilterCategory: "railway"})
	if res.Success || res.Error != MsgSearchFailed {
		t.Fatalf("expected search failure, got %+v", res)
	}
	st := s.Snapshot()
	if !st.SearchFailed || len(st.SearchResults) != 1 {
		t.Fatalf("expected failed flag with previous results kept, got %+v", st)
	}

	api.searchErr = nil
	s.SearchJobs(ctx, "clerk", nil)
	if s.Snapshot().SearchFailed {
		t.Fatalf("expected failed flag cleared after a successful search")
	}
}

func TestSession_ApplyWithoutToken(t *testing.T) {
	api := newFakeAPI()
	s := newTestSession(api, nil)

	res := s.ApplyForJob(context.Background(), "42")
	if res.Success || res.Error != MsgLoginToApply {
		t.Fatalf("unexpected result %+v", res)
	}
	if api.count("apply") != 0 {
		t.Fatalf("expected no request")
	}
	notices := s.TakeNotices()
	if len(notices) != 1 || notices[0].Message != MsgLoginToApply || notices[0].Level != NoticeError {
		t.Fatalf("unexpected notices %+v", notices)
	}
	if len(s.TakeNotices()) != 0 {
		t.Fatalf("notices must drain")
	}
}

func TestSession_ApplyWithToken(t *testing.T) {
	api := newFakeAPI()
	api.users["a@b.com"] = "x"
	s := newTestSession(api, nil)
	ctx := context.Background()
	_ = s.Login(ctx, "a@b.com", "x")

	res := s.ApplyForJob(ctx, "42")
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	calls := api.callsNamed("apply")
	if len(calls) != 1 || calls[0].ID != "42" || calls[0].Token != s.Token() {
		t.Fatalf("expected exactly one apply call, got %+v", calls)
	}
	notices := s.TakeNotices()
	if len(notices) != 1 || notices[0].Message != MsgApplicationSuccess {
		t.Fatalf("unexpected notices %+v", notices)
	}
}

func TestSession_ApplyFailureMessages(t *testing.T) {
	api := newFakeAPI()
	api.users["a@b.com"] = "x"
	s := newTestSession(api, nil)
	ctx := context.Background()
	_ = s.Login(ctx, "a@b.com", "x")

	api.applyErr = &portalapi.APIError{Status: http.StatusBadRequest, Detail: "Already applied for this job"}
	if res := s.ApplyForJob(ctx, "42"); res.Error != "Already applied for this job" {
		t.Fatalf("unexpected %+v", res)
	}

	api.applyErr = errNetwork
	if res := s.ApplyForJob(ctx, "42"); res.Error != MsgApplyFailed {
		t.Fatalf("unexpected %+v", res)
	}
	if s.Token() == "" {
		t.Fatalf("non-auth failures must keep the session")
	}

	api.applyErr = &portalapi.APIError{Status: http.StatusUnauthorized, Detail: "Could not validate credentials"}
	_ = s.ApplyForJob(ctx, "42")
	if s.Token() != "" {
		t.Fatalf("expected rejected token to end the session")
	}
}

func TestSession_BootstrapRestoresToken(t *testing.T) {
	api := newFakeAPI()
	api.tokens["persisted"] = user.User{ID: "u1", Email: "a@b.com"}
	api.jobs = []job.Job{{ID: "1"}}
	store := newFakeStore()
	store.tokens["sid-1"] = "persisted"
	s := newTestSession(api, store)

	s.Bootstrap(context.Background())
	s.Bootstrap(context.Background())

	if api.count("me") != 1 || api.count("list") != 1 {
		t.Fatalf("expected bootstrap to run once, got %+v", api.calls)
	}
	if list := api.callsNamed("list"); !list[0].Filters.IsEmpty() {
		t.Fatalf("expected unfiltered job load")
	}
	st := s.Snapshot()
	if !st.Authenticated || st.User.ID != "u1" || len(st.Jobs) != 1 || !st.Bootstrapped {
		t.Fatalf("unexpected state %+v", st)
	}
}

func TestSession_BootstrapInvalidTokenLogsOut(t *testing.T) {
	api := newFakeAPI()
	store := newFakeStore()
	store.tokens["sid-1"] = "stale"
	s := newTestSession(api, store)

	s.Bootstrap(context.Background())

	if s.Token() != "" || store.get("sid-1") != "" {
		t.Fatalf("expected invalid token cleared")
	}
	if api.count("list") != 1 {
		t.Fatalf("job list must load regardless of session")
	}
}

func TestSession_BootstrapSkipsExpiredJWT(t *testing.T) {
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
		Subject:   "a@b.com",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := tok.SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	api := newFakeAPI()
	store := newFakeStore()
	store.tokens["sid-1"] = signed
	s := newTestSession(api, store)

	s.Bootstrap(context.Background())

	if api.count("me") != 0 {
		t.Fatalf("expired token must not be verified remotely")
	}
	if store.get("sid-1") != "" {
		t.Fatalf("expected expired token cleared")
	}
}

func TestSession_BootstrapSurvivesCancelledRequest(t *testing.T) {
	api := newFakeAPI()
	api.tokens["persisted"] = user.User{ID: "u1"}
	store := newFakeStore()
	store.tokens["sid-1"] = "persisted"
	s := newTestSession(api, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Bootstrap(ctx)

	if _, ok := s.User(); !ok {
		t.Fatalf("expected session restored despite cancelled request")
	}
}

func TestBuildUserDashboard(t *testing.T) {
	u := user.User{ID: "u1", FullName: "A B"}
	st := State{User: &u}
	for i := 0; i < 7; i++ {
		st.Jobs = append(st.Jobs, job.Job{ID: string(rune('a' + i))})
	}
	notes := []notification.Notification{{ID: "n1"}, {ID: "n2", IsRead: true}, {ID: "n3"}}

	d := BuildUserDashboard(st, notes)
	if d.User.ID != "u1" || d.Unread != 2 || d.TotalJobs != 7 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if len(d.RecentJobs) != 5 || d.RecentJobs[0].ID != "a" {
		t.Fatalf("expected first five jobs, got %+v", d.RecentJobs)
	}
}

func TestSession_NotificationsRequireToken(t *testing.T) {
	s := newTestSession(newFakeAPI(), nil)
	if _, err := s.Notifications(context.Background()); err != ErrNoSession {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}
