package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
	"jobalert-web/internal/infrastructure/portalapi"
	"jobalert-web/internal/pkg/jwt"
)

const (
	MsgSearchFailed       = "Search failed. Please try again."
	MsgLoginFailed        = "Login failed"
	MsgRegisterFailed     = "Registration failed"
	MsgApplyFailed        = "Application failed"
	MsgLoginToApply       = "Please login to apply for jobs"
	MsgApplicationSuccess = "Application submitted successfully!"
)

var ErrNoSession = errors.New("no active session")

// PortalAPI is the part of the portal REST API a browser session talks to.
type PortalAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in user.RegisterInput) (user.User, error)
	Me(ctx context.Context, token string) (user.User, error)
	ListJobs(ctx context.Context, f job.Filters) ([]job.Job, error)
	SearchJobs(ctx context.Context, query string, f job.Filters) ([]job.Job, error)
	ApplyForJob(ctx context.Context, token, id string) error
	Notifications(ctx context.Context, token string) ([]notification.Notification, error)
}

type TokenStore interface {
	LoadToken(ctx context.Context, sid string) (string, error)
	SaveToken(ctx context.Context, sid, token string) error
	ClearToken(ctx context.Context, sid string) error
}

type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func ok() Result { return Result{Success: true} }

func fail(msg string) Result { return Result{Success: false, Error: msg} }

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

type Notice struct {
	Level   NoticeLevel
	Message string
}

// State is a point-in-time copy of a session.
type State struct {
	SessionID     string
	Authenticated bool
	User          *user.User
	Jobs          []job.Job
	JobsFailed    bool
	SearchResults []job.Job
	SearchQuery   string
	SearchFailed  bool
	LoadingJobs   bool
	Searching     bool
	Bootstrapped  bool
}

// Session owns the token, user and job state of one browser. The mutex is
// only held while state is read or written, never across API calls.
type Session struct {
	id        string
	api       PortalAPI
	store     TokenStore
	inspector jwt.Inspector
	logger    *log.Logger
	now       func() time.Time

	bootOnce sync.Once

	mu            sync.Mutex
	token         string
	user          *user.User
	jobs          []job.Job
	jobsFailed    bool
	searchResults []job.Job
	searchQuery   string
	searchFailed  bool
	loadingJobs   int
	searching     int
	jobsSeq       uint64
	searchSeq     uint64
	notices       []Notice
	bootstrapped  bool
	lastSeen      time.Time
}

func NewSession(id string, api PortalAPI, store TokenStore, inspector jwt.Inspector, logger *log.Logger) *Session {
	s := &Session{
		id:        id,
		api:       api,
		store:     store,
		inspector: inspector,
		logger:    logger,
		now:       time.Now,
	}
	s.lastSeen = s.now()
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf("[Session] "+format, args...)
	}
}

// Bootstrap restores the persisted token, verifies it and loads the
// unfiltered job list. It runs once per session; later calls are no-ops.
// The work is detached from ctx cancellation so an abandoned first request
// does not leave the session half-initialised.
func (s *Session) Bootstrap(ctx context.Context) {
	s.bootOnce.Do(func() {
		bctx := context.WithoutCancel(ctx)
		s.restore(bctx)
		s.LoadJobs(bctx, nil)

		s.mu.Lock()
		s.bootstrapped = true
		s.mu.Unlock()
	})
}

func (s *Session) restore(ctx context.Context) {
	if s.store == nil {
		return
	}
	tok, err := s.store.LoadToken(ctx, s.id)
	if err != nil {
		s.logf("load token failed sid=%s: %v", s.id, err)
		return
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return
	}

	if jwt.Expired(s.inspector, tok) {
		s.logf("persisted token expired sid=%s", s.id)
		s.Logout(ctx)
		return
	}

	u, err := s.api.Me(ctx, tok)
	if err != nil {
		s.logf("token verification failed sid=%s: %v", s.id, err)
		s.Logout(ctx)
		return
	}
	s.setAuth(tok, u)
}

func (s *Session) setAuth(token string, u user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &u
}

func (s *Session) Login(ctx context.Context, email, password string) Result {
	tok, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		s.logf("login failed: %v", err)
		return fail(portalapi.MessageOr(err, MsgLoginFailed))
	}

	u, err := s.api.Me(ctx, tok)
	if err != nil {
		s.logf("fetch user after login failed: %v", err)
		s.Logout(ctx)
		return fail(portalapi.MessageOr(err, MsgLoginFailed))
	}

	if s.store != nil {
		if err := s.store.SaveToken(context.WithoutCancel(ctx), s.id, tok); err != nil {
			s.logf("persist token failed sid=%s: %v", s.id, err)
		}
	}
	s.setAuth(tok, u)
	return ok()
}

// Register creates the account and then logs in with the same credentials.
func (s *Session) Register(ctx context.Context, in user.RegisterInput) Result {
	if _, err := s.api.Register(ctx, in); err != nil {
		s.logf("register failed: %v", err)
		return fail(portalapi.MessageOr(err, MsgRegisterFailed))
	}
	return s.Login(ctx, in.Email, in.Password)
}

// Logout clears token, user and the persisted token. It never calls the API.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if s.store == nil {
		return
	}
	if err := s.store.ClearToken(context.WithoutCancel(ctx), s.id); err != nil {
		s.logf("clear token failed sid=%s: %v", s.id, err)
	}
}

// LoadJobs replaces the job list with the result of a filtered fetch. Errors
// are logged and the previous list is kept. A response that arrives after a
// newer LoadJobs call has started is dropped.
func (s *Session) LoadJobs(ctx context.Context, f job.Filters) {
	s.mu.Lock()
	s.jobsSeq++
	seq := s.jobsSeq
	s.loadingJobs++
	s.mu.Unlock()

	jobs, err := s.api.ListJobs(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadingJobs--
	if seq != s.jobsSeq {
		s.logf("dropping stale job list seq=%d latest=%d", seq, s.jobsSeq)
		return
	}
	if err != nil {
		s.logf("load jobs failed: %v", err)
		s.jobsFailed = true
		return
	}
	s.jobs = jobs
	s.jobsFailed = false
}

// SearchJobs is a no-op for a blank query. A failed search keeps the
// previous results and reports the failure in the returned Result.
func (s *Session) SearchJobs(ctx context.Context, query string, f job.Filters) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return ok()
	}

	s.mu.Lock()
	s.searchSeq++
	seq := s.searchSeq
	s.searching++
	s.mu.Unlock()

	results, err := s.api.SearchJobs(ctx, query, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.searching--
	if seq != s.searchSeq {
		s.logf("dropping stale search results q=%q", query)
		if err != nil {
			return fail(MsgSearchFailed)
		}
		return ok()
	}
	if err != nil {
		s.logf("search failed q=%q: %v", query, err)
		s.searchFailed = true
		return fail(MsgSearchFailed)
	}
	s.searchResults = results
	s.searchQuery = query
	s.searchFailed = false
	return ok()
}

func (s *Session) ApplyForJob(ctx context.Context, jobID string) Result {
	tok := s.Token()
	if tok == "" {
		s.pushNotice(NoticeError, MsgLoginToApply)
		return fail(MsgLoginToApply)
	}

	if err := s.api.ApplyForJob(ctx, tok, strings.TrimSpace(jobID)); err != nil {
		s.logf("apply failed job=%s: %v", jobID, err)
		msg := portalapi.MessageOr(err, MsgApplyFailed)
		if portalapi.IsUnauthorized(err) {
			s.Logout(ctx)
		}
		s.pushNotice(NoticeError, msg)
		return fail(msg)
	}

	s.pushNotice(NoticeSuccess, MsgApplicationSuccess)
	return ok()
}

// Notifications fetches the signed-in user's notifications.
func (s *Session) Notifications(ctx context.Context) ([]notification.Notification, error) {
	tok := s.Token()
	if tok == "" {
		return nil, ErrNoSession
	}
	items, err := s.api.Notifications(ctx, tok)
	if err != nil {
		if portalapi.IsUnauthorized(err) {
			s.Logout(ctx)
		}
		return nil, err
	}
	return items, nil
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) User() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return user.User{}, false
	}
	return *s.user, true
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		SessionID:     s.id,
		Authenticated: s.token != "" && s.user != nil,
		Jobs:          append([]job.Job(nil), s.jobs...),
		JobsFailed:    s.jobsFailed,
		SearchResults: append([]job.Job(nil), s.searchResults...),
		SearchQuery:   s.searchQuery,
		SearchFailed:  s.searchFailed,
		LoadingJobs:   s.loadingJobs > 0,
		Searching:     s.searching > 0,
		Bootstrapped:  s.bootstrapped,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

func (s *Session) pushNotice(level NoticeLevel, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Level: level, Message: msg})
}

// TakeNotices drains the pending notices.
func (s *Session) TakeNotices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notices
	s.notices = nil
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.now()
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
