// Package portalapitest provides an in-memory stand-in for the portal REST API
// for use in tests.
package portalapitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"jobalert-web/internal/domain/admin"
	"jobalert-web/internal/domain/job"
	"jobalert-web/internal/domain/notification"
	"jobalert-web/internal/domain/user"
	"jobalert-web/internal/pkg/apitime"
)

type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

type account struct {
	user     user.User
	password string
}

type Server struct {
	*httptest.Server

	mu            sync.Mutex
	requests      []Request
	accounts      map[string]*account
	tokens        map[string]string
	jobs          []job.Job
	applications  map[string]bool
	notifications []notification.Notification
	nextID        int

	// FailPaths forces a 500 with the given detail for matching paths.
	FailPaths map[string]string
}

func NewServer() *Server {
	s := &Server{
		accounts:     map[string]*account{},
		tokens:       map[string]string{},
		applications: map[string]bool{},
		FailPaths:    map[string]string{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// AddUser registers an account and returns a valid token for it.
func (s *Server) AddUser(email, password, fullName, role string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := user.User{
		ID:        "u-" + strconv.Itoa(s.nextID),
		Email:     email,
		FullName:  fullName,
		Role:      role,
		IsActive:  true,
		CreatedAt: apitime.New(time.Now().UTC()),
	}
	s.accounts[email] = &account{user: u, password: password}
	tok := "tok-" + u.ID
	s.tokens[tok] = email
	return tok
}

func (s *Server) AddJob(j job.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ID == "" {
		s.nextID++
		j.ID = strconv.Itoa(s.nextID)
	}
	s.jobs = append(s.jobs, j)
}

func (s *Server) AddNotification(n notification.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

func (s *Server) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	detail, fail := s.FailPaths[r.URL.Path]
	s.mu.Unlock()

	if fail {
		writeDetail(w, http.StatusInternalServerError, detail)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")
	switch {
	case r.Method == http.MethodPost && path == "/auth/login":
		s.login(w, body)
	case r.Method == http.MethodPost && path == "/auth/register":
		s.register(w, body)
	case r.Method == http.MethodGet && path == "/auth/me":
		s.me(w, r)
	case r.Method == http.MethodGet && path == "/jobs":
		s.listJobs(w, r)
	case r.Method == http.MethodPost && path == "/jobs":
		s.createJob(w, body)
	case r.Method == http.MethodGet && path == "/search/jobs":
		s.searchJobs(w, r)
	case r.Method == http.MethodGet && path == "/notifications":
		s.listNotifications(w, r)
	case r.Method == http.MethodGet && path == "/admin/dashboard":
		s.dashboard(w)
	case r.Method == http.MethodPost && path == "/admin/seed-data":
		s.seed(w)
	case strings.HasPrefix(path, "/jobs/"):
		s.jobRoutes(w, r, strings.TrimPrefix(path, "/jobs/"))
	default:
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) login(w http.ResponseWriter, body []byte) {
	var in user.Credentials
	_ = json.Unmarshal(body, &in)

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[in.Email]
	if !ok || acc.password != in.Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	tok := "tok-" + acc.user.ID
	s.tokens[tok] = in.Email
	writeJSON(w, http.StatusOK, map[string]string{"access_token": tok, "token_type": "bearer"})
}

func (s *Server) register(w http.ResponseWriter, body []byte) {
	var in user.RegisterInput
	_ = json.Unmarshal(body, &in)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[in.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	s.nextID++
	u := user.User{
		ID:             "u-" + strconv.Itoa(s.nextID),
		Email:          in.Email,
		FullName:       in.FullName,
		Phone:          in.Phone,
		Location:       in.Location,
		EducationLevel: in.EducationLevel,
		Role:           user.RoleUser,
		IsActive:       true,
		CreatedAt:      apitime.New(time.Now().UTC()),
	}
	s.accounts[in.Email] = &account{user: u, password: in.Password}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) authUser(r *http.Request) (user.User, bool) {
	tok := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[tok]
	if !ok {
		return user.User{}, false
	}
	acc, ok := s.accounts[email]
	if !ok {
		return user.User{}, false
	}
	return acc.user, true
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, ok := s.authUser(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []job.Job{}
	for _, j := range s.jobs {
		if c := q.Get("category"); c != "" && string(j.Category) != c {
			continue
		}
		if st := q.Get("state"); st != "" && !strings.EqualFold(j.State, st) {
			continue
		}
		if e := q.Get("education_level"); e != "" && string(j.MinEducation) != e {
			continue
		}
		out = append(out, j)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) searchJobs(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []job.Job{}
	for _, j := range s.jobs {
		text := strings.ToLower(j.Title + " " + j.Organization + " " + j.Description + " " + j.Location)
		if strings.Contains(text, q) {
			out = append(out, j)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createJob(w http.ResponseWriter, body []byte) {
	var in job.CreateInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	j := job.Job{
		ID:                   strconv.Itoa(s.nextID),
		Title:                in.Title,
		Organization:         in.Organization,
		Description:          in.Description,
		Category:             in.Category,
		Location:             in.Location,
		State:                in.State,
		MinEducation:         in.MinEducation,
		TotalPosts:           in.TotalPosts,
		SalaryMin:            in.SalaryMin,
		SalaryMax:            in.SalaryMax,
		ApplicationStartDate: in.ApplicationStartDate,
		ApplicationEndDate:   in.ApplicationEndDate,
		Status:               job.StatusActive,
	}
	s.jobs = append(s.jobs, j)
	writeJSON(w, http.StatusOK, j)
}

func (s *Server) jobRoutes(w http.ResponseWriter, r *http.Request, rest string) {
	id, action, _ := strings.Cut(rest, "/")

	switch {
	case r.Method == http.MethodGet && action == "":
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.jobs {
			if s.jobs[i].ID == id {
				s.jobs[i].Views++
				writeJSON(w, http.StatusOK, s.jobs[i])
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "Job not found")
	case r.Method == http.MethodDelete && action == "":
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.jobs {
			if s.jobs[i].ID == id {
				s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Job deleted successfully"})
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "Job not found")
	case r.Method == http.MethodPost && action == "apply":
		u, ok := s.authUser(r)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		key := id + "|" + u.ID
		if s.applications[key] {
			writeDetail(w, http.StatusBadRequest, "Already applied for this job")
			return
		}
		s.applications[key] = true
		for i := range s.jobs {
			if s.jobs[i].ID == id {
				s.jobs[i].ApplicationsCount++
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Application submitted successfully"})
	default:
		writeDetail(w, http.StatusNotFound, "Not Found")
	}
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authUser(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notification.Notification, len(s.notifications))
	copy(out, s.notifications)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) dashboard(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := admin.Snapshot{
		TotalJobs:         len(s.jobs),
		TotalUsers:        len(s.accounts),
		TotalApplications: len(s.applications),
		RecentJobs:        []job.Job{},
		RecentUsers:       []user.User{},
	}
	for _, j := range s.jobs {
		if j.Status == "" || j.Status == job.StatusActive {
			snap.ActiveJobs++
		}
	}
	for i := len(s.jobs) - 1; i >= 0 && len(snap.RecentJobs) < 5; i-- {
		snap.RecentJobs = append(snap.RecentJobs, s.jobs[i])
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) seed(w http.ResponseWriter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seeded := []job.Job{
		{Title: "BHEL 515 Artisan Online Form 2025", Organization: "Bharat Heavy Electricals Limited", Category: job.CategoryEngineering, State: "Delhi", MinEducation: job.EducationITI, TotalPosts: 515},
		{Title: "Indian Coast Guard Assistant Commandant Online Form 2025", Organization: "Indian Coast Guard", Category: job.CategoryPoliceDefence, State: "Maharashtra", MinEducation: job.EducationGraduate, TotalPosts: 50},
		{Title: "Bank of Baroda 2500 LBO Online Form 2025", Organization: "Bank of Baroda", Category: job.CategoryBanking, State: "Gujarat", MinEducation: job.EducationGraduate, TotalPosts: 2500},
	}
	for _, j := range seeded {
		s.nextID++
		j.ID = strconv.Itoa(s.nextID)
		j.Status = job.StatusActive
		s.jobs = append(s.jobs, j)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Seeded 3 mock jobs successfully"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
