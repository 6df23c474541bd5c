package handlers

import (
	"context"
	"net/http"
	"sync"

	"loadscout"
	"loadscout/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockJobs struct {
	createResp  loadscout.JobSummary
	createErr   error
	getResp     loadscout.JobSummary
	getErr      error
	listResp    []loadscout.JobSummary
	listErr     error
	clarifyResp loadscout.JobSummary
	clarifyErr  error

	lastCreate    service.CreateJobParams
	lastGetID     string
	lastClarifyID string
	lastClarify   service.ClarifyParams
	createCalls   int
	clarifyCalls  int
}

func (m *mockJobs) Create(ctx context.Context, p service.CreateJobParams) (loadscout.JobSummary, error) {
	m.createCalls++
	m.lastCreate = p
	return m.createResp, m.createErr
}
func (m *mockJobs) Get(ctx context.Context, id string) (loadscout.JobSummary, error) {
	m.lastGetID = id
	return m.getResp, m.getErr
}
func (m *mockJobs) List(ctx context.Context) ([]loadscout.JobSummary, error) {
	return m.listResp, m.listErr
}
func (m *mockJobs) Clarify(ctx context.Context, id string, p service.ClarifyParams) (loadscout.JobSummary, error) {
	m.clarifyCalls++
	m.lastClarifyID = id
	m.lastClarify = p
	return m.clarifyResp, m.clarifyErr
}

type mockEstimator struct {
	resp loadscout.LoadCalcResult
	err  error

	lastInput loadscout.LoadCalcInput
	calls     int
}

func (m *mockEstimator) Estimate(in loadscout.LoadCalcInput) (loadscout.LoadCalcResult, error) {
	m.calls++
	m.lastInput = in
	return m.resp, m.err
}

// mockEventLog is safe for concurrent use; the websocket handler polls it
// from its own goroutine while tests inspect the recorded filter.
type mockEventLog struct {
	mu   sync.Mutex
	resp []loadscout.PipelineEvent
	err  error
	last service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]loadscout.PipelineEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = f
	return m.resp, m.err
}

func (m *mockEventLog) lastFilter() service.LogFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
