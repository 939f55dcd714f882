package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/dto"
	"bio-kids-puzzles/internal/handler"
	"bio-kids-puzzles/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Manual Mocks ---

type MockLevelService struct {
	ListLevelsFunc func(ctx context.Context) (*dto.LevelListResponse, error)
	GetLevelFunc   func(ctx context.Context, levelID int) (*dto.LevelSummaryResponse, error)
	OpenLevelFunc  func(ctx context.Context, levelID int) (*domain.Level, error)
}

func (m *MockLevelService) ListLevels(ctx context.Context) (*dto.LevelListResponse, error) {
	if m.ListLevelsFunc != nil {
		return m.ListLevelsFunc(ctx)
	}
	panic("MockLevelService.ListLevelsFunc not implemented")
}
func (m *MockLevelService) GetLevel(ctx context.Context, levelID int) (*dto.LevelSummaryResponse, error) {
	if m.GetLevelFunc != nil {
		return m.GetLevelFunc(ctx, levelID)
	}
	panic("MockLevelService.GetLevelFunc not implemented")
}
func (m *MockLevelService) OpenLevel(ctx context.Context, levelID int) (*domain.Level, error) {
	if m.OpenLevelFunc != nil {
		return m.OpenLevelFunc(ctx, levelID)
	}
	panic("MockLevelService.OpenLevelFunc not implemented")
}

type MockQuizSessionService struct {
	StartFunc        func(ctx context.Context, levelID int) (*dto.SessionResponse, error)
	GetFunc          func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SubmitAnswerFunc func(ctx context.Context, sessionID string, option int) (*dto.SubmitAnswerResponse, error)
	AdvanceFunc      func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	RestartFunc      func(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	EndFunc          func(ctx context.Context, sessionID string) error
}

func (m *MockQuizSessionService) Start(ctx context.Context, levelID int) (*dto.SessionResponse, error) {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, levelID)
	}
	panic("MockQuizSessionService.StartFunc not implemented")
}
func (m *MockQuizSessionService) Get(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, sessionID)
	}
	panic("MockQuizSessionService.GetFunc not implemented")
}
func (m *MockQuizSessionService) SubmitAnswer(ctx context.Context, sessionID string, option int) (*dto.SubmitAnswerResponse, error) {
	if m.SubmitAnswerFunc != nil {
		return m.SubmitAnswerFunc(ctx, sessionID, option)
	}
	panic("MockQuizSessionService.SubmitAnswerFunc not implemented")
}
func (m *MockQuizSessionService) Advance(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, sessionID)
	}
	panic("MockQuizSessionService.AdvanceFunc not implemented")
}
func (m *MockQuizSessionService) Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, sessionID)
	}
	panic("MockQuizSessionService.RestartFunc not implemented")
}
func (m *MockQuizSessionService) End(ctx context.Context, sessionID string) error {
	if m.EndFunc != nil {
		return m.EndFunc(ctx, sessionID)
	}
	panic("MockQuizSessionService.EndFunc not implemented")
}

type MockCache struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockCache) Get(context.Context, string) (string, error) { return "", domain.ErrCacheMiss }
func (m *MockCache) Set(context.Context, string, string, time.Duration) error {
	return nil
}
func (m *MockCache) Delete(context.Context, string) error { return nil }
func (m *MockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

const testSessionID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func setupApp(levels *MockLevelService, sessions *MockQuizSessionService, cache *MockCache) *fiber.App {
	if cache == nil {
		cache = &MockCache{}
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	vm := middleware.NewValidationMiddleware()
	handler.SetupRoutes(app, handler.Handlers{
		Levels:   handler.NewLevelHandler(levels),
		Sessions: handler.NewSessionHandler(sessions, vm.Validator()),
		Health:   handler.NewHealthHandler(cache),
	}, vm)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestListLevels(t *testing.T) {
	levels := &MockLevelService{
		ListLevelsFunc: func(ctx context.Context) (*dto.LevelListResponse, error) {
			return &dto.LevelListResponse{Levels: []dto.LevelSummaryResponse{
				{ID: 1, Title: "Животные", Difficulty: "easy", QuestionCount: 5},
				{ID: 6, Title: "Океан", Difficulty: "hard", Locked: true, QuestionCount: 4},
			}}, nil
		},
	}
	app := setupApp(levels, &MockQuizSessionService{}, nil)

	resp := doRequest(t, app, http.MethodGet, "/api/levels", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.LevelListResponse](t, resp)
	require.Len(t, body.Levels, 2)
	assert.True(t, body.Levels[1].Locked)
}

func TestGetLevel(t *testing.T) {
	levels := &MockLevelService{
		GetLevelFunc: func(ctx context.Context, levelID int) (*dto.LevelSummaryResponse, error) {
			if levelID == 2 {
				return &dto.LevelSummaryResponse{ID: 2, Title: "Растения"}, nil
			}
			return nil, domain.NewLevelNotFoundError(levelID)
		},
	}
	app := setupApp(levels, &MockQuizSessionService{}, nil)

	resp := doRequest(t, app, http.MethodGet, "/api/levels/2", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Растения", decode[dto.LevelSummaryResponse](t, resp).Title)

	resp = doRequest(t, app, http.MethodGet, "/api/levels/77", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "LEVEL_NOT_FOUND", decode[middleware.ErrorResponse](t, resp).Code)

	resp = doRequest(t, app, http.MethodGet, "/api/levels/two", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartSession(t *testing.T) {
	sessions := &MockQuizSessionService{
		StartFunc: func(ctx context.Context, levelID int) (*dto.SessionResponse, error) {
			switch levelID {
			case 1:
				return &dto.SessionResponse{SessionID: testSessionID, State: "presenting", QuestionNumber: 1}, nil
			case 6:
				return nil, domain.NewLevelLockedError(6)
			default:
				return nil, domain.NewLevelNotFoundError(levelID)
			}
		},
	}
	app := setupApp(&MockLevelService{}, sessions, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/levels/1/sessions", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/sessions/"+testSessionID, resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, testSessionID, decode[dto.SessionResponse](t, resp).SessionID)

	resp = doRequest(t, app, http.MethodPost, "/api/levels/6/sessions", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "LEVEL_LOCKED", decode[middleware.ErrorResponse](t, resp).Code)

	resp = doRequest(t, app, http.MethodPost, "/api/levels/8/sessions", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	sessions := &MockQuizSessionService{
		GetFunc: func(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
			return nil, domain.NewSessionNotFoundError(sessionID)
		},
	}
	app := setupApp(&MockLevelService{}, sessions, nil)

	resp := doRequest(t, app, http.MethodGet, "/api/sessions/"+testSessionID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SESSION_NOT_FOUND", decode[middleware.ErrorResponse](t, resp).Code)

	resp = doRequest(t, app, http.MethodGet, "/api/sessions/bogus", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitAnswer(t *testing.T) {
	var gotOption int
	sessions := &MockQuizSessionService{
		SubmitAnswerFunc: func(ctx context.Context, sessionID string, option int) (*dto.SubmitAnswerResponse, error) {
			gotOption = option
			if option > 3 {
				return nil, domain.NewInvalidOptionError(option, 4)
			}
			correct := option == 2
			return &dto.SubmitAnswerResponse{
				Feedback: dto.FeedbackResponse{Correct: &correct, SelectedOption: &option, CorrectOption: 2},
				Session:  dto.SessionResponse{SessionID: sessionID, State: "revealed"},
			}, nil
		},
	}
	app := setupApp(&MockLevelService{}, sessions, nil)
	path := "/api/sessions/" + testSessionID + "/answer"

	resp := doRequest(t, app, http.MethodPost, path, `{"option_index":2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[dto.SubmitAnswerResponse](t, resp)
	require.NotNil(t, body.Feedback.Correct)
	assert.True(t, *body.Feedback.Correct)
	assert.Equal(t, "revealed", body.Session.State)
	assert.Equal(t, 2, gotOption)

	resp = doRequest(t, app, http.MethodPost, path, `{"option_index":0}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, gotOption)

	resp = doRequest(t, app, http.MethodPost, path, `{"option_index":9}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_OPTION", decode[middleware.ErrorResponse](t, resp).Code)
}

func TestSubmitAnswer_RejectsBadBodies(t *testing.T) {
	called := false
	sessions := &MockQuizSessionService{
		SubmitAnswerFunc: func(ctx context.Context, sessionID string, option int) (*dto.SubmitAnswerResponse, error) {
			called = true
			return nil, nil
		},
	}
	app := setupApp(&MockLevelService{}, sessions, nil)
	path := "/api/sessions/" + testSessionID + "/answer"

	for _, body := range []string{`{}`, `{"option_index":-1}`, `{"option_index":`} {
		resp := doRequest(t, app, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, "VALIDATION_ERROR", decode[middleware.ValidationErrorResponse](t, resp).Code, body)
	}
	assert.False(t, called)
}

func TestSubmitAnswer_MalformedBodyIsNotEchoed(t *testing.T) {
	app := setupApp(&MockLevelService{}, &MockQuizSessionService{}, nil)
	body := `{"option_index": "` + strings.Repeat("x", 4096)

	resp := doRequest(t, app, http.MethodPost, "/api/sessions/"+testSessionID+"/answer", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "xxxx")

	var parsed middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Len(t, parsed.Errors, 1)
	assert.Equal(t, "body", parsed.Errors[0].Field)
	assert.Equal(t, domain.CodeInvalidFormat, parsed.Errors[0].Code)
	assert.Nil(t, parsed.Errors[0].Value)
}

func TestAdvance(t *testing.T) {
	answered := false
	sessions := &MockQuizSessionService{
		AdvanceFunc: func(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
			if !answered {
				return nil, domain.NewAdvanceBeforeAnswerError(0)
			}
			return &dto.SessionResponse{SessionID: sessionID, QuestionNumber: 2, State: "presenting"}, nil
		},
	}
	app := setupApp(&MockLevelService{}, sessions, nil)
	path := "/api/sessions/" + testSessionID + "/advance"

	resp := doRequest(t, app, http.MethodPost, path, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "ADVANCE_BEFORE_ANSWER", decode[middleware.ErrorResponse](t, resp).Code)

	answered = true
	resp = doRequest(t, app, http.MethodPost, path, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.SessionResponse](t, resp).QuestionNumber)
}

func TestRestartAndEnd(t *testing.T) {
	ended := map[string]bool{}
	sessions := &MockQuizSessionService{
		RestartFunc: func(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
			return &dto.SessionResponse{SessionID: sessionID, QuestionNumber: 1, State: "presenting"}, nil
		},
		EndFunc: func(ctx context.Context, sessionID string) error {
			if ended[sessionID] {
				return domain.NewSessionNotFoundError(sessionID)
			}
			ended[sessionID] = true
			return nil
		},
	}
	app := setupApp(&MockLevelService{}, sessions, nil)

	resp := doRequest(t, app, http.MethodPost, "/api/sessions/"+testSessionID+"/restart", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testSessionID, decode[dto.SessionResponse](t, resp).SessionID)

	resp = doRequest(t, app, http.MethodDelete, "/api/sessions/"+testSessionID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, http.MethodDelete, "/api/sessions/"+testSessionID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	c := &MockCache{}
	app := setupApp(&MockLevelService{}, &MockQuizSessionService{}, c)

	resp := doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode[dto.HealthResponse](t, resp).Status)

	c.PingFunc = func(ctx context.Context) error { return errors.New("connection refused") }
	resp = doRequest(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "degraded", decode[dto.HealthResponse](t, resp).Status)
}
