package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prodmanag/backend/internal/models"
	"github.com/prodmanag/backend/internal/repo"
	"github.com/prodmanag/backend/internal/service"
	"github.com/prodmanag/backend/internal/transport"
)

var testSecret = []byte("test_secret")

type capturedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type fakePublisher struct {
	published []capturedEvent
}

func (f *fakePublisher) PublishEvent(ctx context.Context, topic, key string, event any) error {
	f.published = append(f.published, capturedEvent{
		Topic: topic,
		Key:   key,
		Event: event.(map[string]any),
	})
	return nil
}

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
	A  *AuthHTTP
	P  *ProductHTTP
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	e := echo.New()
	e.Validator = transport.NewValidator()

	store := repo.New(db)

	return &testEnv{
		T:  t,
		E:  e,
		DB: db,
		A:  &AuthHTTP{Svc: &service.AuthService{Repo: store, JWTSecret: testSecret}},
		P:  &ProductHTTP{Svc: &service.CatalogService{Repo: store}},
	}
}

func (env *testEnv) doJSONRequest(method, target string, payload any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedProduct(p models.Product) models.Product {
	env.T.Helper()
	if p.CreatedBy == 0 {
		p.CreatedBy = 1
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}
