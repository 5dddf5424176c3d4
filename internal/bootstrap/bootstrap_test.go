package bootstrap

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/config"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	SetGinMode("test")
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{Data: config.DataConfig{Backend: config.BackendMemory}}
	store, err := OpenStore(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	return BuildRouter(RouterDeps{
		ServiceName: "portfolio-api",
		Version:     "test",
		Logger:      logger,
		CORSOrigins: []string{"http://localhost:3000"},
		Repo:        store.Repo,
	})
}

func TestBuildRouter_Wiring(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/projects", "", http.StatusOK},
		{http.MethodGet, "/api/projects?status_filter=all", "", http.StatusOK},
		{http.MethodGet, "/api/projects/nope", "", http.StatusNotFound},
		{http.MethodPost, "/api/images/presign", `{"file_name":"a.png","content_type":"image/png"}`, http.StatusInternalServerError},
		{http.MethodPost, "/api/metrics/view", `{"page":"/"}`, http.StatusAccepted},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestBuildRouter_CORS(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("postgres without dsn fails", func(t *testing.T) {
		cfg := &config.Config{Data: config.DataConfig{Backend: config.BackendPostgres}}
		_, err := OpenStore(ctx, cfg, nil, nil)
		assert.Error(t, err)
	})

	t.Run("dynamodb uses the aws loader", func(t *testing.T) {
		cfg := &config.Config{Data: config.DataConfig{Backend: config.BackendDynamoDB, TableName: "t"}}
		called := false
		store, err := OpenStore(ctx, cfg, func() (aws.Config, error) {
			called = true
			return aws.Config{Region: "us-west-2"}, nil
		}, nil)
		require.NoError(t, err)
		assert.True(t, called)
		assert.NotNil(t, store.Repo)
		assert.Nil(t, store.Cache)
	})

	t.Run("redis wraps the store in a cache", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb, err := OpenRedis(ctx, config.RedisConfig{Addr: mr.Addr()})
		require.NoError(t, err)
		defer rdb.Close()

		cfg := &config.Config{Data: config.DataConfig{Backend: config.BackendMemory}}
		store, err := OpenStore(ctx, cfg, nil, rdb)
		require.NoError(t, err)
		require.NotNil(t, store.Cache)
		assert.Same(t, store.Cache, store.Repo)
	})

	t.Run("no redis address", func(t *testing.T) {
		rdb, err := OpenRedis(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, rdb)
	})
}

func TestBuildVerifier_DisabledReturnsNil(t *testing.T) {
	v, err := BuildVerifier(context.Background(), config.AuthConfig{Disabled: true, Provider: config.AuthProviderCognito})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = BuildVerifier(context.Background(), config.AuthConfig{Provider: config.AuthProviderCognito})
	require.NoError(t, err)
	assert.Nil(t, v, "cognito without pool settings is treated as disabled")
}
