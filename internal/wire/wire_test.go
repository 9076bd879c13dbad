package wire

import (
	"KolAnalytics/internal/api/config"
	"KolAnalytics/internal/pkg/adplatform"
	"KolAnalytics/internal/pkg/database"
	"KolAnalytics/internal/pkg/redis"
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=1"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Rdb.Close() })

	cfg := &config.Config{
		JWT:      config.JWTConfig{Secret: "test-secret", Issuer: "kol-test", ExpireHours: 1},
		Password: config.PasswordConfig{BcryptCost: 4},
		Jobs:     config.JobsConfig{PromotionFetchSpec: "0 0 2 * * *", MaterialSyncSpec: "0 0 3 * * 1"},
		Ingest:   config.IngestConfig{MaxRangeDays: 90},
	}
	app, err := BuildApplication(db, cfg, adplatform.NewStubClient())
	require.NoError(t, err)
	return &testServer{t: t, router: app.Router}
}

func (s *testServer) do(method, path, token string, body any) envelope {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func (s *testServer) login(username, role string) string {
	s.t.Helper()
	resp := s.do(http.MethodPost, "/api/user/register", "", gin.H{
		"username": username, "email": username + "@example.com", "password": "secret1", "role": role,
	})
	require.Equal(s.t, 200, resp.Code, resp.Message)

	resp = s.do(http.MethodPost, "/api/user/login", "", gin.H{"username": username, "password": "secret1"})
	require.Equal(s.t, 200, resp.Code, resp.Message)
	var token struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &token))
	return token.Token
}

func TestPromotionIngestFlow(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice", "business")
	pete := s.login("pete", "pitcher")

	resp := s.do(http.MethodPost, "/api/materials/auto-fetch", alice, gin.H{"video_url": "https://www.douyin.com/video/mat123"})
	require.Equal(t, 200, resp.Code, resp.Message)
	var auto struct {
		InfluencerCreated bool `json:"influencer_created"`
		Material          struct {
			MaterialID string `json:"material_id"`
		} `json:"material"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &auto))
	assert.True(t, auto.InfluencerCreated)
	assert.Equal(t, "mat123", auto.Material.MaterialID)

	// 商务不能录入推广数据
	resp = s.do(http.MethodPost, "/api/promotions/ingest", alice, gin.H{"material_id": "mat123"})
	assert.Equal(t, 403, resp.Code)

	resp = s.do(http.MethodPost, "/api/promotions/ingest", pete, gin.H{"material_id": "mat123"})
	require.Equal(t, 200, resp.Code, resp.Message)
	var result struct {
		SavedCount   int `json:"saved_count"`
		SkippedCount int `json:"skipped_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, 2, result.SavedCount)

	resp = s.do(http.MethodPost, "/api/promotions/ingest", pete, gin.H{"material_id": "mat123"})
	require.Equal(t, 200, resp.Code, resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Zero(t, result.SavedCount)
	assert.Equal(t, 2, result.SkippedCount)

	resp = s.do(http.MethodPost, "/api/promotions/ingest", pete, gin.H{"material_id": "nope"})
	assert.Equal(t, 404, resp.Code)

	resp = s.do(http.MethodGet, "/api/promotions?start_date=2024-01-01&end_date=2024-01-01", alice, nil)
	require.Equal(t, 200, resp.Code, resp.Message)
	var page struct {
		Total int64 `json:"total"`
		Items []struct {
			Date string          `json:"date"`
			ROI  decimal.Decimal `json:"roi"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "2024-01-01", page.Items[0].Date)
	assert.True(t, decimal.NewFromInt(2).Equal(page.Items[0].ROI), page.Items[0].ROI.String())

	resp = s.do(http.MethodGet, "/api/dashboard", alice, nil)
	require.Equal(t, 200, resp.Code, resp.Message)
	var dashboard struct {
		InfluencerCount int64 `json:"influencer_count"`
		PromotionCount  int64 `json:"promotion_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &dashboard))
	assert.Equal(t, int64(1), dashboard.InfluencerCount)
	assert.Equal(t, int64(2), dashboard.PromotionCount)
}

func TestAuthAndValidation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, 401, resp.Code)

	resp = s.do(http.MethodPost, "/api/user/register", "", gin.H{
		"username": "carol", "email": "carol@example.com", "password": "secret1", "role": "admin",
	})
	assert.Equal(t, 400, resp.Code)

	pete := s.login("pete", "pitcher")

	resp = s.do(http.MethodPost, "/api/influencers", pete, gin.H{"uid": "u1", "name": "n", "platform_id": "p"})
	assert.Equal(t, 403, resp.Code)

	resp = s.do(http.MethodGet, "/api/influencers/abc", pete, nil)
	assert.Equal(t, 400, resp.Code)

	resp = s.do(http.MethodPost, "/api/promotions", pete, gin.H{"material_id": 1, "date": "2024/01/01"})
	assert.Equal(t, 400, resp.Code)

	resp = s.do(http.MethodGet, "/api/user/info", pete, nil)
	require.Equal(t, 200, resp.Code, resp.Message)

	resp = s.do(http.MethodPost, "/api/user/logout", pete, nil)
	require.Equal(t, 200, resp.Code, resp.Message)

	resp = s.do(http.MethodGet, "/api/user/info", pete, nil)
	assert.Equal(t, 401, resp.Code)
}

func TestCreateMaterialTag(t *testing.T) {
	s := newTestServer(t)
	alice := s.login("alice", "business")
	pete := s.login("pete", "pitcher")

	resp := s.do(http.MethodPost, "/api/tags/material", pete, gin.H{"name": "开箱"})
	assert.Equal(t, 403, resp.Code)

	resp = s.do(http.MethodPost, "/api/tags/material", alice, gin.H{"name": ""})
	assert.Equal(t, 400, resp.Code)

	resp = s.do(http.MethodPost, "/api/tags/material", alice, gin.H{"name": "开箱"})
	require.Equal(t, 200, resp.Code, resp.Message)

	resp = s.do(http.MethodPost, "/api/tags/material", alice, gin.H{"name": "开箱"})
	assert.Equal(t, 409, resp.Code)

	resp = s.do(http.MethodGet, "/api/tags/material", pete, nil)
	require.Equal(t, 200, resp.Code, resp.Message)
	var tags []struct {
		Name       string `json:"name"`
		UsageCount int64  `json:"usage_count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "开箱", tags[0].Name)
	assert.Zero(t, tags[0].UsageCount)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/ping", "", nil)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `kol_http_requests_total{method="GET",route="/api/ping",status="200"} 1`)
}
