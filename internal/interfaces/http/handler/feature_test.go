package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	featureflagapp "github.com/promptdeck/backend/internal/application/featureflag"
	"github.com/promptdeck/backend/internal/domain/featureflag"
	"github.com/promptdeck/backend/internal/domain/shared"
	"github.com/promptdeck/backend/internal/infrastructure/event"
	"github.com/promptdeck/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeFeatureRepo struct {
	features map[uuid.UUID]*featureflag.Feature
}

func newFakeFeatureRepo() *fakeFeatureRepo {
	return &fakeFeatureRepo{features: make(map[uuid.UUID]*featureflag.Feature)}
}

func (r *fakeFeatureRepo) FindByID(_ context.Context, tenantID, id uuid.UUID) (*featureflag.Feature, error) {
	f, ok := r.features[id]
	if !ok || f.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return f, nil
}

func (r *fakeFeatureRepo) FindByKey(_ context.Context, tenantID uuid.UUID, key string) (*featureflag.Feature, error) {
	for _, f := range r.features {
		if f.TenantID == tenantID && f.Key == strings.ToLower(key) {
			return f, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeFeatureRepo) ExistsByKey(ctx context.Context, tenantID uuid.UUID, key string) (bool, error) {
	_, err := r.FindByKey(ctx, tenantID, key)
	return err == nil, nil
}

func (r *fakeFeatureRepo) Save(_ context.Context, tenantID uuid.UUID, f *featureflag.Feature) error {
	if f.TenantID != tenantID {
		return shared.ErrTenantMismatch
	}
	r.features[f.ID] = f
	return nil
}

func (r *fakeFeatureRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	f, ok := r.features[id]
	if !ok || f.TenantID != tenantID {
		return shared.ErrNotFound
	}
	delete(r.features, id)
	return nil
}

type fakeFeatureViewRepo struct {
	views map[uuid.UUID]*featureflag.FeatureView
}

func newFakeFeatureViewRepo() *fakeFeatureViewRepo {
	return &fakeFeatureViewRepo{views: make(map[uuid.UUID]*featureflag.FeatureView)}
}

func (r *fakeFeatureViewRepo) FindByID(_ context.Context, id uuid.UUID) (*featureflag.FeatureView, error) {
	return r.views[id], nil
}

func (r *fakeFeatureViewRepo) FindByCriteria(_ context.Context, criteria shared.Criteria) (shared.Paginated[featureflag.FeatureView], error) {
	tenantID, _ := criteria.Filters["tenant_id"].(uuid.UUID)
	items := make([]featureflag.FeatureView, 0, len(r.views))
	for _, v := range r.views {
		if v.TenantID == tenantID {
			items = append(items, *v)
		}
	}
	c := criteria.Normalize()
	return shared.NewPaginated(items, int64(len(items)), c.Page, c.PageSize), nil
}

func (r *fakeFeatureViewRepo) Save(_ context.Context, v *featureflag.FeatureView) error {
	r.views[v.ID] = v
	return nil
}

func (r *fakeFeatureViewRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.views, id)
	return nil
}

// withTenant injects the tenant claim the way the JWT middleware would
func withTenant(tenantID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.JWTTenantIDKey, tenantID.String())
		c.Next()
	}
}

func newFeatureRouter(tenantID uuid.UUID) *gin.Engine {
	logger := zap.NewNop()
	repo := newFakeFeatureRepo()
	views := newFakeFeatureViewRepo()
	bus := event.NewInMemoryEventBus(logger)
	bus.Subscribe(featureflagapp.NewFeatureProjector(views, logger))
	service := featureflagapp.NewFeatureService(repo, views, bus, logger)

	router := gin.New()
	router.Use(withTenant(tenantID))
	api := router.Group("/api/v1")
	NewFeatureHandler(service).RegisterRoutes(api)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeFeature(t *testing.T, body []byte) featureflagapp.FeatureDTO {
	t.Helper()
	var resp struct {
		Success bool                      `json:"success"`
		Data    featureflagapp.FeatureDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.True(t, resp.Success)
	return resp.Data
}

func TestFeatureHandler_CreateAndEvaluate(t *testing.T) {
	tenantID := uuid.New()
	router := newFeatureRouter(tenantID)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/features", gin.H{
		"key":         "Export-CSV",
		"description": "CSV export for workspaces",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeFeature(t, rec.Body.Bytes())
	assert.Equal(t, "export-csv", created.Key)
	assert.Equal(t, tenantID, created.TenantID)
	assert.False(t, created.Enabled)

	// Flags start disabled
	rec = doJSON(t, router, http.MethodGet, "/api/v1/features/evaluate/export-csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var eval struct {
		Data struct {
			Key     string `json:"key"`
			Enabled bool   `json:"enabled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eval))
	assert.False(t, eval.Data.Enabled)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/features/"+created.ID.String()+"/enable", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/features/evaluate/export-csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eval))
	assert.True(t, eval.Data.Enabled)
}

func TestFeatureHandler_EvaluateUnknownKey(t *testing.T) {
	router := newFeatureRouter(uuid.New())

	rec := doJSON(t, router, http.MethodGet, "/api/v1/features/evaluate/no-such-flag", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var eval struct {
		Data struct {
			Enabled bool `json:"enabled"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eval))
	assert.False(t, eval.Data.Enabled)
}

func TestFeatureHandler_DuplicateKey(t *testing.T) {
	router := newFeatureRouter(uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/features", gin.H{"key": "beta-ui"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/features", gin.H{"key": "beta-ui"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "FLAG_EXISTS", resp.Error.Code)
}

func TestFeatureHandler_UnknownIDNotFound(t *testing.T) {
	router := newFeatureRouter(uuid.New())

	rec := doJSON(t, router, http.MethodPost, "/api/v1/features/"+uuid.NewString()+"/enable", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeatureHandler_MissingTenantClaim(t *testing.T) {
	logger := zap.NewNop()
	repo := newFakeFeatureRepo()
	views := newFakeFeatureViewRepo()
	bus := event.NewInMemoryEventBus(logger)
	service := featureflagapp.NewFeatureService(repo, views, bus, logger)

	router := gin.New()
	api := router.Group("/api/v1")
	NewFeatureHandler(service).RegisterRoutes(api)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/features", gin.H{"key": "beta-ui"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFeatureHandler_List(t *testing.T) {
	tenantID := uuid.New()
	router := newFeatureRouter(tenantID)

	for _, key := range []string{"beta-ui", "export-csv", "sso"} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/features", gin.H{"key": key})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/features?page=1&page_size=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []featureflag.FeatureView `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
	assert.Equal(t, int64(3), resp.Meta.Total)
}
