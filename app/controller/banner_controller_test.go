package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrifoods/models"
)

type fakeBannerRepo struct {
	banners []models.Banner
	err     error
	gotType string
	gotPage string
	called  bool
}

func (r *fakeBannerRepo) GetByTypeAndPage(ctx context.Context, bannerType string, page string) ([]models.Banner, error) {
	r.called = true
	r.gotType = bannerType
	r.gotPage = page
	return r.banners, r.err
}

func getBanners(t *testing.T, ctrl *BannerController, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/banners"+query, nil)
	rec := httptest.NewRecorder()
	ctrl.GetBanners(rec, req)
	return rec
}

func TestGetBannersByTypeAndPage(t *testing.T) {
	repo := &fakeBannerRepo{banners: []models.Banner{
		{ID: "ban-1", Title: "Summer Sale", Type: "hero", Page: "home"},
	}}
	ctrl := NewBannerController(repo)

	rec := getBanners(t, ctrl, "?type=hero&page=home")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hero", repo.gotType)
	assert.Equal(t, "home", repo.gotPage)

	var banners []models.Banner
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banners))
	require.Len(t, banners, 1)
	assert.Equal(t, "Summer Sale", banners[0].Title)
}

func TestGetBannersPageIsOptional(t *testing.T) {
	repo := &fakeBannerRepo{}
	ctrl := NewBannerController(repo)

	rec := getBanners(t, ctrl, "?type=promotion")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "promotion", repo.gotType)
	assert.Equal(t, "", repo.gotPage)
}

func TestGetBannersNormalizesCase(t *testing.T) {
	repo := &fakeBannerRepo{}
	ctrl := NewBannerController(repo)

	rec := getBanners(t, ctrl, "?type=HERO&page=Home")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hero", repo.gotType)
	assert.Equal(t, "home", repo.gotPage)
}

func TestGetBannersParameterValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing type", ""},
		{"unknown type", "?type=popup"},
		{"unknown page", "?type=hero&page=checkout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeBannerRepo{}
			ctrl := NewBannerController(repo)

			rec := getBanners(t, ctrl, tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, repo.called, "repository must not be hit on invalid input")
		})
	}
}

func TestGetBannersRejectsNonGet(t *testing.T) {
	ctrl := NewBannerController(&fakeBannerRepo{})

	req := httptest.NewRequest(http.MethodPost, "/api/banners?type=hero", nil)
	rec := httptest.NewRecorder()
	ctrl.GetBanners(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGetBannersRepositoryFailure(t *testing.T) {
	ctrl := NewBannerController(&fakeBannerRepo{err: fmt.Errorf("db down")})

	rec := getBanners(t, ctrl, "?type=hero")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
