package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	httpx "github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http/handlers"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http/middleware"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/auth"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/documents"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/identity"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/mocks"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/services"
)

// newTestServer wires the full HTTP surface over the in-process backends,
// the way the service runs with no credentials configured.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	gateway := services.NewAuthGateway(identity.NewMock(), log)
	t.Cleanup(gateway.Close)
	profiles := services.NewProfileStore(documents.NewMock(), log, "oilseed-mitra")
	notify := mocks.NewMockNotificationService()
	farmers := mocks.NewMockFarmerRepository()
	announcements := mocks.NewMockAnnouncementRepository()
	roster := services.NewRosterService(farmers, announcements, notify, log)
	tokenSvc := auth.NewJWTService("test-secret", "oilseed-mitra", time.Hour)

	authH := handlers.NewAuthHandlers(gateway, tokenSvc)
	profileH := handlers.NewProfileHandlers(profiles)
	referenceH := handlers.NewReferenceHandlers(services.NewReferenceService(), profiles)
	officialH := handlers.NewOfficialHandlers(roster)

	jwtMW := middleware.NewAuthMW(tokenSvc)
	casbinMW := middleware.NewCasbinMW(mocks.NewMockCasbinEnforcer())

	return httpx.BuildRouter(authH, profileH, referenceH, officialH, jwtMW, casbinMW)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signIn walks the OTP flow and returns an access token for role.
func signIn(t *testing.T, r *gin.Engine, role string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/otp/request", "", gin.H{"phone": "+919999999999"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/auth/otp/verify", "", gin.H{"code": "123456", "role": role})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	return resp.Data.AccessToken
}

func TestHealthz(t *testing.T) {
	r := newTestServer(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	r := newTestServer(t)

	t.Run("invalid phone rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/otp/request", "", gin.H{"phone": "12345"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("verify before request rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/otp/verify", "", gin.H{"code": "123456"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("full flow issues token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/auth/otp/request", "", gin.H{"phone": "+919999999999"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, r, http.MethodPost, "/auth/otp/verify", "", gin.H{"code": "123"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// The challenge survives the failed attempt.
		w = doJSON(t, r, http.MethodPost, "/auth/otp/verify", "", gin.H{"code": "123456"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Data struct {
				AccessToken string `json:"access_token"`
				User        struct {
					ID   string `json:"id"`
					Role string `json:"role"`
				} `json:"user"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, identity.MockUserID, resp.Data.User.ID)
		assert.Equal(t, domain.RoleFarmer, resp.Data.User.Role)

		w = doJSON(t, r, http.MethodGet, "/auth/me", resp.Data.AccessToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "authenticated")

		w = doJSON(t, r, http.MethodPost, "/auth/logout", resp.Data.AccessToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestServer(t)

	for _, path := range []string{"/profile", "/gamification", "/crops", "/auth/me"} {
		w := doJSON(t, r, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doJSON(t, r, http.MethodGet, "/profile", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileAndGamificationReads(t *testing.T) {
	r := newTestServer(t)
	token := signIn(t, r, domain.RoleFarmer)

	w := doJSON(t, r, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Test Farmer (Mock)")

	w = doJSON(t, r, http.MethodGet, "/gamification", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data struct {
			Gamification domain.Gamification `json:"gamification"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1250, resp.Data.Gamification.Points)
	assert.Equal(t, []string{"Early Adopter", "Top Simulator"}, resp.Data.Gamification.Badges)
}

func TestSimulateAwardsPoints(t *testing.T) {
	r := newTestServer(t)
	token := signIn(t, r, domain.RoleFarmer)

	w := doJSON(t, r, http.MethodPost, "/simulate", token, gin.H{"crop": "Mustard", "acres": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var simResp struct {
		Data struct {
			Result        services.SimulationResult `json:"result"`
			PointsAwarded int                       `json:"points_awarded"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &simResp))
	assert.Equal(t, float64(96000), simResp.Data.Result.TotalProfit)
	assert.Equal(t, 25, simResp.Data.PointsAwarded)

	// The award landed on the gamification document.
	w = doJSON(t, r, http.MethodGet, "/gamification", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var gResp struct {
		Data struct {
			Gamification domain.Gamification `json:"gamification"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gResp))
	assert.Equal(t, 1275, gResp.Data.Gamification.Points)
}

func TestSimulateValidation(t *testing.T) {
	r := newTestServer(t)
	token := signIn(t, r, domain.RoleFarmer)

	w := doJSON(t, r, http.MethodPost, "/simulate", token, gin.H{"crop": "Quinoa", "acres": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/simulate", token, gin.H{"crop": "Mustard", "acres": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferenceEndpoints(t *testing.T) {
	r := newTestServer(t)
	token := signIn(t, r, domain.RoleFarmer)

	tests := []struct {
		path string
		want string
	}{
		{"/crops", "Mustard"},
		{"/schemes", "PM-KISAN"},
		{"/schemes/pmfby", "PMFBY"},
		{"/mandis", "Alwar, Rajasthan"},
		{"/fpos", "MahaFPC"},
	}
	for _, tt := range tests {
		w := doJSON(t, r, http.MethodGet, tt.path, token, nil)
		require.Equal(t, http.StatusOK, w.Code, tt.path)
		assert.Contains(t, w.Body.String(), tt.want, tt.path)
	}

	w := doJSON(t, r, http.MethodGet, "/schemes/unknown", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOfficialRoutesForbiddenForFarmers(t *testing.T) {
	r := newTestServer(t)
	token := signIn(t, r, domain.RoleFarmer)

	w := doJSON(t, r, http.MethodGet, "/official/farmers", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/official/announcements", token, gin.H{"body": "hello"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOfficialRosterManagement(t *testing.T) {
	r := newTestServer(t)
	token := signIn(t, r, domain.RoleOfficial)

	w := doJSON(t, r, http.MethodPost, "/official/farmers", token, gin.H{
		"name":     "Rajesh Kumar",
		"phone":    "+919876543210",
		"location": "Alwar, Rajasthan",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/official/farmers", token, gin.H{"name": "X", "phone": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/official/farmers", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/official/announcements", token, gin.H{"body": "Mandi prices rising."})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/official/announcements", token, gin.H{"body": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Farmers read the feed on the shared route. The gateway holds one
	// session at a time, so the official signs out first.
	w = doJSON(t, r, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	farmerToken := signIn(t, r, domain.RoleFarmer)
	w = doJSON(t, r, http.MethodGet, "/announcements", farmerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
