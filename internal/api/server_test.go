package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"tokenestate/internal/api"
	"tokenestate/internal/domain"
	"tokenestate/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

var walletSeq int

// setupServer builds a router with the same route table as cmd/server over an
// in-memory database
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Property{}, &domain.Investment{}))

	r := gin.New()
	r.GET("/health", api.HealthHandler())
	r.POST("/users", api.RegisterHandler(db))
	r.POST("/auth/login", api.LoginHandler(db, testSecret))
	r.GET("/properties/public", api.PublicPropertiesHandler(db))

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Auth(db, testSecret))
	apiGroup.GET("/properties", api.ListPropertiesHandler(db))
	apiGroup.POST("/properties", api.CreatePropertyHandler(db))
	apiGroup.GET("/properties/:id", api.GetPropertyHandler(db))
	apiGroup.PUT("/properties/:id", api.UpdatePropertyHandler(db))
	apiGroup.PUT("/properties/:id/status", api.UpdatePropertyStatusHandler(db))
	apiGroup.DELETE("/properties/:id", api.DeletePropertyHandler(db))
	apiGroup.GET("/investments", api.ListInvestmentsHandler(db))
	apiGroup.POST("/investments", api.CreateInvestmentHandler(db))
	apiGroup.GET("/investments/:id", api.GetInvestmentHandler(db))
	apiGroup.PUT("/investments/:id", api.UpdateInvestmentHandler(db))
	apiGroup.DELETE("/investments/:id", api.DeleteInvestmentHandler(db))

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.Auth(db, testSecret), middleware.RequireAdmin())
	adminGroup.GET("/users", api.ListUsersHandler(db))
	adminGroup.PUT("/users/:id/role", api.UpdateUserRoleHandler(db))

	return r, db
}

// doRequest performs a JSON request; wallet, when set, is sent as the bearer
// credential
func doRequest(t *testing.T, r *gin.Engine, method, path, wallet string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if wallet != "" {
		req.Header.Set("Authorization", "Bearer "+wallet)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a recorded JSON response
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var resp map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func nextWallet() string {
	walletSeq++
	return fmt.Sprintf("0x%040x", walletSeq)
}

func seedUser(t *testing.T, db *gorm.DB, role domain.Role) *domain.User {
	user := &domain.User{Wallet: nextWallet(), Role: role}
	assert.NoError(t, db.Create(user).Error)
	return user
}

func seedProperty(t *testing.T, db *gorm.DB, creator *domain.User, status domain.PropertyStatus) *domain.Property {
	walletSeq++
	prop := &domain.Property{
		OnchainID: fmt.Sprintf("chain-%d", walletSeq),
		Name:      "Harbor Lofts",
		Location:  "Porto",
		Category:  "residential",
		CreatedBy: creator.ID,
		Status:    status,
	}
	assert.NoError(t, db.Create(prop).Error)
	return prop
}

func TestHealth(t *testing.T) {
	r, _ := setupServer(t)
	w := doRequest(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r, _ := setupServer(t)
	w := doRequest(t, r, http.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A well-formed but unregistered wallet is rejected too
	w = doRequest(t, r, http.MethodGet, "/api/properties", nextWallet(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
