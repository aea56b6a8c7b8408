package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"butce/internal/config"
	"butce/internal/logger"
	"butce/internal/metrics"
	"butce/internal/models"
	"butce/internal/services"
	"butce/internal/session"
	"butce/internal/testutil"
	"butce/internal/validator"
)

const metricsKey = "scrape-key"

// testApp holds the full application stack backed by an isolated database.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Services *Services
}

// client carries the session cookie between requests like a browser would.
type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func testConfig() *config.Config {
	return &config.Config{
		Env:           "test",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		SeedUsername:  config.DefaultSeedUsername,
		SeedPassword:  config.DefaultSeedPassword,
		SeedMembers:   config.DefaultSeedMembers,
		MetricsAPIKey: metricsKey,
	}
}

// setupApp seeds the default user and members and builds the router.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := testConfig()
	svc := NewServices(db, services.NewUserServiceWithCost(db, bcrypt.MinCost))
	if err := svc.Seed(cfg); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, false)
	router := NewRouter(cfg, svc, sessions, metrics.New(), func() error { return nil })

	return &testApp{DB: db, Router: router, Services: svc}
}

func (app *testApp) newClient() *client {
	return &client{app: app, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.app.Router.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 || cookie.Value == "" {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, http.NoBody))
}

func (c *client) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) login(t *testing.T, username, password string) {
	t.Helper()
	rec := c.postForm("/login", url.Values{"username": {username}, "password": {password}})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
}

// memberID looks up a seeded member by name.
func (app *testApp) memberID(t *testing.T, name string) string {
	t.Helper()
	var m models.Member
	if err := app.DB.Where("name = ?", name).First(&m).Error; err != nil {
		t.Fatalf("member %s not found: %v", name, err)
	}
	return strconv.FormatUint(uint64(m.ID), 10)
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func errorCode(result map[string]interface{}) string {
	errObj, _ := result["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}
