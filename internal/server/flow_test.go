package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"butce/internal/config"
	"butce/internal/testutil"
)

func TestUnauthenticatedRedirects(t *testing.T) {
	app := setupApp(t)
	c := app.newClient()

	for _, path := range []string{"/", "/report", "/edit/1", "/delete/1", "/members", "/profile", "/no-such-page"} {
		rec := c.get(path)
		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s: expected 303, got %d", path, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s: expected redirect to /login, got %s", path, loc)
		}
	}

	rec := c.postForm("/add", url.Values{"type": {"income"}})
	if rec.Code != http.StatusSeeOther {
		t.Errorf("POST /add: expected 303, got %d", rec.Code)
	}

	if rec := c.get("/login"); rec.Code != http.StatusOK {
		t.Errorf("GET /login must stay public, got %d", rec.Code)
	}
}

func TestLoginLogout(t *testing.T) {
	app := setupApp(t)

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		c := app.newClient()
		wrong := c.postForm("/login", url.Values{"username": {"camdibi"}, "password": {"nope"}})
		unknown := c.postForm("/login", url.Values{"username": {"ghost"}, "password": {"nope"}})

		if wrong.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401/401, got %d/%d", wrong.Code, unknown.Code)
		}
		if wrong.Body.String() != unknown.Body.String() {
			t.Errorf("responses differ:\n%s\n%s", wrong.Body.String(), unknown.Body.String())
		}
	})

	t.Run("session round trip", func(t *testing.T) {
		c := app.newClient()
		c.login(t, config.DefaultSeedUsername, config.DefaultSeedPassword)

		rec := c.get("/profile")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["username"] != "camdibi" {
			t.Errorf("expected camdibi, got %v", user["username"])
		}

		if rec := c.get("/logout"); rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303 on logout, got %d", rec.Code)
		}
		if rec := c.get("/profile"); rec.Code != http.StatusSeeOther {
			t.Errorf("expected redirect after logout, got %d", rec.Code)
		}
	})

	t.Run("old cookie is dead after logout", func(t *testing.T) {
		c := app.newClient()
		c.login(t, config.DefaultSeedUsername, config.DefaultSeedPassword)
		saved := make(map[string]*http.Cookie, len(c.cookies))
		for name, cookie := range c.cookies {
			saved[name] = cookie
		}

		c.get("/logout")

		replay := &client{app: app, cookies: saved}
		if rec := replay.get("/"); rec.Code != http.StatusSeeOther {
			t.Errorf("expected replayed cookie to be rejected, got %d", rec.Code)
		}
	})
}

// TestHouseholdScenario walks the seed, login, create, report, delete flow.
func TestHouseholdScenario(t *testing.T) {
	app := setupApp(t)
	c := app.newClient()
	c.login(t, "camdibi", "mınka")

	rec := c.get("/members")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if n := len(parseJSON(t, rec)["members"].([]interface{})); n != 3 {
		t.Fatalf("expected 3 seeded members, got %d", n)
	}

	rec = c.postForm("/add", url.Values{
		"type":             {"income"},
		"description":      {"Maaş"},
		"amount":           {"1000"},
		"transaction_date": {"2024-03-15"},
		"members":          {app.memberID(t, "aytun")},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	txID := int(parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(float64))

	month := parseJSON(t, c.get("/?year=2024&month=3"))
	if month["monthly_balance"].(float64) != 100000 {
		t.Errorf("expected March balance 100000, got %v", month["monthly_balance"])
	}
	if month["month_name"] != "Mart" {
		t.Errorf("expected Mart, got %v", month["month_name"])
	}

	rep := parseJSON(t, c.get("/report?year=2024&month=3"))
	rows := rep["members"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected one member row, got %v", rows)
	}
	row := rows[0].(map[string]interface{})
	if row["member"] != "aytun" || row["amount"].(float64) != 100000 {
		t.Errorf("expected aytun: 100000, got %v", row)
	}

	rec = c.postForm(fmt.Sprintf("/delete/%d", txID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	month = parseJSON(t, c.get("/?year=2024&month=3"))
	if month["monthly_balance"].(float64) != 0 || month["total_balance"].(float64) != 0 {
		t.Errorf("expected zero balances after delete, got %v / %v", month["monthly_balance"], month["total_balance"])
	}
	if n := len(month["transactions"].([]interface{})); n != 0 {
		t.Errorf("expected no transactions, got %d", n)
	}
}

func TestCreateWithoutMembers(t *testing.T) {
	app := setupApp(t)
	c := app.newClient()
	c.login(t, "camdibi", "mınka")

	rec := c.postForm("/add", url.Values{
		"type":             {"expense"},
		"amount":           {"50"},
		"transaction_date": {"2024-03-15"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if code := errorCode(result); code != "MEMBERS_REQUIRED" {
		t.Errorf("expected MEMBERS_REQUIRED, got %s", code)
	}
	form := result["form"].(map[string]interface{})
	if form["amount"] != "50" {
		t.Errorf("expected submitted form to be echoed, got %v", form)
	}

	var count int64
	app.DB.Table("transactions").Count(&count)
	if count != 0 {
		t.Errorf("expected no rows, got %d", count)
	}
}

func TestOwnershipAcrossUsers(t *testing.T) {
	app := setupApp(t)

	testutil.CreateTestUserWithUsername(t, app.DB, "komsu")

	owner := app.newClient()
	owner.login(t, "camdibi", "mınka")
	rec := owner.postForm("/add", url.Values{
		"type":             {"gelir"},
		"amount":           {"250,75"},
		"transaction_date": {"2024-03-10"},
		"members":          {app.memberID(t, "kınık")},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	txID := int(parseJSON(t, rec)["transaction"].(map[string]interface{})["id"].(float64))

	intruder := app.newClient()
	intruder.login(t, "komsu", testutil.TestPassword)

	rec = intruder.postForm(fmt.Sprintf("/edit/%d", txID), url.Values{
		"type":             {"expense"},
		"amount":           {"1"},
		"transaction_date": {"2020-01-01"},
		"members":          {app.memberID(t, "aytun")},
	})
	if rec.Code != http.StatusForbidden || errorCode(parseJSON(t, rec)) != "FORBIDDEN" {
		t.Fatalf("expected 403 FORBIDDEN on edit, got %d %s", rec.Code, rec.Body.String())
	}

	rec = intruder.get(fmt.Sprintf("/delete/%d", txID))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 on delete, got %d", rec.Code)
	}

	if n := len(parseJSON(t, intruder.get("/?year=2024&month=3"))["transactions"].([]interface{})); n != 0 {
		t.Errorf("intruder must not see the owner's transactions, got %d", n)
	}

	edit := parseJSON(t, owner.get(fmt.Sprintf("/edit/%d", txID)))
	tx := edit["transaction"].(map[string]interface{})
	if tx["type"] != "income" || tx["amount"].(float64) != 25075 || tx["transaction_date"] != "2024-03-10" {
		t.Errorf("transaction changed after forbidden edit: %v", tx)
	}
}

func TestEditRoundTrip(t *testing.T) {
	app := setupApp(t)
	c := app.newClient()
	c.login(t, "camdibi", "mınka")

	form := url.Values{
		"type":             {"expense"},
		"description":      {"Kira"},
		"amount":           {"7500.5"},
		"transaction_date": {"2024-02-29"},
		"members":          {app.memberID(t, "kandemir"), app.memberID(t, "aytun")},
	}
	rec := c.postForm("/add", form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)["transaction"].(map[string]interface{})
	id := int(created["id"].(float64))

	rec = c.postForm(fmt.Sprintf("/edit/%d", id), form)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit failed: %d %s", rec.Code, rec.Body.String())
	}

	list := parseJSON(t, c.get("/?year=2024&month=2"))["transactions"].([]interface{})
	if len(list) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list))
	}
	got := list[0].(map[string]interface{})
	for _, key := range []string{"id", "type", "description", "amount", "transaction_date"} {
		if fmt.Sprint(got[key]) != fmt.Sprint(created[key]) {
			t.Errorf("%s changed: %v -> %v", key, created[key], got[key])
		}
	}
	if len(got["members"].([]interface{})) != 2 {
		t.Errorf("expected 2 members, got %v", got["members"])
	}
}

func TestPublicEndpoints(t *testing.T) {
	app := setupApp(t)
	c := app.newClient()

	if rec := c.get("/api/health"); rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}

	if rec := c.get("/metrics"); rec.Code != http.StatusUnauthorized {
		t.Errorf("metrics without key: expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	req.Header.Set("X-API-Key", metricsKey)
	rec := c.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics with key: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "butce_http_requests_total") {
		t.Error("expected request counter in exposition")
	}
}
