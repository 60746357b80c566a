package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gig-marketplace.com/gig-marketplace/internal/queue"
	repository "gig-marketplace.com/gig-marketplace/internal/repositories"
	"gig-marketplace.com/gig-marketplace/internal/search"
	"gig-marketplace.com/gig-marketplace/internal/services"
	"gig-marketplace.com/gig-marketplace/pkg/logging"
	model "gig-marketplace.com/gig-marketplace/pkg/models"
)

func setupServer(t *testing.T) *echo.Echo {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&model.Gig{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	log := logging.NewNop()
	repo := repository.NewGigRepository(db, 5*time.Second)
	views := queue.NewMemoryViewCounter()

	h := NewHandler(
		services.NewGigService(repo, views, log),
		services.NewApplicationService(repo, 3, log),
		search.NewService(repo, log),
		log,
	)

	e := echo.New()
	Register(e, h, 1000)
	return e
}

type response struct {
	code int
	body map[string]interface{}
}

func do(t *testing.T, e *echo.Echo, method, path, user, body string) response {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if user != "" {
		req.Header.Set(HeaderUserID, user)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	res := response{code: rec.Code}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &res.body); err != nil {
			t.Fatalf("%s %s: invalid JSON %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return res
}

func expect(t *testing.T, r response, code int, kind string) {
	t.Helper()
	if r.code != code {
		t.Fatalf("expected %d, got %d: %v", code, r.code, r.body)
	}
	if kind != "" && r.body["error"] != kind {
		t.Fatalf("expected error %q, got %v", kind, r.body)
	}
}

const cleaningGig = `{
	"title": "Apartment cleaning",
	"description": "Two bedrooms, weekly",
	"category": "cleaning",
	"skills": [{"name": "Cleaning", "proficiency": "intermediate"}],
	"location": {"lat": 12.9, "lng": 77.6, "address": "1 Residency Rd", "city": "Bengaluru"},
	"payment": {"rate": 500, "paymentType": "hourly"},
	"urgency": "high"
}`

func TestHealth(t *testing.T) {
	e := setupServer(t)
	r := do(t, e, http.MethodGet, "/health", "", "")
	expect(t, r, http.StatusOK, "")
	if r.body["status"] != "ok" {
		t.Fatalf("unexpected body %v", r.body)
	}
}

func TestCreateGig_Errors(t *testing.T) {
	e := setupServer(t)

	expect(t, do(t, e, http.MethodPost, "/gigs", "", cleaningGig), http.StatusForbidden, "authorization_error")
	expect(t, do(t, e, http.MethodPost, "/gigs", "poster", `{"title": `), http.StatusBadRequest, "validation_error")
	expect(t, do(t, e, http.MethodPost, "/gigs", "poster", `{"title": "x"}`), http.StatusBadRequest, "validation_error")

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	withPastDeadline := strings.Replace(cleaningGig, `"urgency": "high"`, `"urgency": "high", "timeline": {"deadline": "`+past+`"}`, 1)
	expect(t, do(t, e, http.MethodPost, "/gigs", "poster", withPastDeadline), http.StatusBadRequest, "validation_error")

	expect(t, do(t, e, http.MethodGet, "/gigs/does-not-exist", "", ""), http.StatusNotFound, "not_found")
}

func TestGigAndApplicationFlow(t *testing.T) {
	e := setupServer(t)

	created := do(t, e, http.MethodPost, "/gigs", "poster", cleaningGig)
	expect(t, created, http.StatusCreated, "")
	if created.body["status"] != "posted" || created.body["posterId"] != "poster" {
		t.Fatalf("unexpected gig %v", created.body)
	}
	gigID := created.body["id"].(string)
	base := "/gigs/" + gigID

	expect(t, do(t, e, http.MethodPost, base+"/start", "poster", ""), http.StatusUnprocessableEntity, "invalid_transition")

	applied := do(t, e, http.MethodPost, base+"/applications", "B", `{"message": "I can do it", "proposedRate": 450}`)
	expect(t, applied, http.StatusCreated, "")
	appB := applied.body["id"].(string)
	if applied.body["status"] != "pending" {
		t.Fatalf("expected pending application, got %v", applied.body)
	}

	dup := do(t, e, http.MethodPost, base+"/applications", "B", `{}`)
	expect(t, dup, http.StatusConflict, "conflict")
	if dup.body["message"] != "duplicate" {
		t.Fatalf("expected duplicate message, got %v", dup.body)
	}
	expect(t, do(t, e, http.MethodPost, base+"/applications", "poster", `{}`), http.StatusConflict, "conflict")

	applied = do(t, e, http.MethodPost, base+"/applications", "C", `{}`)
	expect(t, applied, http.StatusCreated, "")
	appC := applied.body["id"].(string)

	own := do(t, e, http.MethodGet, base+"/applications", "B", "")
	expect(t, own, http.StatusOK, "")
	if own.body["count"].(float64) != 1 {
		t.Fatalf("applicant should only see their own application, got %v", own.body)
	}
	all := do(t, e, http.MethodGet, base+"/applications", "poster", "")
	if all.body["count"].(float64) != 2 {
		t.Fatalf("poster should see both applications, got %v", all.body)
	}

	expect(t, do(t, e, http.MethodPost, base+"/applications/"+appB+"/accept", "B", ""), http.StatusForbidden, "authorization_error")
	expect(t, do(t, e, http.MethodPost, base+"/applications/nope/accept", "poster", ""), http.StatusNotFound, "not_found")

	accepted := do(t, e, http.MethodPost, base+"/applications/"+appB+"/accept", "poster", "")
	expect(t, accepted, http.StatusOK, "")
	if accepted.body["status"] != "assigned" || accepted.body["assignedTo"] != "B" {
		t.Fatalf("unexpected gig after accept %v", accepted.body)
	}
	for _, raw := range accepted.body["applications"].([]interface{}) {
		app := raw.(map[string]interface{})
		want := "rejected"
		if app["id"] == appB {
			want = "accepted"
		}
		if app["status"] != want {
			t.Errorf("application %v: expected %s, got %v", app["id"], want, app["status"])
		}
	}

	expect(t, do(t, e, http.MethodPost, base+"/applications/"+appC+"/accept", "poster", ""), http.StatusConflict, "conflict")
	expect(t, do(t, e, http.MethodPost, base+"/applications", "D", `{}`), http.StatusConflict, "conflict")

	expect(t, do(t, e, http.MethodPost, base+"/start", "poster", ""), http.StatusOK, "")
	done := do(t, e, http.MethodPost, base+"/complete", "poster", "")
	expect(t, done, http.StatusOK, "")
	if done.body["status"] != "completed" || done.body["completionDate"] == nil {
		t.Fatalf("unexpected completed gig %v", done.body)
	}

	mine := do(t, e, http.MethodGet, "/users/me/applications", "C", "")
	expect(t, mine, http.StatusOK, "")
	gigs := mine.body["gigs"].([]interface{})
	if len(gigs) != 1 {
		t.Fatalf("expected one gig applied to, got %v", mine.body)
	}
	apps := gigs[0].(map[string]interface{})["applications"].([]interface{})
	if len(apps) != 1 || apps[0].(map[string]interface{})["applicantId"] != "C" {
		t.Fatalf("applicant must only see their own application, got %v", apps)
	}

	posted := do(t, e, http.MethodGet, "/users/me/gigs?status=completed", "poster", "")
	if posted.body["count"].(float64) != 1 {
		t.Fatalf("expected one completed gig, got %v", posted.body)
	}
}

func TestCancelGig(t *testing.T) {
	e := setupServer(t)

	gigID := do(t, e, http.MethodPost, "/gigs", "poster", cleaningGig).body["id"].(string)
	base := "/gigs/" + gigID
	do(t, e, http.MethodPost, base+"/applications", "B", `{}`)

	expect(t, do(t, e, http.MethodPost, base+"/cancel", "B", `{"reason": "nope"}`), http.StatusForbidden, "authorization_error")

	cancelled := do(t, e, http.MethodPost, base+"/cancel", "poster", `{"reason": "found someone"}`)
	expect(t, cancelled, http.StatusOK, "")
	if cancelled.body["status"] != "cancelled" || cancelled.body["cancellationReason"] != "found someone" {
		t.Fatalf("unexpected cancelled gig %v", cancelled.body)
	}
	app := cancelled.body["applications"].([]interface{})[0].(map[string]interface{})
	if app["status"] != "rejected" {
		t.Fatalf("pending application should be rejected, got %v", app)
	}
}

func TestSearchGigs(t *testing.T) {
	e := setupServer(t)

	do(t, e, http.MethodPost, "/gigs", "poster", cleaningGig)
	far := strings.Replace(cleaningGig, `"lat": 12.9`, `"lat": 13.2`, 1)
	do(t, e, http.MethodPost, "/gigs", "poster", far)
	draft := strings.Replace(cleaningGig, `"urgency": "high"`, `"urgency": "high", "draft": true`, 1)
	do(t, e, http.MethodPost, "/gigs", "poster", draft)

	r := do(t, e, http.MethodGet, "/gigs/search?q=cleaning&lat=12.9&lng=77.6&radius=5&sort=distance", "", "")
	expect(t, r, http.StatusOK, "")
	if r.body["total"].(float64) != 1 || r.body["sort"] != "distance" {
		t.Fatalf("unexpected result %v", r.body)
	}
	hit := r.body["gigs"].([]interface{})[0].(map[string]interface{})
	if hit["distance"].(float64) != 0 {
		t.Fatalf("expected distance 0, got %v", hit["distance"])
	}
	if _, ok := hit["applications"]; ok {
		t.Fatal("search hits must not expose applications")
	}

	r = do(t, e, http.MethodGet, "/gigs/search?skills=plumbing,cleaning&limit=1", "", "")
	expect(t, r, http.StatusOK, "")
	if r.body["total"].(float64) != 2 || r.body["totalPages"].(float64) != 2 || len(r.body["gigs"].([]interface{})) != 1 {
		t.Fatalf("unexpected paging %v", r.body)
	}

	bad := do(t, e, http.MethodGet, "/gigs/search?lat=north&lng=77.6", "", "")
	expect(t, bad, http.StatusBadRequest, "validation_error")
	if bad.body["message"] != "invalid value for lat" {
		t.Fatalf("unexpected message %v", bad.body)
	}
	expect(t, do(t, e, http.MethodGet, "/gigs/search?lat=12.9", "", ""), http.StatusBadRequest, "validation_error")
}
