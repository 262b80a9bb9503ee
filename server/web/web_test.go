package web_test

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topi314/club-recruitment/internal/xtime"
	"github.com/topi314/club-recruitment/server"
	"github.com/topi314/club-recruitment/server/api"
	"github.com/topi314/club-recruitment/server/session"
	"github.com/topi314/club-recruitment/server/web"
)

const clubsJSON = `[
	{"id": 1, "name": "AI Club", "description": "Machine learning", "tags": ["Technical"], "is_recruiting": true, "total_members": 45},
	{"id": 2, "name": "Art Society", "description": "Painting", "tags": ["Arts"], "is_recruiting": true, "total_members": 12}
]`

type testEnv struct {
	backend *http.ServeMux
	url     string
	client  *http.Client
}

func newTestEnv(t *testing.T, modify func(cfg *server.Config)) *testEnv {
	t.Helper()

	backend := http.NewServeMux()
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	cfg := server.Config{
		Server: server.ServerConfig{PublicURL: "http://clubs.test"},
		API:    api.Config{BaseURL: backendSrv.URL},
		Identity: session.Identity{
			StudentID:     1,
			CoordinatorID: 2,
		},
		Home:    server.HomeConfig{PollInterval: xtime.Duration(time.Minute)},
		Chat:    server.ChatConfig{IdleTimeout: xtime.Duration(time.Hour)},
		Session: session.Config{Store: session.StoreTypeMemory, MaxAge: xtime.Duration(time.Hour)},
	}
	if modify != nil {
		modify(&cfg)
	}

	srv, err := server.New(cfg)
	require.NoError(t, err)

	frontend := httptest.NewServer(web.Routes(srv))
	t.Cleanup(frontend.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		backend: backend,
		url:     frontend.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()

	rs, err := e.client.Get(e.url + path)
	require.NoError(t, err)
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)
	return rs, string(body)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	rs, err := e.client.PostForm(e.url+path, form)
	require.NoError(t, err)
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	require.NoError(t, err)
	return rs, string(body)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestDirectory(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, clubsJSON)
	})

	rs, body := env.get(t, "/directory?search=club")
	assert.Equal(t, http.StatusOK, rs.StatusCode)
	assert.Contains(t, body, "AI Club")
	assert.NotContains(t, body, "Art Society")

	_, body = env.get(t, "/directory?tag=Arts")
	assert.Contains(t, body, "Art Society")
	assert.NotContains(t, body, "<h3>AI Club</h3>")

	_, body = env.get(t, "/directory?apply=2")
	assert.Contains(t, body, "Apply to Art Society")
}

func TestDirectory_SearchIsNotTrimmed(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, clubsJSON)
	})

	_, body := env.get(t, "/directory?search=club%20")
	assert.NotContains(t, body, "<h3>AI Club</h3>")
	assert.Contains(t, body, `value="club "`)

	_, body = env.get(t, "/directory?search=%20%20")
	assert.NotContains(t, body, "<h3>AI Club</h3>")
	assert.NotContains(t, body, "<h3>Art Society</h3>")
}

func TestDirectory_EnterKeepsTag(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, clubsJSON)
	})

	_, body := env.get(t, "/directory?tag=Arts")
	// implicit submission uses the first submit button, which must not carry a tag
	defaultButton := strings.Index(body, `<button type="submit" class="visually-hidden"`)
	firstCategory := strings.Index(body, `name="tag"`)
	require.NotEqual(t, -1, defaultButton)
	assert.Less(t, defaultButton, firstCategory)

	_, body = env.get(t, "/directory?search=art&tag=Arts")
	assert.Contains(t, body, "<h3>Art Society</h3>")
}

func TestNew_NoClientTimeout(t *testing.T) {
	srv, err := server.New(server.Config{
		API:     api.Config{BaseURL: "http://127.0.0.1:1"},
		Home:    server.HomeConfig{PollInterval: xtime.Duration(time.Minute)},
		Chat:    server.ChatConfig{IdleTimeout: xtime.Duration(time.Hour)},
		Session: session.Config{Store: session.StoreTypeMemory, MaxAge: xtime.Duration(time.Hour)},
	})
	require.NoError(t, err)
	t.Cleanup(srv.Stop)

	assert.Zero(t, srv.HttpClient.Timeout)
}

func TestDirectory_BackendDown(t *testing.T) {
	env := newTestEnv(t, func(cfg *server.Config) {
		cfg.API.BaseURL = "http://127.0.0.1:1"
	})

	rs, body := env.get(t, "/directory")
	assert.Equal(t, http.StatusOK, rs.StatusCode)
	assert.Contains(t, body, "Failed to fetch clubs. Is the backend running?")
}

func TestSessionCookie(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "[]")
	})

	rs, _ := env.get(t, "/directory")
	var found bool
	for _, cookie := range rs.Cookies() {
		if cookie.Name == "session" {
			found = true
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found)

	rs, _ = env.get(t, "/directory")
	assert.Empty(t, rs.Cookies(), "an existing session must be reused")
}

func TestApply(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, clubsJSON)
	})
	env.backend.HandleFunc("POST /apply/{student_id}/{club_id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.PathValue("student_id"))
		if r.PathValue("club_id") == "2" {
			writeJSON(w, http.StatusBadRequest, `{"message": "Already applied"}`)
			return
		}
		writeJSON(w, http.StatusCreated, `{"message": "Application submitted successfully"}`)
	})

	_, body := env.post(t, "/directory/apply/1", url.Values{"search": {"club"}})
	assert.Contains(t, body, "Apply to AI Club")
	assert.Contains(t, body, "Application submitted successfully")

	_, body = env.post(t, "/directory/apply/2", nil)
	assert.Contains(t, body, "Already applied")
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t, nil)
	var calls atomic.Int32
	env.backend.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var registration api.Registration
		require.NoError(t, json.NewDecoder(r.Body).Decode(&registration))
		assert.Equal(t, "coordinator", registration.Role)
		writeJSON(w, http.StatusCreated, `{"message": "User registered successfully", "user_id": 42}`)
	})

	rs, _ := env.post(t, "/register", url.Values{
		"full_name": {"Ada Lovelace"},
		"username":  {"ada"},
		"email":     {"invalid"},
		"password":  {"secret1"},
		"role":      {"coordinator"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rs.StatusCode)
	assert.Zero(t, calls.Load())

	_, body := env.post(t, "/register", url.Values{
		"full_name": {"Ada Lovelace"},
		"username":  {"ada"},
		"email":     {"ada@example.com"},
		"password":  {"secret1"},
		"role":      {"coordinator"},
	})
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, body, "Registration successful")
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "Coordinator #42")

	_, body = env.post(t, "/register", url.Values{
		"full_name": {"Ada Lovelace"},
		"username":  {"ada2"},
		"email":     {"ada@example.com"},
		"password":  {"abc"},
		"role":      {"coordinator"},
	})
	assert.Equal(t, int32(2), calls.Load(), "short passwords are accepted")
	assert.Contains(t, body, "Registration successful")
}

func TestRegister_Failure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"message": "Username exists"}`)
	})

	_, body := env.post(t, "/register", url.Values{
		"full_name": {"Ada Lovelace"},
		"username":  {"ada"},
		"email":     {"ada@example.com"},
		"password":  {"secret1"},
		"role":      {"student"},
	})
	assert.Contains(t, body, "Registration failed. Please try again.")
	assert.NotContains(t, body, "Registration successful")
}

func TestProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	var puts atomic.Int32
	env.backend.HandleFunc("GET /user/profile/1", func(w http.ResponseWriter, r *http.Request) {
		if puts.Load() == 0 {
			writeJSON(w, http.StatusOK, `{"id": 1, "full_name": "Ada", "major": "History", "interests": "AI", "skills": "Go"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id": 1, "full_name": "Ada", "major": "Mathematics", "interests": "AI", "skills": "Go"}`)
	})
	env.backend.HandleFunc("PUT /profile/1", func(w http.ResponseWriter, r *http.Request) {
		puts.Add(1)
		writeJSON(w, http.StatusOK, `{"message": "Profile updated"}`)
	})

	_, body := env.get(t, "/profile")
	assert.Contains(t, body, `value="History"`)

	_, body = env.post(t, "/profile", url.Values{
		"major":     {"Math"},
		"interests": {"AI"},
		"skills":    {"Go"},
	})
	assert.Equal(t, int32(1), puts.Load())
	assert.Contains(t, body, "Profile updated successfully! 🎉")
	assert.Contains(t, body, "Mathematics")
}

func TestProfile_LoadFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /user/profile/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"message": "boom"}`)
	})

	rs, body := env.get(t, "/profile")
	assert.Equal(t, http.StatusOK, rs.StatusCode)
	assert.Contains(t, body, `name="major" value=""`)
}

func TestDashboard_PartialFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /user/profile/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id": 1, "full_name": "Ada Lovelace"}`)
	})
	env.backend.HandleFunc("GET /recommendations/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"recommendations": [{"id": 1, "name": "AI Club", "score": 0.9}]}`)
	})
	env.backend.HandleFunc("GET /applications/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{}`)
	})

	_, body := env.get(t, "/dashboard")
	assert.Contains(t, body, "Failed to load dashboard data. Is the backend running?")
	assert.NotContains(t, body, "Ada Lovelace")
	assert.NotContains(t, body, "AI Club")
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /user/profile/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id": 1, "full_name": "Ada Lovelace", "profile_complete": true}`)
	})
	env.backend.HandleFunc("GET /recommendations/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"recommendations": [{"id": 1, "name": "AI Club", "score": 0.876}]}`)
	})
	env.backend.HandleFunc("GET /applications/1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id": 3, "club_name": "Art Society", "status": "Pending", "timestamp": "2025-03-01T10:00:00"}]`)
	})

	_, body := env.get(t, "/dashboard")
	assert.Contains(t, body, "Welcome, Ada Lovelace")
	assert.Contains(t, body, "88% match")
	assert.Contains(t, body, `class="status-pending"`)
}

func officerBackend(env *testEnv, qr string) {
	env.backend.HandleFunc("GET /clubs/coordinator/2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id": 4, "name": "AI Club"}`)
	})
	env.backend.HandleFunc("GET /clubs/4/events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"events": [{"id": 7, "name": "Hack Night", "date": "2025-04-01T18:00:00", "location": "Lab"}]}`)
	})
	env.backend.HandleFunc("GET /applications/club/4", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id": 3, "student_name": "Ada", "student_id": 1, "status": "Accepted", "timestamp": "2025-03-01T10:00:00"}]`)
	})
	env.backend.HandleFunc("GET /feedback/club/4", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id": 1, "student_name": "Bob", "rating": 4, "comment": "Great"}]`)
	})
	env.backend.HandleFunc("GET /generate_qr/7", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"image_base64": "`+qr+`"}`)
	})
}

func TestOfficerDashboard(t *testing.T) {
	t.Run("qr", func(t *testing.T) {
		env := newTestEnv(t, nil)
		officerBackend(env, "iVBORw==")

		_, body := env.get(t, "/officer-dashboard?qr=7")
		assert.Contains(t, body, "Hack Night")
		assert.Contains(t, body, "★★★★☆")
		assert.Contains(t, body, `src="data:image/png;base64,iVBORw=="`)

		rs, png := env.get(t, "/officer-dashboard/events/7/qr.png")
		assert.Equal(t, "image/png", rs.Header.Get("Content-Type"))
		assert.Equal(t, "\x89PNG", png)
	})

	t.Run("invalid qr", func(t *testing.T) {
		env := newTestEnv(t, nil)
		officerBackend(env, "not base64!")

		_, body := env.get(t, "/officer-dashboard?qr=7")
		assert.Contains(t, body, "Hack Night")
		assert.Contains(t, body, "Failed to load QR code.")
	})

	t.Run("export csv", func(t *testing.T) {
		env := newTestEnv(t, nil)
		officerBackend(env, "")

		rs, body := env.get(t, "/officer-dashboard/applications.csv?fields=student_name,status,club_name")
		assert.Equal(t, "text/csv; charset=utf-8", rs.Header.Get("Content-Type"))

		records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"student_name", "status", "club_name"},
			{"Ada", "Accepted", "AI Club"},
		}, records)
	})

	t.Run("export xlsx", func(t *testing.T) {
		env := newTestEnv(t, nil)
		officerBackend(env, "")

		rs, body := env.get(t, "/officer-dashboard/applications.xlsx")
		assert.Equal(t, http.StatusOK, rs.StatusCode)
		assert.True(t, strings.HasPrefix(body, "PK"), "xlsx files are zip archives")
	})

	t.Run("failure", func(t *testing.T) {
		env := newTestEnv(t, nil)
		env.backend.HandleFunc("GET /clubs/coordinator/2", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"message": "No club found"}`)
		})

		_, body := env.get(t, "/officer-dashboard")
		assert.Contains(t, body, "Failed to fetch dashboard data. Is the backend running?")
	})
}

func TestChat(t *testing.T) {
	env := newTestEnv(t, nil)
	var calls atomic.Int32
	env.backend.HandleFunc("POST /chatbot", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var rq api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rq))
		assert.Equal(t, "hello", rq.Message)
		writeJSON(w, http.StatusOK, `{"response": "Hi there"}`)
	})
	env.backend.HandleFunc("GET /clubs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, "[]")
	})

	rs, _ := env.post(t, "/chat", url.Values{"message": {"   "}, "return_to": {"/directory"}})
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)
	assert.Equal(t, "/directory", rs.Header.Get("Location"))
	assert.Zero(t, calls.Load())

	_, _ = env.post(t, "/chat", url.Values{"message": {"hello"}, "return_to": {"//evil.test"}})
	assert.Equal(t, int32(1), calls.Load())

	_, body := env.get(t, "/directory")
	assert.Contains(t, body, `<li class="bubble user">hello</li>`)
	assert.Contains(t, body, `<li class="bubble bot">Hi there</li>`)
	assert.Equal(t, 1, strings.Count(body, "bubble bot"))
}

func TestSession(t *testing.T) {
	env := newTestEnv(t, nil)

	rs, _ := env.post(t, "/session", url.Values{"student_id": {"5"}, "coordinator_id": {"6"}})
	assert.Equal(t, http.StatusSeeOther, rs.StatusCode)

	_, body := env.get(t, "/session")
	assert.Contains(t, body, "Student #5 · Coordinator #6")

	rs, _ = env.post(t, "/session", url.Values{"student_id": {"-1"}, "coordinator_id": {"6"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rs.StatusCode)

	_, _ = env.post(t, "/session/reset", nil)
	_, body = env.get(t, "/session")
	assert.Contains(t, body, "Student #1 · Coordinator #2")
}

func TestCheckIn(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("POST /checkin/{key}/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc 123", r.PathValue("key"))
		assert.Equal(t, "1", r.PathValue("user_id"))
		writeJSON(w, http.StatusOK, `{"message": "Checked in"}`)
	})

	_, body := env.post(t, "/checkin", url.Values{"key": {"abc 123"}})
	assert.Contains(t, body, "Checked in")
}

func TestEventsCalendar(t *testing.T) {
	env := newTestEnv(t, nil)
	env.backend.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id": 7, "name": "Hack Night", "date": "2025-04-01T18:00:00", "location": "Lab", "club_name": "AI Club"}, {"id": 8, "name": "No Date", "date": null}]`)
	})

	rs, body := env.get(t, "/events.ics")
	assert.Equal(t, "text/calendar; charset=utf-8", rs.Header.Get("Content-Type"))
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Hack Night")
	assert.Contains(t, body, "event-7@clubs.test")
	assert.NotContains(t, body, "No Date")
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	rs, body := env.get(t, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rs.StatusCode)
	assert.Contains(t, body, "This page does not exist.")
}

func TestHomeLive(t *testing.T) {
	env := newTestEnv(t, func(cfg *server.Config) {
		cfg.Home.PollInterval = xtime.Duration(20 * time.Millisecond)
	})
	var fetches atomic.Int32
	env.backend.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		writeJSON(w, http.StatusOK, `[{"id": 7, "name": "Hack Night"}]`)
	})
	env.backend.HandleFunc("GET /buzz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"buzz_data": [{"club_name": "AI Club", "buzz_score": 9}]}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, env.url+"/home/live", nil)
	require.NoError(t, err)
	rs, err := env.client.Do(rq)
	require.NoError(t, err)
	defer rs.Body.Close()

	assert.Equal(t, "text/event-stream", rs.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(rs.Body)
	var (
		sawEvent bool
		data     strings.Builder
	)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "event: feed" {
			sawEvent = true
			continue
		}
		if sawEvent && strings.HasPrefix(line, "data: ") {
			data.WriteString(strings.TrimPrefix(line, "data: "))
			continue
		}
		if sawEvent && line == "" {
			break
		}
	}
	require.True(t, sawEvent)
	assert.Contains(t, data.String(), "Hack Night")
	assert.Contains(t, data.String(), "AI Club")

	cancel()
	_ = rs.Body.Close()

	// the poller stops with the stream
	time.Sleep(100 * time.Millisecond)
	stopped := fetches.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, stopped, fetches.Load())
}
