package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rainfolio.dev/internal/config"
	"rainfolio.dev/internal/content"
	"rainfolio.dev/internal/models"
	"rainfolio.dev/internal/services"
	"rainfolio.dev/internal/session"
)

type testServer struct {
	*httptest.Server
	store    *content.Store
	sessions *session.Manager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := content.NewStore(&models.Content{
		Profile: models.Profile{
			Name:     "Ada Example",
			Greeting: "Hi, I'm Ada.",
			About:    "I build **systems**.",
		},
		Projects: []models.Project{
			{ID: "compiler", Title: "Compiler", Category: models.CategorySystems, Description: "A compiler"},
			{ID: "site", Title: "Site", Category: models.CategoryWeb},
			{ID: "kernel", Title: "Kernel", Category: models.CategorySystems},
		},
		Experience: []models.Experience{{Role: "Engineer", Company: "Acme", Highlights: []string{"Shipped `v2`"}}},
	})

	cfg := config.Default()
	cfg.Sections = models.SectionNames(models.Sections)
	cfg.HTTP.AllowedOrigins = []string{"*"}

	opts := cfg.SessionOptions()
	opts.TypeInterval = time.Millisecond
	opts.FrameInterval = 5 * time.Millisecond
	sessions := session.NewManager(opts,
		services.NewProjectService(store),
		services.NewProfileService(store),
		zap.NewNop())

	router, err := SetupRoutes(cfg, store, sessions, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = sessions.Shutdown(ctx)
		srv.Close()
	})

	return &testServer{Server: srv, store: store, sessions: sessions}
}

func (s *testServer) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(s.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestListProjects(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/api/projects")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var all []models.Project
	require.NoError(t, json.Unmarshal([]byte(body), &all))
	assert.Len(t, all, 3)
}

func TestListProjects_FilterByCategory(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/api/projects?category=Systems")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got []models.Project
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "compiler", got[0].ID)
	assert.Equal(t, "kernel", got[1].ID)

	resp, body = srv.get(t, "/api/projects?category=Tools")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, body = srv.get(t, "/api/projects?category=Games")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "unknown category")
}

func TestGetProject(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/api/projects/site")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p models.Project
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	assert.Equal(t, "Site", p.Title)

	resp, body = srv.get(t, "/api/projects/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Project not found"}`, body)
}

func TestProfileEndpoints(t *testing.T) {
	srv := newTestServer(t)

	_, body := srv.get(t, "/api/profile")
	assert.Contains(t, body, `"name":"Ada Example"`)

	_, body = srv.get(t, "/api/experience")
	assert.Contains(t, body, `"company":"Acme"`)

	resp, body := srv.get(t, "/api/education")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	_, body = srv.get(t, "/api/sections")
	assert.JSONEq(t, `["about","experience","education","projects"]`, body)

	_, body = srv.get(t, "/api/categories")
	assert.JSONEq(t, `["All","Web","Systems","Data","Tools"]`, body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","content_version":1,"sessions":0}`, body)
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://elsewhere.example")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

	assert.Contains(t, body, "<title>Ada Example</title>")
	assert.Contains(t, body, `data-text="Hi, I&#39;m Ada."`)
	assert.Contains(t, body, "<strong>systems</strong>")
	assert.Contains(t, body, "<code>v2</code>")
	for _, id := range []string{"about", "experience", "education", "projects"} {
		assert.Contains(t, body, `<section id="`+id+`"`)
		assert.Contains(t, body, `data-section="`+id+`"`)
	}
	assert.Contains(t, body, "Compiler")
	assert.Contains(t, body, "Site")
}

func TestIndexPage_Filter(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/?category=web")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h3>Site")
	assert.NotContains(t, body, "<h3>Compiler")
	assert.Contains(t, body, `data-category="Web" class="selected"`)

	resp, body = srv.get(t, "/?category=Data")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "No data projects.")

	resp, _ = srv.get(t, "/?category=nope")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t)

	resp, body := srv.get(t, "/static/app.js")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "/api/session")

	resp, _ = srv.get(t, "/static/style.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = srv.get(t, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func readUntil(t *testing.T, conn *websocket.Conn, typ string) envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg envelope
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == typ {
			return msg
		}
	}
}

func TestSessionOverWebSocket(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/session"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	var hello session.Hello
	require.NoError(t, json.Unmarshal(readUntil(t, conn, session.MsgHello).Data, &hello))
	assert.NotEmpty(t, hello.SessionID)
	assert.Equal(t, 1, srv.sessions.Count())

	require.NoError(t, conn.WriteJSON(session.Inbound{Type: session.MsgFilter, Category: "Systems"}))
	var projects session.Projects
	require.NoError(t, json.Unmarshal(readUntil(t, conn, session.MsgProjects).Data, &projects))
	assert.Len(t, projects.Projects, 2)

	require.NoError(t, conn.WriteJSON(session.Inbound{Type: session.MsgResize, Width: 320, Height: 200}))
	var frame session.Frame
	require.NoError(t, json.Unmarshal(readUntil(t, conn, session.MsgFrame).Data, &frame))
	assert.NotEmpty(t, frame.Glyphs)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	require.Eventually(t, func() bool { return srv.sessions.Count() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestSessionSurvivesHostileFrames(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/session"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	readUntil(t, conn, session.MsgHello)

	frames := []string{
		`{"type":"resize","width":9223372036854775807,"height":100}`,
		`{"type":"resize","width":-20,"height":100}`,
		`{"type":"scroll"`,
	}
	for _, frame := range frames {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
		var reply session.ErrorData
		require.NoError(t, json.Unmarshal(readUntil(t, conn, session.MsgError).Data, &reply))
		assert.NotEmpty(t, reply.Message, frame)
	}

	assert.Equal(t, 1, srv.sessions.Count())
	require.NoError(t, conn.WriteJSON(session.Inbound{Type: session.MsgScrollToTop}))
	readUntil(t, conn, session.MsgScrollTo)
}

func TestSessionDropsOversizedFrames(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/session"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	readUntil(t, conn, session.MsgHello)

	big := `{"type":"retype","text":"` + strings.Repeat("x", maxMessageSize) + `"}`
	// the server may hang up before the whole frame is written
	_ = conn.WriteMessage(websocket.TextMessage, []byte(big))

	require.Eventually(t, func() bool { return srv.sessions.Count() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestSessionRejectsForeignOrigin(t *testing.T) {
	check := originChecker([]string{"https://ada.example"})

	req := httptest.NewRequest(http.MethodGet, "http://localhost:8080/api/session", nil)
	req.Host = "localhost:8080"

	assert.True(t, check(req))

	req.Header.Set("Origin", "http://localhost:8080")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://ada.example")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}
