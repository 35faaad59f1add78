package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/backup"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

type fixture struct {
	router *gin.Engine
	store  *state.Store
	saves  int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := state.New(state.Options{
		Documents: store.NewMemory(),
		Logger:    log.New(io.Discard),
		Now:       func() time.Time { return time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC) },
	})
	if err := st.LoadDataForYear(context.Background(), 2025); err != nil {
		t.Fatalf("load: %v", err)
	}

	f := &fixture{store: st}
	h := NewHandler(st, func(context.Context) error {
		f.saves++
		return nil
	})
	f.router = gin.New()
	h.RegisterRoutes(f.router.Group("/api"))
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestGetState(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/state", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	got := decode[state.State](t, w)
	if got.Year != 2025 || got.WeekStart != "2025-03-03" {
		t.Fatalf("state = %+v", got)
	}
}

func TestLabelsAndEvents(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/labels", map[string]string{"name": "Work", "color": "#ff0000"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add label status = %d: %s", w.Code, w.Body)
	}
	l := decode[model.Label](t, w)

	if w := f.do(t, http.MethodPost, "/api/labels", map[string]string{"name": "Bad", "color": "red-ish"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid colour status = %d", w.Code)
	}
	if w := f.do(t, http.MethodPatch, "/api/labels/missing", map[string]string{"name": "x"}); w.Code != http.StatusNotFound {
		t.Fatalf("unknown label status = %d", w.Code)
	}

	w = f.do(t, http.MethodPost, "/api/events", map[string]string{"labelId": l.ID, "startDate": "2025-03-03", "endDate": "2025-03-07"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add event status = %d: %s", w.Code, w.Body)
	}
	if w := f.do(t, http.MethodPost, "/api/events", map[string]string{"labelId": l.ID, "startDate": "2025-03-09", "endDate": "2025-03-08"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("reversed range status = %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/events?on=2025-03-05", nil)
	if evs := decode[[]model.ProjectEvent](t, w); len(evs) != 1 {
		t.Fatalf("events on = %v", evs)
	}

	w = f.do(t, http.MethodDelete, "/api/labels/"+l.ID, nil)
	if got := decode[map[string]int](t, w); got["removedEvents"] != 1 {
		t.Fatalf("delete label = %v", got)
	}
	if f.saves != 3 {
		t.Fatalf("saves = %d, want one per successful mutation", f.saves)
	}
}

func TestDayRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/days/2025-03-05/todos", map[string]string{"text": "Write report"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add todo status = %d: %s", w.Code, w.Body)
	}
	todo := decode[model.DayTodo](t, w)

	w = f.do(t, http.MethodPatch, "/api/days/2025-03-05/todos/"+todo.ID, map[string]bool{"completed": true})
	if todos := decode[[]model.DayTodo](t, w); !todos[0].Completed {
		t.Fatalf("todo not completed: %v", todos)
	}

	if w := f.do(t, http.MethodPut, "/api/days/2025-03-05/mark", map[string]string{"mark": "star"}); w.Code != http.StatusOK {
		t.Fatalf("mark status = %d", w.Code)
	}
	if w := f.do(t, http.MethodPut, "/api/days/2025-03-05/diary", model.Diary{Keep: "focus"}); w.Code != http.StatusOK {
		t.Fatalf("diary status = %d", w.Code)
	}

	w = f.do(t, http.MethodGet, "/api/days/2025-03-05", nil)
	day := decode[map[string]any](t, w)
	if day["cellMark"] != "star" || day["weekday"] != "Wednesday" {
		t.Fatalf("day = %v", day)
	}

	if w := f.do(t, http.MethodPost, "/api/days/2024-12-31/todos", map[string]string{"text": "late"}); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("outside year status = %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, "/api/days/soon", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed date status = %d", w.Code)
	}
}

func TestCarryOver(t *testing.T) {
	f := newFixture(t)
	for _, text := range []string{"a", "b"} {
		f.do(t, http.MethodPost, "/api/days/2025-03-05/todos", map[string]string{"text": text})
	}
	w := f.do(t, http.MethodPost, "/api/days/2025-03-05/carry", map[string]string{"to": "2025-03-06"})
	if w.Code != http.StatusOK {
		t.Fatalf("carry status = %d: %s", w.Code, w.Body)
	}
	if got := f.store.GetTodosForDate("2025-03-06"); len(got) != 2 {
		t.Fatalf("carried = %v", got)
	}
}

func TestMoveWeek(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/api/week", map[string]int{"delta": 1})
	if got := decode[map[string]string](t, w); got["weekStart"] != "2025-03-10" {
		t.Fatalf("week = %v", got)
	}
	w = f.do(t, http.MethodPost, "/api/week", map[string]string{"start": "2025-06-18"})
	if got := decode[map[string]string](t, w); got["weekStart"] != "2025-06-16" {
		t.Fatalf("week = %v", got)
	}
}

func TestExportImport(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/backlog", map[string]any{"text": "renew passport", "priority": 2})

	w := f.do(t, http.MethodGet, "/api/export/2025", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/zip" {
		t.Fatalf("export status = %d, type %q", w.Code, w.Header().Get("Content-Type"))
	}
	archive := w.Body.Bytes()

	other := newFixture(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", backup.FileName(2025))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(archive); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	other.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body)
	}
	if got := other.store.BacklogTodos(); len(got) != 1 || got[0].Text != "renew passport" {
		t.Fatalf("imported backlog = %v", got)
	}
}

func TestImportMalformedKeepsState(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/api/labels", map[string]string{"name": "Keep me", "color": "#00ff00"})

	req := httptest.NewRequest(http.MethodPost, "/api/import?year=2025", bytes.NewReader([]byte("not a zip")))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := f.store.GetState().Yearly.Labels; len(got) != 1 {
		t.Fatalf("state changed after failed import: %v", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{state.ErrNotFound, http.StatusNotFound},
		{store.ErrNotFound, http.StatusNotFound},
		{state.ErrInvalidPriority, http.StatusUnprocessableEntity},
		{&state.ImportError{File: "x", Err: io.EOF}, http.StatusBadRequest},
		{state.ErrLoadSuperseded, http.StatusConflict},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestListenURL(t *testing.T) {
	tests := []struct {
		host string
		addr net.Addr
		want string
	}{
		{"", &net.TCPAddr{IP: net.IPv4zero, Port: 8765}, "http://127.0.0.1:8765/api"},
		{"0.0.0.0", &net.TCPAddr{IP: net.ParseIP("10.0.0.2"), Port: 80}, "http://10.0.0.2:80/api"},
		{"localhost", &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9000}, "http://localhost:9000/api"},
		{"::1", &net.TCPAddr{IP: net.IPv6loopback, Port: 9000}, "http://[::1]:9000/api"},
	}
	for _, tt := range tests {
		if got := ListenURL("http", tt.host, tt.addr, "/api"); got != tt.want {
			t.Errorf("ListenURL(%q, %v) = %q, want %q", tt.host, tt.addr, got, tt.want)
		}
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, &http.Server{Handler: http.NotFoundHandler()}, ln, TLS{})
	}()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}

func TestServeRejectsHalfTLS(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	if err := Serve(context.Background(), &http.Server{}, ln, TLS{CertFile: "cert.pem"}); err == nil {
		t.Fatal("expected an error for a certificate without a key")
	}
}

func TestMCPMounted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := state.New(state.Options{Documents: store.NewMemory(), Logger: log.New(io.Discard)})
	svc := &app.Service{Store: st, Logger: log.New(io.Discard)}
	hits := 0
	s := NewServer(svc, Options{MCP: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusAccepted)
	})})
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
	if w.Code != http.StatusAccepted || hits != 1 {
		t.Fatalf("status %d hits %d", w.Code, hits)
	}
}
