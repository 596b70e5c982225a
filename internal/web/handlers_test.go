package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/meltforce/trainlog/internal/auth"
	"github.com/meltforce/trainlog/internal/models"
	"github.com/meltforce/trainlog/internal/storage"
)

// fakeStore is an in-memory Store for handler tests. It mirrors the
// ownership contract of the real one: a record owned by someone else is
// reported as storage.ErrNotFound.
type fakeStore struct {
	users     map[string]*models.User
	types     []models.ExerciseType
	sessions  []models.TrainingSession
	exercises []models.SessionExerciseDetail
	nextID    int64

	statsSince time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*models.User)}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (f *fakeStore) ListExerciseTypes(context.Context) ([]models.ExerciseType, error) {
	out := make([]models.ExerciseType, len(f.types))
	copy(out, f.types)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) GetExerciseType(_ context.Context, id int64) (*models.ExerciseType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			et := f.types[i]
			return &et, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CreateExerciseType(_ context.Context, name string) (int64, error) {
	et := models.ExerciseType{ID: f.id(), Name: name}
	f.types = append(f.types, et)
	return et.ID, nil
}

func (f *fakeStore) UpdateExerciseType(_ context.Context, id int64, name string) error {
	for i := range f.types {
		if f.types[i].ID == id {
			f.types[i].Name = name
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteExerciseType(_ context.Context, id int64) error {
	for i := range f.types {
		if f.types[i].ID == id {
			f.types = append(f.types[:i], f.types[i+1:]...)
			f.dropExercises(func(e models.SessionExerciseDetail) bool {
				return e.ExerciseTypeID == id
			})
			return nil
		}
	}
	return storage.ErrNotFound
}

// dropExercises mimics the schema's ON DELETE CASCADE foreign keys.
func (f *fakeStore) dropExercises(gone func(models.SessionExerciseDetail) bool) {
	kept := f.exercises[:0]
	for _, e := range f.exercises {
		if !gone(e) {
			kept = append(kept, e)
		}
	}
	f.exercises = kept
}

func (f *fakeStore) ListTrainingSessions(_ context.Context, ownerID int64) ([]models.TrainingSession, error) {
	var out []models.TrainingSession
	for _, s := range f.sessions {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out, nil
}

func (f *fakeStore) GetTrainingSession(_ context.Context, id, ownerID int64) (*models.TrainingSession, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id && f.sessions[i].OwnerID == ownerID {
			s := f.sessions[i]
			return &s, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) CreateTrainingSession(_ context.Context, s models.TrainingSession) (int64, error) {
	s.ID = f.id()
	f.sessions = append(f.sessions, s)
	return s.ID, nil
}

func (f *fakeStore) UpdateTrainingSession(_ context.Context, s models.TrainingSession) error {
	for i := range f.sessions {
		if f.sessions[i].ID == s.ID && f.sessions[i].OwnerID == s.OwnerID {
			s.ID = f.sessions[i].ID
			f.sessions[i] = s
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteTrainingSession(_ context.Context, id, ownerID int64) error {
	for i := range f.sessions {
		if f.sessions[i].ID == id && f.sessions[i].OwnerID == ownerID {
			f.sessions = append(f.sessions[:i], f.sessions[i+1:]...)
			f.dropExercises(func(e models.SessionExerciseDetail) bool {
				return e.SessionID == id
			})
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) ListSessionExercises(_ context.Context, ownerID int64) ([]models.SessionExerciseDetail, error) {
	var out []models.SessionExerciseDetail
	for _, e := range f.exercises {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SessionStart.After(out[j].SessionStart) })
	return out, nil
}

func (f *fakeStore) ListExercisesForSession(ctx context.Context, sessionID, ownerID int64) ([]models.SessionExerciseDetail, error) {
	if _, err := f.GetTrainingSession(ctx, sessionID, ownerID); err != nil {
		return nil, err
	}
	var out []models.SessionExerciseDetail
	for _, e := range f.exercises {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) GetSessionExercise(_ context.Context, id, ownerID int64) (*models.SessionExerciseDetail, error) {
	for i := range f.exercises {
		if f.exercises[i].ID == id && f.exercises[i].OwnerID == ownerID {
			e := f.exercises[i]
			return &e, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeStore) detail(e models.SessionExercise) (models.SessionExerciseDetail, error) {
	d := models.SessionExerciseDetail{SessionExercise: e}
	found := false
	for _, s := range f.sessions {
		if s.ID == e.SessionID && s.OwnerID == e.OwnerID {
			d.SessionStart, d.SessionEnd = s.Start, s.End
			found = true
		}
	}
	if !found {
		return d, storage.ErrNotFound
	}
	for _, et := range f.types {
		if et.ID == e.ExerciseTypeID {
			d.ExerciseName = et.Name
		}
	}
	return d, nil
}

func (f *fakeStore) CreateSessionExercise(_ context.Context, e models.SessionExercise) (int64, error) {
	d, err := f.detail(e)
	if err != nil {
		return 0, err
	}
	d.ID = f.id()
	f.exercises = append(f.exercises, d)
	return d.ID, nil
}

func (f *fakeStore) UpdateSessionExercise(_ context.Context, e models.SessionExercise) error {
	d, err := f.detail(e)
	if err != nil {
		return err
	}
	for i := range f.exercises {
		if f.exercises[i].ID == e.ID && f.exercises[i].OwnerID == e.OwnerID {
			d.ID = e.ID
			f.exercises[i] = d
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) DeleteSessionExercise(_ context.Context, id, ownerID int64) error {
	for i := range f.exercises {
		if f.exercises[i].ID == id && f.exercises[i].OwnerID == ownerID {
			f.exercises = append(f.exercises[:i], f.exercises[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeStore) GetTrainingStats(_ context.Context, ownerID int64, since time.Time) (*storage.TrainingStats, error) {
	f.statsSince = since
	stats := &storage.TrainingStats{Since: since}
	for _, e := range f.exercises {
		if e.OwnerID == ownerID && !e.SessionStart.Before(since) {
			stats.Rows = append(stats.Rows, e)
		}
	}
	return stats, nil
}

var _ Store = (*fakeStore)(nil)

func newTestServer(t *testing.T, store Store) (*Server, *auth.SessionStore) {
	t.Helper()
	sessions := auth.NewSessionStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(store, sessions, log)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s, sessions
}

// loginAs returns a request cookie for a fresh session of the given user.
func loginAs(sessions *auth.SessionStore, userID int64, username string, isAdmin bool) *http.Cookie {
	token := sessions.Create(userID, username, isAdmin)
	return &http.Cookie{Name: "trainlog_session", Value: token}
}

func get(s *Server, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func postForm(s *Server, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// seedSession stores a session for the given owner and returns its ID.
func seedSession(f *fakeStore, ownerID int64, start, end time.Time) int64 {
	id, _ := f.CreateTrainingSession(context.Background(), models.TrainingSession{
		OwnerID: ownerID, Start: start, End: end,
	})
	return id
}

// TestAnonymousSessionListRedirects verifies that the training session list
// requires a login.
func TestAnonymousSessionListRedirects(t *testing.T) {
	s, _ := newTestServer(t, newFakeStore())

	rec := get(s, "/training-sessions/", nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}
}

// TestExerciseTypeListPublic verifies the catalog is readable without a
// login and hides the admin links.
func TestExerciseTypeListPublic(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Bench press")
	s, _ := newTestServer(t, f)

	rec := get(s, "/exercise-types/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Bench press") {
		t.Errorf("body missing exercise type name")
	}
	if strings.Contains(body, "/exercise-types/create/") {
		t.Errorf("anonymous catalog shows admin create link")
	}
}

// TestExerciseTypeListOrder verifies catalog entries come back in name
// order.
func TestExerciseTypeListOrder(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Squat")
	f.CreateExerciseType(context.Background(), "Bench press")
	s, _ := newTestServer(t, f)

	rec := get(s, "/exercise-types/", nil)

	body := rec.Body.String()
	if bench, squat := strings.Index(body, "Bench press"), strings.Index(body, "Squat"); bench == -1 || squat == -1 || bench > squat {
		t.Errorf("catalog not ordered by name: bench at %d, squat at %d", bench, squat)
	}
}

// TestExerciseTypeCreateRequiresAdmin verifies non-admins get a 403 and
// anonymous visitors a login redirect on the admin catalog routes.
func TestExerciseTypeCreateRequiresAdmin(t *testing.T) {
	s, sessions := newTestServer(t, newFakeStore())

	rec := get(s, "/exercise-types/create/", nil)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("anonymous status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	user := loginAs(sessions, 1, "carol", false)
	rec = get(s, "/exercise-types/create/", user)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

// TestExerciseTypeCreate verifies an admin can add a catalog entry.
func TestExerciseTypeCreate(t *testing.T) {
	f := newFakeStore()
	s, sessions := newTestServer(t, f)
	admin := loginAs(sessions, 1, "admin", true)

	rec := postForm(s, "/exercise-types/create/", url.Values{"name": {"Deadlift"}}, admin)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, http.StatusFound, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/exercise-types/" {
		t.Errorf("Location = %q, want %q", loc, "/exercise-types/")
	}
	if len(f.types) != 1 || f.types[0].Name != "Deadlift" {
		t.Errorf("stored types = %+v, want one named Deadlift", f.types)
	}
}

// TestExerciseTypeCreateShortName verifies a too-short name re-renders the
// form with the error and stores nothing.
func TestExerciseTypeCreateShortName(t *testing.T) {
	f := newFakeStore()
	s, sessions := newTestServer(t, f)
	admin := loginAs(sessions, 1, "admin", true)

	rec := postForm(s, "/exercise-types/create/", url.Values{"name": {"ab"}}, admin)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "at least 3 characters") {
		t.Errorf("body missing name length error")
	}
	if len(f.types) != 0 {
		t.Errorf("invalid name was stored: %+v", f.types)
	}
}

// TestExerciseTypeEditMissing verifies editing an absent catalog entry is a
// 404.
func TestExerciseTypeEditMissing(t *testing.T) {
	s, sessions := newTestServer(t, newFakeStore())
	admin := loginAs(sessions, 1, "admin", true)

	rec := get(s, "/exercise-types/99/edit/", admin)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestSessionCreate verifies a valid session is stored for the logged-in
// user and redirects to the list.
func TestSessionCreate(t *testing.T) {
	f := newFakeStore()
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 7, "dave", false)

	rec := postForm(s, "/training-sessions/create/", url.Values{
		"start": {"2026-08-01T18:00"},
		"end":   {"2026-08-01T19:30"},
	}, user)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, http.StatusFound, rec.Body.String())
	}
	if len(f.sessions) != 1 {
		t.Fatalf("stored sessions = %d, want 1", len(f.sessions))
	}
	if f.sessions[0].OwnerID != 7 {
		t.Errorf("owner = %d, want 7", f.sessions[0].OwnerID)
	}
}

// TestSessionCreateEndNotAfterStart verifies an end time at or before the
// start re-renders the form with an error and keeps the submitted values.
func TestSessionCreateEndNotAfterStart(t *testing.T) {
	f := newFakeStore()
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 7, "dave", false)

	rec := postForm(s, "/training-sessions/create/", url.Values{
		"start": {"2026-08-01T18:00"},
		"end":   {"2026-08-01T18:00"},
	}, user)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "must be after the start time") {
		t.Errorf("body missing end-after-start error")
	}
	if !strings.Contains(body, `value="2026-08-01T18:00"`) {
		t.Errorf("body does not preserve submitted values")
	}
	if len(f.sessions) != 0 {
		t.Errorf("invalid session was stored")
	}
}

// TestSessionOwnershipIsolation verifies one user's session is a 404 for
// another user, on detail, edit, and delete.
func TestSessionOwnershipIsolation(t *testing.T) {
	f := newFakeStore()
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	id := seedSession(f, 1, start, start.Add(time.Hour))
	s, sessions := newTestServer(t, f)
	intruder := loginAs(sessions, 2, "mallory", false)

	for _, path := range []string{
		"/training-sessions/1/",
		"/training-sessions/1/edit/",
		"/training-sessions/1/delete/",
	} {
		rec := get(s, path, intruder)
		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}

	rec := postForm(s, "/training-sessions/1/delete/", url.Values{}, intruder)
	if rec.Code != http.StatusNotFound {
		t.Errorf("POST delete status = %d, want 404", rec.Code)
	}
	if _, err := f.GetTrainingSession(context.Background(), id, 1); err != nil {
		t.Errorf("session was deleted by a non-owner")
	}
}

// TestSessionDeleteConfirmThenDelete verifies the GET confirmation page and
// the POST that actually deletes.
func TestSessionDeleteConfirmThenDelete(t *testing.T) {
	f := newFakeStore()
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	id := seedSession(f, 1, start, start.Add(time.Hour))
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 1, "dave", false)

	rec := get(s, "/training-sessions/1/delete/", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, want 200", rec.Code)
	}
	if len(f.sessions) != 1 {
		t.Fatalf("GET confirmation deleted the session")
	}

	rec = postForm(s, "/training-sessions/1/delete/", url.Values{}, user)
	if rec.Code != http.StatusFound {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusFound)
	}
	if _, err := f.GetTrainingSession(context.Background(), id, 1); err == nil {
		t.Errorf("session still present after delete")
	}
}

// TestExerciseCreate verifies logging an exercise against the user's own
// session.
func TestExerciseCreate(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Bench press")
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	seedSession(f, 1, start, start.Add(time.Hour))
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 1, "dave", false)

	rec := postForm(s, "/session-exercises/create/", url.Values{
		"training_session": {"2"},
		"exercise_type":    {"1"},
		"weight":           {"80"},
		"sets":             {"3"},
		"reps":             {"10"},
	}, user)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, http.StatusFound, rec.Body.String())
	}
	if len(f.exercises) != 1 {
		t.Fatalf("stored exercises = %d, want 1", len(f.exercises))
	}
	e := f.exercises[0]
	if e.OwnerID != 1 || e.ExerciseName != "Bench press" || e.Weight != 80 {
		t.Errorf("stored exercise = %+v", e)
	}
}

// TestExerciseCreateForeignSession verifies an exercise cannot be attached
// to another user's session; the form re-renders with a field error.
func TestExerciseCreateForeignSession(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Bench press")
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	seedSession(f, 1, start, start.Add(time.Hour))
	s, sessions := newTestServer(t, f)
	intruder := loginAs(sessions, 2, "mallory", false)

	rec := postForm(s, "/session-exercises/create/", url.Values{
		"training_session": {"2"},
		"exercise_type":    {"1"},
		"weight":           {"80"},
		"sets":             {"3"},
		"reps":             {"10"},
	}, intruder)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "choose one of your training sessions") {
		t.Errorf("body missing foreign-session error")
	}
	if len(f.exercises) != 0 {
		t.Errorf("exercise stored against a foreign session")
	}
}

// TestExerciseCreateOutOfRange verifies the numeric bounds on weight, sets
// and reps.
func TestExerciseCreateOutOfRange(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Bench press")
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	seedSession(f, 1, start, start.Add(time.Hour))
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 1, "dave", false)

	rec := postForm(s, "/session-exercises/create/", url.Values{
		"training_session": {"2"},
		"exercise_type":    {"1"},
		"weight":           {"1001"},
		"sets":             {"0"},
		"reps":             {"101"},
	}, user)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, msg := range []string{
		"weight must be between 0 and 1000",
		"sets must be between 1 and 100",
		"reps must be between 1 and 100",
	} {
		if !strings.Contains(body, msg) {
			t.Errorf("body missing %q", msg)
		}
	}
	if len(f.exercises) != 0 {
		t.Errorf("out-of-range exercise was stored")
	}
}

// TestStatsWindow verifies the stats page asks the store for the last 28
// days.
func TestStatsWindow(t *testing.T) {
	f := newFakeStore()
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 1, "dave", false)

	rec := get(s, "/stats/", user)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := time.Now().AddDate(0, 0, -statsWindowDays)
	if d := f.statsSince.Sub(want); d < -time.Minute || d > time.Minute {
		t.Errorf("since = %v, want about %v", f.statsSince, want)
	}
}

// TestLogin verifies the login flow: bad credentials re-render with a
// generic message, good credentials set a session cookie and redirect.
func TestLogin(t *testing.T) {
	f := newFakeStore()
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	f.users["dave"] = &models.User{ID: 1, Username: "dave", PasswordHash: hash}
	s, _ := newTestServer(t, f)

	rec := postForm(s, "/login", url.Values{"username": {"dave"}, "password": {"wrong"}}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("bad password status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid username or password") {
		t.Errorf("body missing generic credential error")
	}

	rec = postForm(s, "/login", url.Values{"username": {"nobody"}, "password": {"hunter2"}}, nil)
	if !strings.Contains(rec.Body.String(), "invalid username or password") {
		t.Errorf("unknown user not given the same generic error")
	}

	rec = postForm(s, "/login", url.Values{"username": {"dave"}, "password": {"hunter2"}}, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/training-sessions/" {
		t.Errorf("Location = %q, want %q", loc, "/training-sessions/")
	}
	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "trainlog_session" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatalf("no session cookie set on login")
	}

	rec = get(s, "/training-sessions/", sessionCookie)
	if rec.Code != http.StatusOK {
		t.Errorf("list with session cookie status = %d, want 200", rec.Code)
	}
}

// TestLogout verifies logging out invalidates the session token.
func TestLogout(t *testing.T) {
	s, sessions := newTestServer(t, newFakeStore())
	user := loginAs(sessions, 1, "dave", false)

	rec := postForm(s, "/logout", url.Values{}, user)
	if rec.Code != http.StatusFound {
		t.Fatalf("logout status = %d, want %d", rec.Code, http.StatusFound)
	}

	rec = get(s, "/training-sessions/", user)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status after logout = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

// TestSessionEditForeignInvalidInput verifies the edit POST checks
// ownership before validating, so an invalid submission against another
// user's session is still a 404 and not a form re-render.
func TestSessionEditForeignInvalidInput(t *testing.T) {
	f := newFakeStore()
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	seedSession(f, 1, start, start.Add(time.Hour))
	s, sessions := newTestServer(t, f)
	intruder := loginAs(sessions, 2, "mallory", false)

	rec := postForm(s, "/training-sessions/1/edit/", url.Values{
		"start": {"2026-08-01T18:00"},
		"end":   {"not-a-date"},
	}, intruder)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestExerciseTypeEditMissingInvalidInput verifies the catalog edit POST
// 404s on an absent entry even when the submitted name is also invalid.
func TestExerciseTypeEditMissingInvalidInput(t *testing.T) {
	s, sessions := newTestServer(t, newFakeStore())
	admin := loginAs(sessions, 1, "admin", true)

	rec := postForm(s, "/exercise-types/99/edit/", url.Values{"name": {"ab"}}, admin)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

// TestSessionDeleteCascadesToExercises verifies deleting a session removes
// its logged exercises from the user's exercise list.
func TestSessionDeleteCascadesToExercises(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Squat")
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	id := seedSession(f, 1, start, start.Add(time.Hour))
	f.CreateSessionExercise(context.Background(), models.SessionExercise{
		SessionID: id, ExerciseTypeID: 1, OwnerID: 1, Weight: 100, Sets: 5, Reps: 5,
	})
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 1, "dave", false)

	rec := postForm(s, "/training-sessions/2/delete/", url.Values{}, user)
	if rec.Code != http.StatusFound {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusFound)
	}

	rec = get(s, "/session-exercises/", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Squat") {
		t.Errorf("exercise list still shows an entry of the deleted session")
	}
}

// TestExerciseTypeDeleteCascadesToExercises verifies deleting a catalog
// entry removes the exercises logged against it.
func TestExerciseTypeDeleteCascadesToExercises(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Squat")
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	id := seedSession(f, 1, start, start.Add(time.Hour))
	f.CreateSessionExercise(context.Background(), models.SessionExercise{
		SessionID: id, ExerciseTypeID: 1, OwnerID: 1, Weight: 100, Sets: 5, Reps: 5,
	})
	s, sessions := newTestServer(t, f)
	admin := loginAs(sessions, 2, "admin", true)

	rec := postForm(s, "/exercise-types/1/delete/", url.Values{}, admin)
	if rec.Code != http.StatusFound {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusFound)
	}
	if len(f.exercises) != 0 {
		t.Errorf("exercises still present after their type was deleted")
	}
}

// TestSessionDetailListsExercises verifies the detail page shows the
// exercises logged for that session.
func TestSessionDetailListsExercises(t *testing.T) {
	f := newFakeStore()
	f.CreateExerciseType(context.Background(), "Squat")
	start := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	id := seedSession(f, 1, start, start.Add(time.Hour))
	f.CreateSessionExercise(context.Background(), models.SessionExercise{
		SessionID: id, ExerciseTypeID: 1, OwnerID: 1, Weight: 100, Sets: 5, Reps: 5,
	})
	s, sessions := newTestServer(t, f)
	user := loginAs(sessions, 1, "dave", false)

	rec := get(s, "/training-sessions/2/", user)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Squat") {
		t.Errorf("detail page missing logged exercise")
	}
}
