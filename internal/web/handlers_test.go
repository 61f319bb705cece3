package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goldencity/invite/internal/wedding"
	"github.com/goldencity/invite/internal/wedding/service"
	"github.com/goldencity/invite/internal/wedding/storage/sqlite"
)

const testAdminCode = "922610"

func newTestServer(t *testing.T, svc DetailsService) *httptest.Server {
	t.Helper()
	server, err := NewServer(Config{
		HTTPAddr:  "localhost:0",
		AdminCode: testAdminCode,
		JWTKey:    []byte("test-signing-key"),
		Service:   svc,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newSQLiteService(t *testing.T) *service.Service {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "wedding.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return service.New(store)
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("new cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func getBody(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s status = %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) string {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func unlockAdmin(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	postForm(t, client, baseURL+"/admin/prompt", nil)
	body := postForm(t, client, baseURL+"/admin/unlock", url.Values{"code": {testAdminCode}})
	if !strings.Contains(body, "Admin access granted!") {
		t.Fatalf("expected grant notice, got:\n%s", body)
	}
}

func TestHomeRendersDefaultsOnEmptyStore(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, newSQLiteService(t))
	body := getBody(t, newClient(t), ts.URL+"/")
	for _, want := range []string{"Alexander", "Isabella", "Wedding Ceremony", "Reception Dinner"} {
		if !strings.Contains(body, want) {
			t.Fatalf("home missing %q", want)
		}
	}
	if strings.Contains(body, "Edit Details") {
		t.Fatal("edit affordance offered without admin grant")
	}
}

func TestAdminUnlockWithWrongCode(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, newSQLiteService(t))
	client := newClient(t)

	postForm(t, client, ts.URL+"/admin/prompt", nil)
	body := postForm(t, client, ts.URL+"/admin/unlock", url.Values{"code": {"000000"}})
	if !strings.Contains(body, "Invalid admin code") {
		t.Fatalf("expected failure notice, got:\n%s", body)
	}
	if strings.Contains(body, "Edit Details") {
		t.Fatal("wrong code must not grant edit access")
	}
	// The prompt stays open with an empty input for a retry.
	if !strings.Contains(body, `name="code"`) {
		t.Fatal("expected prompt still open after mismatch")
	}
	if !strings.Contains(body, `name="code" value=""`) {
		t.Fatal("expected cleared code input after mismatch")
	}
}

func TestEditRequiresGrant(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, newSQLiteService(t))
	client := newClient(t)

	resp, err := client.PostForm(ts.URL+"/edit", nil)
	if err != nil {
		t.Fatalf("post /edit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
}

func TestEndToEndEditFlow(t *testing.T) {
	t.Parallel()

	svc := newSQLiteService(t)
	ts := newTestServer(t, svc)
	client := newClient(t)

	// Empty store renders defaults.
	body := getBody(t, client, ts.URL+"/")
	if !strings.Contains(body, "Royal Gardens Chapel") {
		t.Fatal("expected default ceremony location")
	}

	unlockAdmin(t, client, ts.URL)

	// Start editing: the draft clones the displayed record.
	body = postForm(t, client, ts.URL+"/edit", nil)
	if !strings.Contains(body, `name="ceremony.0.location" value="Royal Gardens Chapel"`) {
		t.Fatalf("edit form missing cloned draft values:\n%s", body)
	}

	// Save with ceremony 0's location changed.
	body = postForm(t, client, ts.URL+"/edit/save", url.Values{
		"groomName":           {"Alexander"},
		"brideName":           {"Isabella"},
		"invitationText":      {wedding.Defaults().InvitationText},
		"ceremony.0.location": {"New Hall"},
	})
	if !strings.Contains(body, "Wedding details updated successfully!") {
		t.Fatalf("expected save notice, got:\n%s", body)
	}
	if !strings.Contains(body, "New Hall") {
		t.Fatal("expected saved location rendered")
	}

	// The store now holds the default record with only ceremony 0's
	// location changed.
	got, err := svc.GetDetails(context.Background())
	if err != nil {
		t.Fatalf("get details: %v", err)
	}
	want := wedding.Defaults()
	want.Ceremonies[0].Location = "New Hall"
	if got.Ceremonies[0].Location != "New Hall" {
		t.Fatalf("location = %q, want %q", got.Ceremonies[0].Location, "New Hall")
	}
	if got.GroomName != want.GroomName || got.BrideName != want.BrideName {
		t.Fatalf("names = %q/%q, want defaults", got.GroomName, got.BrideName)
	}
	if len(got.Ceremonies) != 2 || got.Ceremonies[1] != want.Ceremonies[1] {
		t.Fatalf("ceremony 1 = %+v, want unchanged default", got.Ceremonies)
	}
}

func TestCeremonyAddAndRemovePreserveTypedFields(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, newSQLiteService(t))
	client := newClient(t)
	unlockAdmin(t, client, ts.URL)
	postForm(t, client, ts.URL+"/edit", nil)

	// Add a third ceremony; typed-but-unsaved groom name rides along.
	body := postForm(t, client, ts.URL+"/edit/ceremonies/add", url.Values{
		"groomName": {"Gabriel"},
	})
	if !strings.Contains(body, `name="ceremony.2.name" value=""`) {
		t.Fatalf("expected empty appended ceremony:\n%s", body)
	}
	if !strings.Contains(body, `name="groomName" value="Gabriel"`) {
		t.Fatal("typed field lost across add")
	}

	// Remove the middle ceremony; the third shifts down to index 1.
	body = postForm(t, client, ts.URL+"/edit/ceremonies/1/remove", url.Values{
		"ceremony.2.name": {"Afterparty"},
	})
	if strings.Contains(body, "Reception Dinner") {
		t.Fatal("removed ceremony still rendered")
	}
	if !strings.Contains(body, `name="ceremony.1.name" value="Afterparty"`) {
		t.Fatalf("expected shifted ceremony at index 1:\n%s", body)
	}
}

func TestRemoveCeremonyOutOfRange(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, newSQLiteService(t))
	client := newClient(t)
	unlockAdmin(t, client, ts.URL)
	postForm(t, client, ts.URL+"/edit", nil)

	resp, err := client.PostForm(ts.URL+"/edit/ceremonies/9/remove", nil)
	if err != nil {
		t.Fatalf("post remove: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, newSQLiteService(t))
	client := newClient(t)
	unlockAdmin(t, client, ts.URL)
	postForm(t, client, ts.URL+"/edit", nil)

	body := postForm(t, client, ts.URL+"/edit/cancel", nil)
	if strings.Contains(body, "edit-form") {
		t.Fatal("cancel must return to the view")
	}
	if !strings.Contains(body, "Royal Gardens Chapel") {
		t.Fatal("view must render the unchanged record after cancel")
	}
}

// fakeService drives failure and latch scenarios without a real store.
type fakeService struct {
	mu      sync.Mutex
	details *wedding.Details
	putErr  error
	// block, when set, stalls UpdateDetails until it is closed. entered
	// receives once when a stalled update begins.
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeService) GetDetails(context.Context) (wedding.Details, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.details == nil {
		return wedding.Defaults(), nil
	}
	return f.details.Clone(), nil
}

func (f *fakeService) UpdateDetails(_ context.Context, details wedding.Details) error {
	f.mu.Lock()
	block, entered := f.block, f.entered
	f.mu.Unlock()
	if block != nil {
		if entered != nil {
			select {
			case entered <- struct{}{}:
			default:
			}
		}
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	clone := details.Clone()
	f.details = &clone
	return nil
}

func (f *fakeService) Watch(context.Context) (<-chan wedding.Details, func()) {
	return make(chan wedding.Details), func() {}
}

func TestSaveFailureKeepsDraftForRetry(t *testing.T) {
	t.Parallel()

	svc := &fakeService{putErr: context.DeadlineExceeded}
	ts := newTestServer(t, svc)
	client := newClient(t)
	unlockAdmin(t, client, ts.URL)
	postForm(t, client, ts.URL+"/edit", nil)

	body := postForm(t, client, ts.URL+"/edit/save", url.Values{
		"groomName": {"Gabriel"},
	})
	if !strings.Contains(body, "Failed to update details") {
		t.Fatalf("expected failure notice, got:\n%s", body)
	}
	if !strings.Contains(body, `name="groomName" value="Gabriel"`) {
		t.Fatal("draft must survive a failed save")
	}

	// Manual retry succeeds once the backend recovers.
	svc.mu.Lock()
	svc.putErr = nil
	svc.mu.Unlock()
	body = postForm(t, client, ts.URL+"/edit/save", nil)
	if !strings.Contains(body, "Wedding details updated successfully!") {
		t.Fatalf("expected retry success, got:\n%s", body)
	}
}

func TestSaveIsSingleFlight(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	svc := &fakeService{block: block, entered: make(chan struct{}, 1)}
	ts := newTestServer(t, svc)
	client := newClient(t)
	unlockAdmin(t, client, ts.URL)
	postForm(t, client, ts.URL+"/edit", nil)

	firstDone := make(chan string, 1)
	go func() {
		firstDone <- postForm(t, client, ts.URL+"/edit/save", nil)
	}()

	// Wait until the first save holds the latch inside the backend write,
	// then post a second one.
	select {
	case <-svc.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("first save never reached the backend")
	}
	body := postForm(t, client, ts.URL+"/edit/save", nil)
	if !strings.Contains(body, "Save already in progress") {
		t.Fatalf("expected in-flight notice, got:\n%s", body)
	}

	close(block)
	body = <-firstDone
	if !strings.Contains(body, "Wedding details updated successfully!") {
		t.Fatalf("expected first save to succeed, got:\n%s", body)
	}
}
