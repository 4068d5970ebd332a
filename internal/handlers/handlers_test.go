package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/everlog-app/everlog-backend/internal/handlers"
	"github.com/everlog-app/everlog-backend/internal/routes"
	"github.com/everlog-app/everlog-backend/internal/services"
	"github.com/everlog-app/everlog-backend/internal/storage"
)

// pngBytes is a minimal payload the content sniffer accepts as image/png.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)

// stubGeocoder serves handler tests that exercise the geocoding routes.
type stubGeocoder struct {
	place services.Place
	coord services.Coordinate
	fail  bool
}

func (s *stubGeocoder) Reverse(ctx context.Context, coord services.Coordinate) (services.Place, error) {
	if s.fail {
		return services.Place{}, errors.New("geocoder down")
	}
	return s.place, nil
}

func (s *stubGeocoder) Forward(ctx context.Context, query string) (services.Coordinate, error) {
	if s.fail {
		return services.Coordinate{}, errors.New("geocoder down")
	}
	return s.coord, nil
}

type testEnv struct {
	srv      *httptest.Server
	images   *storage.ImageStore
	imageDir string
	bridge   *services.DeviceBridge
	geocoder *stubGeocoder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	imageDir := filepath.Join(dir, "images")
	journalStore := storage.NewJournalStore(filepath.Join(dir, "journal.json"))
	imageStore := storage.NewImageStore(imageDir)
	profileStore, err := storage.NewProfileStore(filepath.Join(dir, "profile.db"))
	if err != nil {
		t.Fatalf("open profile store: %v", err)
	}
	t.Cleanup(func() { profileStore.Close() })

	geocoder := &stubGeocoder{
		place: services.Place{City: "Portland", State: "Oregon", Country: "United States"},
		coord: services.Coordinate{Lat: 45.52, Lng: -122.68},
	}
	bridge := services.NewDeviceBridge()

	h := &handlers.Handlers{
		Entries:        journalStore,
		Images:         imageStore,
		Profile:        profileStore,
		Location:       services.NewLocationService(bridge, geocoder),
		Bridge:         bridge,
		Geocoder:       geocoder,
		SearchDebounce: 30 * time.Millisecond,
	}

	r := chi.NewRouter()
	routes.SetupRoutes(r, h)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, images: imageStore, imageDir: imageDir, bridge: bridge, geocoder: geocoder}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func (e *testEnv) uploadImage(t *testing.T, path string, data []byte, filename string) (int, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	resp, err := http.Post(e.srv.URL+path, mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return resp.StatusCode, out
}
