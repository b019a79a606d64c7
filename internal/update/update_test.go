package update

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"v1.0.0", "1.0", 0},
		{"1.2.0", "1.10.0", -1},
		{"2.0", "1.9.9.9", 1},
		{"1.2.3.4", "1.2.3.5", -1},
		{"1.2.3.0", "1.2.3", 0},
		{"V3", "v2.99", 1},
	}
	for _, tt := range tests {
		got, err := Compare(tt.a, tt.b)
		if err != nil {
			t.Errorf("Compare(%q, %q): %v", tt.a, tt.b, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCompare_Invalid(t *testing.T) {
	for _, v := range []string{"", "dev", "1.2.3.4.5", "1.x", "v-1"} {
		if _, err := Compare(v, "1.0.0"); !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("Compare(%q) error = %v, want ErrInvalidVersion", v, err)
		}
	}
}

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request without User-Agent")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	body := `[
		{"tag_name": "v1.4.0", "draft": true},
		{"tag_name": "v1.3.0-rc1", "prerelease": true},
		{"tag_name": "v1.2.0", "html_url": "https://example.com/v1.2.0"},
		{"tag_name": "v1.1.0"}
	]`
	srv := newServer(t, http.StatusOK, body)

	tests := []struct {
		current string
		want    Status
	}{
		{"1.1.0", StatusNeedsUpdate},
		{"1.2.0", StatusUpToDate},
		{"1.3.0", StatusUpToDate},
	}
	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			res, err := NewChecker(srv.URL, tt.current).Check(context.Background())
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if res.Status != tt.want {
				t.Errorf("Status = %v, want %v", res.Status, tt.want)
			}
			if res.Latest.TagName != "v1.2.0" {
				t.Errorf("Latest = %q, want v1.2.0", res.Latest.TagName)
			}
		})
	}
}

func TestCheck_EmptyList(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[]`)

	res, err := NewChecker(srv.URL, "1.0.0").Check(context.Background())
	if !errors.Is(err, ErrNoReleases) {
		t.Errorf("error = %v, want ErrNoReleases", err)
	}
	if res.Status != StatusFailed {
		t.Errorf("Status = %v, want failed", res.Status)
	}
}

func TestCheck_NotFound(t *testing.T) {
	// retryablehttp не повторяет запрос на 404.
	srv := newServer(t, http.StatusNotFound, `{"message": "Not Found"}`)

	res, err := NewChecker(srv.URL, "1.0.0").Check(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if res.Status != StatusFailed {
		t.Errorf("Status = %v, want failed", res.Status)
	}
}

func TestCheck_DevBuild(t *testing.T) {
	srv := newServer(t, http.StatusOK, `[{"tag_name": "v1.0.0"}]`)

	res, err := NewChecker(srv.URL, "dev").Check(context.Background())
	if !errors.Is(err, ErrInvalidVersion) {
		t.Errorf("error = %v, want ErrInvalidVersion", err)
	}
	if res.Status != StatusFailed {
		t.Errorf("Status = %v, want failed", res.Status)
	}
}

func TestStatusString(t *testing.T) {
	if StatusNeedsUpdate.String() != "needs-update" || StatusFailed.String() != "failed" {
		t.Error("unexpected Status strings")
	}
}

func TestReleasesPage(t *testing.T) {
	tests := map[string]string{
		"https://api.github.com/repos/Icecovery/IMEIndicator/releases":  "https://github.com/Icecovery/IMEIndicator/releases",
		"https://api.github.com/repos/Icecovery/IMEIndicator/releases/": "https://github.com/Icecovery/IMEIndicator/releases",
		"https://example.com/releases.json":                             "https://example.com/releases.json",
	}
	for in, want := range tests {
		if got := ReleasesPage(in); got != want {
			t.Errorf("ReleasesPage(%q) = %q, want %q", in, got, want)
		}
	}
}
