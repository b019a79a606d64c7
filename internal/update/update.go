// Package update проверяет список релизов на наличие новой версии.
package update

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/singleflight"
)

// Status - итог проверки.
type Status int

const (
	StatusFailed Status = iota
	StatusUpToDate
	StatusNeedsUpdate
)

func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up-to-date"
	case StatusNeedsUpdate:
		return "needs-update"
	default:
		return "failed"
	}
}

// ErrNoReleases возвращается, если опубликованных релизов нет.
var ErrNoReleases = errors.New("no published releases")

// ErrInvalidVersion возвращается для версий, которые не состоят из чисел через точку.
var ErrInvalidVersion = errors.New("invalid version")

// Release - поля релиза GitHub, которые нужны для проверки.
type Release struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	HTMLURL    string `json:"html_url"`
	Draft      bool   `json:"draft"`
	Prerelease bool   `json:"prerelease"`
}

// Result описывает завершённую проверку.
type Result struct {
	Status  Status
	Current string
	Latest  Release
}

// Checker опрашивает список релизов.
// Одновременные проверки делят один запрос.
type Checker struct {
	client  *http.Client
	url     string
	current string
	group   singleflight.Group
}

// retryLogger пишет сообщения retryablehttp в zerolog.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Info(msg string, keysAndValues ...interface{}) {}

func (retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	log.Warn().Fields(keysAndValues).Msg(msg)
}

// NewChecker создаёт проверку для запущенной версии current.
func NewChecker(url, current string) *Checker {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 3 * time.Second
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = retryLogger{}

	return &Checker{
		client:  rc.StandardClient(),
		url:     url,
		current: current,
	}
}

// Check загружает последний релиз и сравнивает его с запущенной версией.
// При ошибке результат имеет статус StatusFailed.
func (c *Checker) Check(ctx context.Context) (Result, error) {
	v, err, _ := c.group.Do("check", func() (interface{}, error) {
		res, err := c.check(ctx)
		return res, err
	})
	return v.(Result), err
}

func (c *Checker) check(ctx context.Context) (Result, error) {
	res := Result{Status: StatusFailed, Current: c.current}

	latest, err := c.Latest(ctx)
	if err != nil {
		return res, err
	}
	res.Latest = latest

	order, err := Compare(c.current, latest.TagName)
	if err != nil {
		return res, err
	}
	if order < 0 {
		res.Status = StatusNeedsUpdate
	} else {
		res.Status = StatusUpToDate
	}
	return res, nil
}

// Latest возвращает последний опубликованный релиз, пропуская черновики и пре-релизы.
func (c *Checker) Latest(ctx context.Context) (Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Release{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "ime-indicator/"+c.current)

	resp, err := c.client.Do(req)
	if err != nil {
		return Release{}, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Release{}, fmt.Errorf("fetch releases: unexpected status %s", resp.Status)
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return Release{}, fmt.Errorf("decode releases: %w", err)
	}

	// API отдаёт релизы от новых к старым.
	for _, r := range releases {
		if !r.Draft && !r.Prerelease {
			return r, nil
		}
	}
	return Release{}, ErrNoReleases
}

// Compare сравнивает версии вида "v1.2.3" и "1.2.3.4".
// Недостающие компоненты считаются нулями, четвёртый сравнивается последним.
func Compare(a, b string) (int, error) {
	va, ra, err := canonical(a)
	if err != nil {
		return 0, err
	}
	vb, rb, err := canonical(b)
	if err != nil {
		return 0, err
	}
	if c := semver.Compare(va, vb); c != 0 {
		return c, nil
	}
	return cmp.Compare(ra, rb), nil
}

func canonical(v string) (string, int, error) {
	s := strings.TrimSpace(v)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")

	parts := strings.Split(s, ".")
	if s == "" || len(parts) > 4 {
		return "", 0, fmt.Errorf("%q: %w", v, ErrInvalidVersion)
	}

	var nums [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", 0, fmt.Errorf("%q: %w", v, ErrInvalidVersion)
		}
		nums[i] = n
	}

	sv := fmt.Sprintf("v%d.%d.%d", nums[0], nums[1], nums[2])
	if !semver.IsValid(sv) {
		return "", 0, fmt.Errorf("%q: %w", v, ErrInvalidVersion)
	}
	return sv, nums[3], nil
}

// ReleasesPage превращает адрес API ("https://api.github.com/repos/o/r/releases")
// в страницу релизов на github.com. Прочие адреса возвращаются как есть.
func ReleasesPage(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host != "api.github.com" {
		return apiURL
	}
	path, ok := strings.CutPrefix(u.Path, "/repos/")
	if !ok {
		return apiURL
	}
	return "https://github.com/" + strings.TrimSuffix(path, "/")
}
