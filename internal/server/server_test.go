package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/tooltipper/internal/metrics"
	"github.com/matzehuels/tooltipper/pkg/cache"
	"github.com/matzehuels/tooltipper/pkg/geom"
	"github.com/matzehuels/tooltipper/pkg/observability"
)

const helpFixture = `{
  "viewport": {"width": 320, "height": 480},
  "panel": [{"name": "help", "text": "Rates are updated hourly.", "width": 100, "height": 40}],
  "trigger": [
    {"id": "help-left", "target": "help", "top": 200, "left": 5, "width": 20, "height": 10},
    {"id": "help-right", "target": "help", "top": 200, "left": 300, "width": 20, "height": 10}
  ]
}`

const helpTOML = `
[viewport]
width = 320
height = 480

[[panel]]
name = "help"
width = 100
height = 40

[[trigger]]
id = "help-right"
target = "help"
top = 200
left = 300
width = 20
height = 10
`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	ts := httptest.NewServer(New(opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return data
}

// simulated is the subset of the JSON state the tests inspect.
type simulated struct {
	Open   string `json:"open"`
	Steps  int    `json:"steps"`
	Panels []struct {
		Name        string    `json:"name"`
		Open        bool      `json:"open"`
		Rect        geom.Rect `json:"rect"`
		PointerLeft int       `json:"pointer_left"`
		Clamp       string    `json:"clamp"`
	} `json:"panels"`
	Script []string `json:"script"`
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["status"] != "ok" {
		t.Errorf("body = %v, err %v", body, err)
	}
}

func TestProfiles(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/v1/profiles")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got []profileInfo
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, p := range got {
		names = append(names, p.Name)
	}
	if diff := cmp.Diff([]string{"callout", "classic", "terminal"}, names); diff != "" {
		t.Errorf("profiles mismatch (-want +got):\n%s", diff)
	}
}

func TestPlace(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name    string
		body    string
		top     int
		left    int
		pointer int
		clamp   string
	}{
		{
			name: "right edge",
			body: `{"geometry":{"target_top":200,"target_left":300,"target_width":20,"panel_width":100,"panel_height":40,"viewport_width":320}}`,
			top:  150, left: 210, pointer: 100, clamp: "right",
		},
		{
			name: "left edge",
			body: `{"geometry":{"target_top":200,"target_left":5,"target_width":20,"panel_width":100,"panel_height":40,"viewport_width":320}}`,
			top:  150, left: 10, pointer: 5, clamp: "left",
		},
		{
			name: "callout profile with override",
			body: `{"profile":"callout","config":{"vertical_padding":3},"geometry":{"target_top":200,"target_left":150,"target_width":20,"panel_width":100,"panel_height":40,"viewport_width":320}}`,
			top:  157, left: 110, pointer: 44, clamp: "none",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/place", "application/json", tt.body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
			}
			var got struct {
				Placement struct {
					Top, Left   int
					PointerLeft int `json:"pointer_left"`
					Clamp       string
				}
			}
			if err := json.Unmarshal(readAll(t, resp), &got); err != nil {
				t.Fatal(err)
			}
			p := got.Placement
			if p.Top != tt.top || p.Left != tt.left || p.PointerLeft != tt.pointer || p.Clamp != tt.clamp {
				t.Errorf("placement = %+v, want top %d left %d pointer %d clamp %s",
					p, tt.top, tt.left, tt.pointer, tt.clamp)
			}
		})
	}
}

func TestPlaceErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad json", `{`, "INVALID_INPUT"},
		{"unknown field", `{"geometry":{},"colour":"red"}`, "INVALID_INPUT"},
		{"zero viewport", `{"geometry":{"panel_width":10}}`, "INVALID_INPUT"},
		{"negative panel", `{"geometry":{"viewport_width":100,"panel_width":-1}}`, "INVALID_INPUT"},
		{"unknown profile", `{"profile":"fancy","geometry":{"viewport_width":100}}`, "INVALID_CONFIG"},
		{"negative padding", `{"config":{"page_padding":-2},"geometry":{"viewport_width":100}}`, "INVALID_CONFIG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/v1/place", "application/json", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var e errorResponse
			if err := json.Unmarshal(readAll(t, resp), &e); err != nil {
				t.Fatal(err)
			}
			if string(e.Code) != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Error)
			}
		})
	}
}

func simulateBody(steps ...string) string {
	quoted, _ := json.Marshal(steps)
	return `{"fixture":` + helpFixture + `,"steps":` + string(quoted) + `}`
}

func TestSimulateJSON(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/v1/simulate", "application/json", simulateBody("click:help-left", "click:help-right"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var got simulated
	if err := json.Unmarshal(readAll(t, resp), &got); err != nil {
		t.Fatal(err)
	}
	if got.Open != "help" || got.Steps != 2 {
		t.Fatalf("open %q after %d steps", got.Open, got.Steps)
	}
	p := got.Panels[0]
	if p.Rect != geom.NewRect(150, 210, 100, 40) || p.PointerLeft != 100 || p.Clamp != "right" {
		t.Errorf("panel = %+v", p)
	}
	if diff := cmp.Diff([]string{"click:help-left", "click:help-right"}, got.Script); diff != "" {
		t.Errorf("script mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulateTOMLWithQuerySteps(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts.URL+"/api/v1/simulate?format=svg&step=click:help-right", "application/toml", helpTOML)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := string(readAll(t, resp))
	if !strings.HasPrefix(body, "<svg") || !strings.Contains(body, `data-clamp="right"`) {
		t.Errorf("unexpected svg:\n%s", body)
	}
}

func TestSimulateErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name        string
		url         string
		contentType string
		body        string
		status      int
		code        string
	}{
		{"bad format", "/api/v1/simulate?format=png", "application/json", simulateBody(), 400, "INVALID_FORMAT"},
		{"missing fixture", "/api/v1/simulate", "application/json", `{"steps":[]}`, 400, "INVALID_INPUT"},
		{"bad step", "/api/v1/simulate", "application/json", simulateBody("jump:help"), 400, "INVALID_STEP"},
		{"bad query step", "/api/v1/simulate?step=resize:0", "application/toml", helpTOML, 400, "INVALID_STEP"},
		{"unknown trigger", "/api/v1/simulate", "application/json", simulateBody("click:nope"), 404, "NOT_FOUND"},
		{"bad fixture", "/api/v1/simulate", "application/toml", "[viewport]\nwidth = -1\nheight = 1\n", 400, "INVALID_FIXTURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.url, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var e errorResponse
			if err := json.Unmarshal(readAll(t, resp), &e); err != nil {
				t.Fatal(err)
			}
			if string(e.Code) != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Error)
			}
		})
	}
}

func TestSimulateBindingWarnings(t *testing.T) {
	ts := newTestServer(t)
	fixture := `{"fixture":{"panel":[{"name":"a","width":10,"height":10},{"name":"a","width":10,"height":10},{"width":5,"height":5}]}}`
	resp := post(t, ts.URL+"/api/v1/simulate", "application/json", fixture)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if got := resp.Header.Get(HeaderWarnings); got != "2" {
		t.Errorf("%s = %q, want 2", HeaderWarnings, got)
	}
}

func TestSimulateCache(t *testing.T) {
	c := cache.NewMemoryCache(8)
	ts := newTestServer(t, WithCache(c, 0))

	body := simulateBody("click:help-left")
	first := post(t, ts.URL+"/api/v1/simulate?format=text", "application/json", body)
	firstBody := readAll(t, first)
	second := post(t, ts.URL+"/api/v1/simulate?format=text", "application/json", body)
	secondBody := readAll(t, second)

	if first.Header.Get(HeaderCache) != "miss" || second.Header.Get(HeaderCache) != "hit" {
		t.Errorf("cache headers = %q, %q; want miss, hit",
			first.Header.Get(HeaderCache), second.Header.Get(HeaderCache))
	}
	if !bytes.Equal(firstBody, secondBody) {
		t.Error("cached body differs from the rendered one")
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", c.Len())
	}

	other := post(t, ts.URL+"/api/v1/simulate?format=svg", "application/json", body)
	if other.Header.Get(HeaderCache) != "miss" {
		t.Error("a different format must not hit the text entry")
	}
}

func TestSimulateCacheKeepsWarnings(t *testing.T) {
	ts := newTestServer(t, WithCache(cache.NewMemoryCache(8), 0))
	fixture := `{"fixture":{"panel":[{"name":"a","width":10,"height":10},{"width":5,"height":5}]}}`

	for i, want := range []string{"miss", "hit"} {
		resp := post(t, ts.URL+"/api/v1/simulate", "application/json", fixture)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d: %s", i, resp.StatusCode, readAll(t, resp))
		}
		if got := resp.Header.Get(HeaderCache); got != want {
			t.Errorf("request %d: %s = %q, want %q", i, HeaderCache, got, want)
		}
		if got := resp.Header.Get(HeaderWarnings); got != "1" {
			t.Errorf("request %d: %s = %q, want 1", i, HeaderWarnings, got)
		}
	}
}

func TestSimulateCacheNoWarningsHeader(t *testing.T) {
	ts := newTestServer(t, WithCache(cache.NewMemoryCache(8), 0))
	body := simulateBody("click:help-left")
	for i := 0; i < 2; i++ {
		resp := post(t, ts.URL+"/api/v1/simulate", "application/json", body)
		if got := resp.Header.Get(HeaderWarnings); got != "" {
			t.Errorf("request %d: %s = %q, want unset", i, HeaderWarnings, got)
		}
	}
}

func TestOversizedBody(t *testing.T) {
	ts := newTestServer(t)
	// The padding comment pushes the trailing trigger past the limit, so a
	// truncating reader would still parse a valid fixture.
	oversized := helpTOML + "#" + strings.Repeat("x", MaxBodyBytes) + `
[[trigger]]
id = "help-left"
target = "help"
top = 200
left = 5
width = 20
height = 10
`
	tests := []struct {
		name        string
		url         string
		contentType string
		body        string
	}{
		{"simulate toml", "/api/v1/simulate", "application/toml", oversized},
		{"simulate json", "/api/v1/simulate", "application/json", `{"fixture":{},"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`},
		{"place", "/api/v1/place", "application/json", `{"profile":"` + strings.Repeat("x", MaxBodyBytes) + `"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.url, tt.contentType, tt.body)
			if resp.StatusCode != http.StatusRequestEntityTooLarge {
				t.Errorf("status = %d, want 413", resp.StatusCode)
			}
			var e errorResponse
			if err := json.Unmarshal(readAll(t, resp), &e); err != nil {
				t.Fatal(err)
			}
			if e.Code != "TOO_LARGE" {
				t.Errorf("code = %q, want TOO_LARGE (%s)", e.Code, e.Error)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	defer observability.Reset()
	reg := prometheus.NewRegistry()
	metrics.New(metrics.WithRegistry(reg)).Install()

	ts := newTestServer(t, WithGatherer(reg))
	post(t, ts.URL+"/api/v1/simulate", "application/json", simulateBody("click:help-right"))

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body := string(readAll(t, resp))
	for _, want := range []string{
		`tooltipper_http_requests_total{method="POST",route="/api/v1/simulate",status="200"} 1`,
		`tooltipper_tooltip_opens_total{tooltip="help"} 1`,
		`tooltipper_tooltip_placements_total{clamp="right",tooltip="help"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestNoMetricsWithoutGatherer(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	if got := statusFor(""); got != http.StatusInternalServerError {
		t.Errorf("statusFor(\"\") = %d", got)
	}
	if got := statusFor("UNSUPPORTED"); got != http.StatusUnsupportedMediaType {
		t.Errorf("statusFor(UNSUPPORTED) = %d", got)
	}
	if got := statusFor("TOO_LARGE"); got != http.StatusRequestEntityTooLarge {
		t.Errorf("statusFor(TOO_LARGE) = %d", got)
	}
}
