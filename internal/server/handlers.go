package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/tooltipper/pkg/buildinfo"
	"github.com/matzehuels/tooltipper/pkg/cache"
	"github.com/matzehuels/tooltipper/pkg/errors"
	"github.com/matzehuels/tooltipper/pkg/render"
	"github.com/matzehuels/tooltipper/pkg/session"
	"github.com/matzehuels/tooltipper/pkg/tooltip"
)

// Response headers set by the simulate endpoint.
const (
	HeaderCache    = "X-Cache"
	HeaderWarnings = "X-Binding-Warnings"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func healthzHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

type profileInfo struct {
	Name   string         `json:"name"`
	Config tooltip.Config `json:"config"`
}

func profilesHandler(w http.ResponseWriter, _ *http.Request) {
	var out []profileInfo
	for _, name := range tooltip.Profiles() {
		cfg, _ := tooltip.Profile(name)
		out = append(out, profileInfo{Name: name, Config: cfg})
	}
	writeJSON(w, http.StatusOK, out)
}

// PlaceRequest is the body of POST /api/v1/place.
type PlaceRequest struct {
	Geometry tooltip.Geometry  `json:"geometry"`
	Profile  string            `json:"profile,omitempty"`
	Config   tooltip.Overrides `json:"config"`
}

// PlaceResponse is the result of POST /api/v1/place.
type PlaceResponse struct {
	Placement tooltip.Placement `json:"placement"`
	Config    tooltip.Config    `json:"config"`
}

func (s *Server) placeHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateGeometry(req.Geometry); err != nil {
		writeError(w, err)
		return
	}
	cfg, err := tooltip.Resolve(tooltip.WithProfile(orDefault(req.Profile)), tooltip.WithOverrides(req.Config))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlaceResponse{
		Placement: tooltip.Place(req.Geometry, cfg),
		Config:    cfg,
	})
}

func validateGeometry(g tooltip.Geometry) error {
	if g.ViewportWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "viewport_width must be positive, got %d", g.ViewportWidth)
	}
	checks := []struct {
		field string
		v     int
	}{
		{"target_width", g.TargetWidth},
		{"panel_width", g.PanelWidth},
		{"panel_height", g.PanelHeight},
	}
	for _, check := range checks {
		if check.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be >= 0, got %d", check.field, check.v)
		}
	}
	return nil
}

func orDefault(profile string) string {
	if profile == "" {
		return tooltip.DefaultProfile
	}
	return profile
}

// SimulateRequest is the JSON body of POST /api/v1/simulate.
//
// A fixture can also be posted as a raw TOML or YAML document with a
// matching Content-Type; steps then come from repeated ?step= parameters.
type SimulateRequest struct {
	Fixture json.RawMessage `json:"fixture"`
	Steps   []session.Step  `json:"steps"`
}

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err)
		return
	}
	fixture, steps, err := readSimulation(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	key := cache.Key("simulate", string(format), fixture.source, steps)
	if data, hit, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache get failed", "err", err)
	} else if hit {
		var entry cachedSimulation
		if err := json.Unmarshal(data, &entry); err != nil {
			s.logger.Warn("discarding unreadable cache entry", "err", err)
		} else {
			setWarnings(w, entry.Warnings)
			w.Header().Set(HeaderCache, "hit")
			writeBody(w, format, entry.Body)
			return
		}
	}

	sess, err := session.New(fixture.Fixture, session.WithLogger(s.logger))
	if sess == nil {
		writeError(w, err)
		return
	}
	defer sess.Close()
	warnings := 0
	if err != nil {
		s.logger.Warn("binding problems", "err", err)
		warnings = countJoined(err)
	}
	if err := sess.Run(ctx, steps); err != nil {
		writeError(w, err)
		return
	}

	st := sess.State()
	var data []byte
	if format == render.FormatJSON {
		data, err = render.RenderJSON(st, render.WithJSONSteps(steps))
	} else {
		data, err = render.Render(format, st)
	}
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format))
		return
	}

	if entry, err := json.Marshal(cachedSimulation{Warnings: warnings, Body: data}); err != nil {
		s.logger.Warn("encode cache entry", "err", err)
	} else if err := s.cache.Set(ctx, key, entry, s.ttl); err != nil {
		s.logger.Warn("cache set failed", "err", err)
	}
	setWarnings(w, warnings)
	w.Header().Set(HeaderCache, "miss")
	writeBody(w, format, data)
}

// cachedSimulation is what the simulate endpoint stores per request, so a
// hit replays the binding warning count along with the rendered body.
type cachedSimulation struct {
	Warnings int    `json:"warnings,omitempty"`
	Body     []byte `json:"body"`
}

func setWarnings(w http.ResponseWriter, n int) {
	if n > 0 {
		w.Header().Set(HeaderWarnings, strconv.Itoa(n))
	}
}

type postedFixture struct {
	*session.Fixture
	source []byte
}

func readSimulation(w http.ResponseWriter, r *http.Request) (postedFixture, []session.Step, error) {
	body, err := readBody(w, r)
	if err != nil {
		return postedFixture{}, nil, err
	}
	query, err := session.ParseSteps(r.URL.Query()["step"])
	if err != nil {
		return postedFixture{}, nil, err
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/toml":
		f, err := session.Parse(body, session.FormatTOML)
		return postedFixture{f, body}, query, err
	case "application/yaml", "application/x-yaml", "text/yaml":
		f, err := session.Parse(body, session.FormatYAML)
		return postedFixture{f, body}, query, err
	}

	var req SimulateRequest
	if err := decodeJSONBytes(body, &req); err != nil {
		return postedFixture{}, nil, err
	}
	if len(req.Fixture) == 0 {
		return postedFixture{}, nil, errors.New(errors.ErrCodeInvalidInput, "fixture is required")
	}
	f, err := session.Parse(req.Fixture, session.FormatJSON)
	return postedFixture{f, req.Fixture}, append(req.Steps, query...), err
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeJSONBytes(body, v)
}

// readBody reads the whole request body, failing with ErrCodeTooLarge
// rather than truncating once it passes MaxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return body, nil
}

func decodeJSONBytes(body []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

func writeBody(w http.ResponseWriter, format render.Format, data []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func countJoined(err error) int {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return len(j.Unwrap())
	}
	return 1
}
