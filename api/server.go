// Package api serves the rating pipeline over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"value-rating/model"
	"value-rating/output"
	"value-rating/parser"
	"value-rating/rating"
)

const maxBodyBytes = 8 << 20

// Defaults apply when a request leaves a knob unset.
type Defaults struct {
	Preset    string
	Overrides map[string]float64
	Options   rating.Options
}

// PlayerRating is the JSON view of one rating result.
type PlayerRating struct {
	Rank          int                `json:"rank"`
	Name          string             `json:"name"`
	Role          string             `json:"role"`
	Agent         string             `json:"agent,omitempty"`
	Rating        float64            `json:"rating"`
	RawScore      float64            `json:"raw_score"`
	Metrics       map[string]float64 `json:"metrics"`
	Contributions map[string]float64 `json:"contributions"`
}

type ratingsResponse struct {
	Preset       string         `json:"preset"`
	ByGroup      bool           `json:"by_group"`
	TargetSpread float64        `json:"target_spread"`
	Players      []PlayerRating `json:"players"`
}

// NewRouter wires the HTTP routes.
func NewRouter(def Defaults, log logrus.FieldLogger) http.Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if def.Preset == "" {
		def.Preset = rating.PresetBalanced
	}
	if def.Options.TargetSpread <= 0 {
		def.Options.TargetSpread = rating.DefaultTargetSpread
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/presets", ListPresetsHandler())
	r.Get("/presets/{name}", GetPresetHandler())
	r.Post("/ratings", RatingsHandler(def, log))
	return r
}

func ListPresetsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make(map[string]rating.Weights)
		for _, name := range rating.PresetNames() {
			out[name], _ = rating.Preset(name)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func GetPresetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		weights, err := rating.Preset(chi.URLParam(r, "name"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, weights)
	}
}

// RatingsHandler rates a CSV body. Query parameters: preset, by_group,
// target_spread, format=json|csv, and w.<metric>=<weight> overrides.
func RatingsHandler(def Defaults, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		preset := strings.TrimSpace(q.Get("preset"))
		if preset == "" {
			preset = def.Preset
		}
		weights, err := rating.Preset(preset)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if preset == def.Preset {
			weights = weights.With(def.Overrides)
		}
		overrides, err := parseOverrides(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		weights = weights.With(overrides)

		opts := def.Options
		if v := q.Get("by_group"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "invalid by_group", http.StatusBadRequest)
				return
			}
			opts.ByGroup = b
		}
		if v := q.Get("target_spread"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil || f <= 0 {
				http.Error(w, "invalid target_spread", http.StatusBadRequest)
				return
			}
			opts.TargetSpread = f
		}

		players, err := parser.ParseCSV(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		results := rating.Compute(players, weights, opts)
		log.WithFields(logrus.Fields{
			"players":  len(results),
			"preset":   preset,
			"by_group": opts.ByGroup,
		}).Debug("rated players")

		if q.Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			if err := output.WriteCSV(w, results); err != nil {
				log.WithError(err).Warn("write csv response")
			}
			return
		}

		writeJSON(w, http.StatusOK, ratingsResponse{
			Preset:       preset,
			ByGroup:      opts.ByGroup,
			TargetSpread: opts.TargetSpread,
			Players:      toPlayerRatings(results),
		})
	}
}

var errBadWeight = errors.New("invalid weight override")

func parseOverrides(q map[string][]string) (map[string]float64, error) {
	out := make(map[string]float64)
	for key, vals := range q {
		metric, ok := strings.CutPrefix(key, "w.")
		if !ok || len(vals) == 0 {
			continue
		}
		f, err := strconv.ParseFloat(vals[0], 64)
		if err != nil {
			return nil, errBadWeight
		}
		out[metric] = f
	}
	return out, nil
}

func toPlayerRatings(results []model.RatingResult) []PlayerRating {
	out := make([]PlayerRating, len(results))
	for i, r := range results {
		metrics := make(map[string]float64, len(rating.Metrics))
		for _, m := range rating.Metrics {
			metrics[m] = rating.Value(r.Derived, m)
		}
		out[i] = PlayerRating{
			Rank:          i + 1,
			Name:          r.Stats.Name,
			Role:          r.Stats.Role,
			Agent:         r.Stats.Agent,
			Rating:        r.Rating,
			RawScore:      r.RawScore,
			Metrics:       metrics,
			Contributions: r.Contributions,
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("http request")
		})
	}
}
