package usecase

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"aurora_backend/internal/feature/dossier/domain/entity"
)

var (
	fallbackSectors   = []string{"AI Infrastructure", "Vector Databases", "Developer Tools", "Data Platforms", "Security", "Robotics"}
	fallbackHQs       = []string{"San Francisco, CA", "New York, NY", "London, UK", "Berlin, DE", "Toronto, CA", "Tel Aviv, IL"}
	fallbackEvents    = []string{"funding", "product", "hire", "partnership", "press"}
	fallbackLanguages = []string{"Go", "Python", "Rust", "TypeScript", "C++"}
)

// rng は企業IDと種類から決まるシードで乱数生成器を返します。
// 同じIDに対する代替データはリクエスト間で安定します。
func rng(id, kind string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(kind))
	sum := h.Sum64()
	return rand.New(rand.NewPCG(sum, sum>>17|sum<<47))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// displayName は "pinecone-systems" のようなIDを "Pinecone Systems" に変換します。
func displayName(id string) string {
	parts := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r) })
	for i, p := range parts {
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = string(unicode.ToUpper(r)) + p[size:]
	}
	if len(parts) == 0 {
		return id
	}
	return strings.Join(parts, " ")
}

func fallbackCompany(id string) entity.Company {
	r := rng(id, "company")
	name := displayName(id)
	sector := fallbackSectors[r.IntN(len(fallbackSectors))]
	return entity.Company{
		ID:          id,
		Name:        name,
		Sector:      sector,
		Founded:     2010 + r.IntN(13),
		HQ:          fallbackHQs[r.IntN(len(fallbackHQs))],
		Employees:   20 + r.IntN(1500),
		Description: fmt.Sprintf("%s builds products in %s.", name, strings.ToLower(sector)),
	}
}

func fallbackMetrics(id string) entity.Metrics {
	r := rng(id, "metrics")
	return entity.Metrics{
		SignalScore:    round(0.3+0.6*r.Float64(), 3),
		RevenueGrowth:  round(r.Float64(), 3),
		HiringVelocity: round(r.Float64(), 3),
		DevActivity:    round(r.Float64(), 3),
		Momentum:       round(r.Float64(), 3),
		FundingUSD:     (1 + r.Int64N(400)) * 1_000_000,
	}
}

func fallbackTimeline(id string, now time.Time) []entity.TimelineEvent {
	r := rng(id, "timeline")
	name := displayName(id)
	n := 4 + r.IntN(4)
	events := make([]entity.TimelineEvent, 0, n)
	day := now.UTC().Truncate(24 * time.Hour)
	for i := 0; i < n; i++ {
		day = day.AddDate(0, 0, -(7 + r.IntN(60)))
		kind := fallbackEvents[r.IntN(len(fallbackEvents))]
		events = append(events, entity.TimelineEvent{
			Date:  day.Format("2006-01-02"),
			Type:  kind,
			Title: fmt.Sprintf("%s %s update", name, kind),
		})
	}
	return events
}

func fallbackForecast(id string, horizon int) entity.Forecast {
	r := rng(id, "forecast")
	base := 0.3 + 0.4*r.Float64()
	drift := (r.Float64() - 0.4) * 0.05
	points := make([]entity.ForecastPoint, 0, horizon)
	for m := 1; m <= horizon; m++ {
		p50 := clamp01(base + drift*float64(m))
		spread := 0.02 * math.Sqrt(float64(m))
		points = append(points, entity.ForecastPoint{
			Month: m,
			P10:   round(clamp01(p50-spread), 4),
			P50:   round(p50, 4),
			P90:   round(clamp01(p50+spread), 4),
		})
	}
	return entity.Forecast{
		Metric:        "signal_score",
		HorizonMonths: horizon,
		Model:         "fallback-linear",
		Points:        points,
	}
}

func fallbackProvenance(id string, now time.Time) entity.Provenance {
	r := rng(id, "provenance")
	return entity.Provenance{
		SnapshotHash: fmt.Sprintf("sha256:%016x%016x", r.Uint64(), r.Uint64()),
		RetrievalTrace: []string{
			"/companies/" + id,
			"/companies/" + id + "/metrics",
			"/companies/" + id + "/timeline",
		},
		Signer:    "aurora-lite/fallback",
		Signature: "placeholder",
		CreatedAt: now.UTC().Format(time.RFC3339),
	}
}

func fallbackRepos(id string, now time.Time) []entity.Repo {
	r := rng(id, "repos")
	n := 2 + r.IntN(5)
	repos := make([]entity.Repo, 0, n)
	for i := 0; i < n; i++ {
		repos = append(repos, entity.Repo{
			Name:       fmt.Sprintf("%s-%d", strings.ToLower(strings.ReplaceAll(displayName(id), " ", "-")), i+1),
			Stars:      r.IntN(25000),
			Forks:      r.IntN(3000),
			Language:   fallbackLanguages[r.IntN(len(fallbackLanguages))],
			LastCommit: now.UTC().AddDate(0, 0, -r.IntN(90)).Format("2006-01-02"),
		})
	}
	return repos
}

func fallbackTimeSeries(id, metric, window string, now time.Time) entity.TimeSeries {
	r := rng(id, "timeseries:"+metric)
	n, step := parseWindow(window)
	points := make([]entity.Point, 0, n)
	v := 0.3 + 0.4*r.Float64()
	start := now.UTC().Truncate(24 * time.Hour).Add(-time.Duration(n-1) * step)
	for i := 0; i < n; i++ {
		v = clamp01(v + (r.Float64()-0.5)*0.06)
		points = append(points, entity.Point{
			T: start.Add(time.Duration(i) * step).Format("2006-01-02"),
			V: round(v, 4),
		})
	}
	return entity.TimeSeries{Metric: metric, Window: window, Points: points}
}

// parseWindow は "90d" / "12w" / "6m" を点数と間隔に変換します。
// 解釈できない場合はDefaultWindowの値を使用します。
func parseWindow(window string) (int, time.Duration) {
	const day = 24 * time.Hour
	if len(window) < 2 {
		return parseWindow(DefaultWindow)
	}
	n, err := strconv.Atoi(window[:len(window)-1])
	if err != nil || n <= 0 {
		return parseWindow(DefaultWindow)
	}
	if n > MaxWindowPoints {
		n = MaxWindowPoints
	}
	switch window[len(window)-1] {
	case 'd':
		return n, day
	case 'w':
		return n, 7 * day
	case 'm':
		return n, 30 * day
	default:
		return parseWindow(DefaultWindow)
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
