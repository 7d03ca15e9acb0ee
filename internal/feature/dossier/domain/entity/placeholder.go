package entity

// Company is the placeholder company profile.
type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Founded     int    `json:"founded"`
	HQ          string `json:"hq"`
	Employees   int    `json:"employees"`
	Description string `json:"description"`
}

// Metrics is the placeholder metric set. Ratios are in [0,1].
type Metrics struct {
	SignalScore    float64 `json:"signal_score"`
	RevenueGrowth  float64 `json:"revenue_growth"`
	HiringVelocity float64 `json:"hiring_velocity"`
	DevActivity    float64 `json:"dev_activity"`
	Momentum       float64 `json:"momentum"`
	FundingUSD     int64   `json:"funding_usd"`
}

// TimelineEvent is a dated company event.
type TimelineEvent struct {
	Date  string `json:"date"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Forecast is a quantile forecast over monthly horizons.
type Forecast struct {
	Metric        string          `json:"metric"`
	HorizonMonths int             `json:"horizon_months"`
	Model         string          `json:"model"`
	Points        []ForecastPoint `json:"points"`
}

// ForecastPoint holds the p10/p50/p90 band for one month.
type ForecastPoint struct {
	Month int     `json:"month"`
	P10   float64 `json:"p10"`
	P50   float64 `json:"p50"`
	P90   float64 `json:"p90"`
}

// Provenance asserts data lineage. Hash and signature are placeholder strings.
type Provenance struct {
	SnapshotHash   string   `json:"snapshot_hash"`
	RetrievalTrace []string `json:"retrieval_trace"`
	Signer         string   `json:"signer"`
	Signature      string   `json:"signature"`
	CreatedAt      string   `json:"created_at"`
}

// Repo is a public code repository attributed to a company.
type Repo struct {
	Name       string `json:"name"`
	Stars      int    `json:"stars"`
	Forks      int    `json:"forks"`
	Language   string `json:"language"`
	LastCommit string `json:"last_commit"`
}

// TimeSeries is a metric sampled over a window.
type TimeSeries struct {
	Metric string  `json:"metric"`
	Window string  `json:"window"`
	Points []Point `json:"points"`
}

// Point is one timeseries sample.
type Point struct {
	T string  `json:"t"`
	V float64 `json:"v"`
}
