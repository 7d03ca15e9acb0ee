package usecase

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeComposite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		weights map[string]float64
		metrics map[string]float64
		want    float64
	}{
		{"equal weights, full metrics", map[string]float64{"a": .5, "b": .5}, map[string]float64{"a": 1, "b": 1}, 1},
		{"all zero metrics", map[string]float64{"a": .5, "b": .5}, map[string]float64{"a": 0, "b": 0}, 0},
		{"weights are normalised", map[string]float64{"a": 3, "b": 1}, map[string]float64{"a": 1, "b": 0}, 0.75},
		{"missing metric counts as zero", map[string]float64{"a": 1, "b": 1}, map[string]float64{"a": 1}, 0.5},
		{"zero total weight", map[string]float64{"a": 0}, map[string]float64{"a": 1}, 0},
		{"negative total weight", map[string]float64{"a": -1}, map[string]float64{"a": 1}, 0},
		{"no weights", nil, map[string]float64{"a": 1}, 0},
		{"clamped above one", map[string]float64{"a": 1}, map[string]float64{"a": 7}, 1},
		{"clamped below zero", map[string]float64{"a": 1}, map[string]float64{"a": -2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeComposite(tt.weights, tt.metrics)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestComputeTorque(t *testing.T) {
	t.Parallel()

	tests := []struct {
		before, after, want float64
	}{
		{0, 1, 1},
		{1, 0, -1},
		{0.2, 0.25, 0.05},
		{-5, 5, 1},
		{5, -5, -1},
		{0.5, 0.5, 0},
	}
	for _, tt := range tests {
		got := ComputeTorque(tt.before, tt.after)
		assert.InDelta(t, tt.want, got, 1e-9, "torque(%v,%v)", tt.before, tt.after)
		assert.True(t, got >= -1 && got <= 1)
	}
	assert.Equal(t, -1.0, ComputeTorque(math.NaN(), 0))
}

func TestBuildCompareSVG(t *testing.T) {
	t.Parallel()

	svg := BuildCompareSVG("Vector DBs <Q1> & more", map[string]float64{"traction": 2, "moat": 1, "team": 1}, 0.62)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, "Weights")
	assert.Contains(t, svg, "Vector DBs &lt;Q1&gt; &amp; more")
	assert.NotContains(t, svg, "<Q1>")
	assert.Contains(t, svg, "Score 0.62")
	assert.Contains(t, svg, "50%")

	// bars are ordered by key
	moat, team, traction := strings.Index(svg, ">moat<"), strings.Index(svg, ">team<"), strings.Index(svg, ">traction<")
	assert.True(t, moat < team && team < traction, "bars must be sorted by key")

	assert.Equal(t, svg, BuildCompareSVG("Vector DBs <Q1> & more", map[string]float64{"team": 1, "moat": 1, "traction": 2}, 0.62))
}

func TestBuildCompareSVG_Empty(t *testing.T) {
	t.Parallel()

	svg := BuildCompareSVG("", nil, 0)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "Weights")
}
