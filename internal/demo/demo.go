// Package demo supplies the static substitute datasets shown when the
// routing engine is unreachable. Everything returns the same shapes the
// live API produces, so pages render through one code path regardless of
// source.
package demo

import (
	"time"

	"github.com/huenthong/smartrouting/internal/routing"
)

// Notice is the banner text pages show when rendering demo data.
const Notice = "Routing engine unreachable - showing demo data."

// AgentRoster returns the fallback agent roster. Loads are chosen to
// cover all three load tiers.
func AgentRoster() routing.AgentRoster {
	return routing.AgentRoster{
		Sales: []routing.AgentStatus{
			{Name: "Sarah Chen", ActiveChats: 8, MaxChats: 10, Performance: 94.5},
			{Name: "Mike Johnson", ActiveChats: 5, MaxChats: 8, Performance: 87.2},
			{Name: "Lisa Wong", ActiveChats: 2, MaxChats: 7, Performance: 91.0},
		},
		Support: []routing.AgentStatus{
			{Name: "John Smith", ActiveChats: 7, MaxChats: 8, Performance: 89.9},
			{Name: "Priya Nair", ActiveChats: 4, MaxChats: 9, Performance: 92.3},
			{Name: "Ahmed Farid", ActiveChats: 6, MaxChats: 10, Performance: 85.6},
		},
	}
}

// ActivityFeed returns the fallback recent-routings feed.
func ActivityFeed() []routing.ActivityEntry {
	return []routing.ActivityEntry{
		{Time: "14:32", Intent: "sales", AgentID: "Sarah Chen", ALPSScore: score(85.2)},
		{Time: "14:30", Intent: "support", AgentID: "John Smith"},
		{Time: "14:28", Intent: "sales", AgentID: "Mike Johnson", ALPSScore: score(72.1)},
		{Time: "14:25", Intent: "support", AgentID: "Priya Nair"},
	}
}

// OverviewMetrics are the headline numbers on the overview page, with
// their day-over-day deltas.
type OverviewMetrics struct {
	MessagesToday    int
	MessagesDelta    int
	AvgResponseMin   float64
	ResponseDeltaMin float64
	ALPSAverage      float64
	ALPSDelta        float64
	SLABreaches      int
	SLADelta         int
}

// Metrics returns the overview headline numbers.
func Metrics() OverviewMetrics {
	return OverviewMetrics{
		MessagesToday:    127,
		MessagesDelta:    12,
		AvgResponseMin:   2.3,
		ResponseDeltaMin: -0.5,
		ALPSAverage:      74.2,
		ALPSDelta:        3.1,
		SLABreaches:      3,
		SLADelta:         -2,
	}
}

// IntentCount is one slice of the intent distribution.
type IntentCount struct {
	Intent string
	Count  int
}

// PriorityCount is one bar of the lead priority distribution.
type PriorityCount struct {
	Level string
	Count int
}

// Analytics is the static analytics dataset.
type Analytics struct {
	IntentCounts   []IntentCount
	PriorityCounts []PriorityCount
	ALPSScores     []float64
}

// AnalyticsData returns the fallback analytics distributions.
func AnalyticsData() Analytics {
	return Analytics{
		IntentCounts: []IntentCount{
			{Intent: "Sales", Count: 78},
			{Intent: "Support", Count: 49},
		},
		PriorityCounts: []PriorityCount{
			{Level: "High", Count: 23},
			{Level: "Medium", Count: 45},
			{Level: "Low", Count: 32},
		},
		ALPSScores: []float64{85.2, 72.1, 91.3, 68.7, 79.4, 83.1, 76.8, 88.9, 65.3, 92.1},
	}
}

// VolumePoint is one day of message volume.
type VolumePoint struct {
	Day   time.Time
	Count int
}

// dailyCounts is the repeating weekly volume pattern.
var dailyCounts = []int{45, 52, 38, 63, 71, 44, 58, 61}

// DailyVolume returns one VolumePoint per day for the days days ending
// at end. Counts cycle through a fixed pattern so the same range always
// produces the same series.
func DailyVolume(end time.Time, days int) []VolumePoint {
	if days <= 0 {
		return nil
	}

	points := make([]VolumePoint, days)
	start := end.AddDate(0, 0, -(days - 1))
	for i := 0; i < days; i++ {
		points[i] = VolumePoint{
			Day:   start.AddDate(0, 0, i),
			Count: dailyCounts[i%len(dailyCounts)],
		}
	}
	return points
}

func score(v float64) *float64 {
	return &v
}
