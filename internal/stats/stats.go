// Package stats computes the aggregate report over the full draft set. Compute
// is a pure function of its inputs so the handler can feed it time.Now while
// tests pin the evaluation instant.
package stats

import (
	"math"
	"sort"
	"time"

	"instamailer/internal/model"
)

const (
	recentWindow  = 7 * 24 * time.Hour
	monthlyBucket = 6
)

func Compute(drafts []*model.Draft, now time.Time) *model.StatsReport {
	now = now.UTC()

	var totalSent, totalDrafts, totalFailed int
	for _, d := range drafts {
		switch d.Status {
		case model.StatusSent:
			totalSent++
		case model.StatusDraft:
			totalDrafts++
		case model.StatusFailed:
			totalFailed++
		}
	}
	totalEmails := len(drafts)

	// Defined as 0 for an empty set rather than a division error.
	successRate := 0.0
	if totalEmails > 0 {
		rate := float64(totalSent) / float64(totalEmails) * 100
		successRate = math.Round(rate*10) / 10
	}

	weekAgo := now.Add(-recentWindow)
	recentActivity := 0
	for _, d := range drafts {
		if !normalize(d.CreatedAt).Before(weekAgo) {
			recentActivity++
		}
	}

	return &model.StatsReport{
		TotalSent:      totalSent,
		TotalDrafts:    totalDrafts,
		TotalFailed:    totalFailed,
		TotalEmails:    totalEmails,
		SuccessRate:    successRate,
		RecentActivity: recentActivity,
		PopularTones:   popularTones(drafts),
		MonthlyStats:   monthlyStats(drafts, now),
	}
}

// popularTones counts tone occurrences, ordered by descending count with ties
// kept in first-encountered order.
func popularTones(drafts []*model.Draft) model.ToneCounts {
	counts := make(map[string]int)
	var order []string
	for _, d := range drafts {
		if _, seen := counts[d.Tone]; !seen {
			order = append(order, d.Tone)
		}
		counts[d.Tone]++
	}

	tones := make(model.ToneCounts, 0, len(order))
	for _, tone := range order {
		tones = append(tones, model.ToneCount{Tone: tone, Count: counts[tone]})
	}
	sort.SliceStable(tones, func(i, j int) bool {
		return tones[i].Count > tones[j].Count
	})
	return tones
}

// monthlyStats builds the trailing six-month histogram, oldest month first.
// Months are stepped back by fixed 30-day offsets from the first of the
// current month and re-anchored to day 1, which near month-length boundaries
// can skip or repeat a calendar month. That quirk is intentional behavior;
// switching to exact calendar arithmetic would change reported buckets.
func monthlyStats(drafts []*model.Draft, now time.Time) []model.MonthlyStat {
	monthly := make([]model.MonthlyStat, 0, monthlyBucket)
	for i := 0; i < monthlyBucket; i++ {
		monthStart := firstOfMonth(now).AddDate(0, 0, -30*i)
		monthEnd := firstOfMonth(monthStart).AddDate(0, 0, 32)
		monthEnd = firstOfMonth(monthEnd).AddDate(0, 0, -1)

		var sent, draftCount int
		for _, d := range drafts {
			created := normalize(d.CreatedAt)
			if created.Before(monthStart) || created.After(monthEnd) {
				continue
			}
			switch d.Status {
			case model.StatusSent:
				sent++
			case model.StatusDraft:
				draftCount++
			}
		}

		monthly = append(monthly, model.MonthlyStat{
			Month:  monthStart.Format("Jan"),
			Sent:   sent,
			Drafts: draftCount,
		})
	}

	// Built newest-first; the report is oldest-first.
	for i, j := 0, len(monthly)-1; i < j; i, j = i+1, j-1 {
		monthly[i], monthly[j] = monthly[j], monthly[i]
	}
	return monthly
}

// firstOfMonth keeps the clock time and moves the date to day 1.
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// normalize treats stored timestamps as UTC for comparison.
func normalize(t time.Time) time.Time {
	return t.UTC()
}
