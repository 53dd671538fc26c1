package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// StatsReport is the aggregate computed over the full draft set.
type StatsReport struct {
	TotalSent      int           `json:"total_sent"`
	TotalDrafts    int           `json:"total_drafts"`
	TotalFailed    int           `json:"total_failed"`
	TotalEmails    int           `json:"total_emails"`
	SuccessRate    float64       `json:"success_rate"`
	RecentActivity int           `json:"recent_activity"`
	PopularTones   ToneCounts    `json:"popular_tones"`
	MonthlyStats   []MonthlyStat `json:"monthly_stats"`
}

// MonthlyStat is one calendar-month bucket of the trailing histogram.
type MonthlyStat struct {
	Month  string `json:"month"`
	Sent   int    `json:"sent"`
	Drafts int    `json:"drafts"`
}

// ToneCount is one tone with its occurrence count.
type ToneCount struct {
	Tone  string
	Count int
}

// ToneCounts serializes as a JSON object whose keys keep slice order, so
// clients see tones sorted by descending count.
type ToneCounts []ToneCount

func (t ToneCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, tc := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(tc.Tone)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(tc.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
