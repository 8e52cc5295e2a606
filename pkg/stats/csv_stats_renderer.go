package stats

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderStats(summary UsageSummary) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

func (t *CsvStatsRendererImpl) RenderStats(summary UsageSummary) (string, error) {
	data := make([][]string, 0, len(summary.Categories)+2)
	data = append(data, []string{"Category", "Group", "Allocated", "Used", "Remaining"})
	for _, c := range summary.Categories {
		data = append(data, []string{
			c.CategoryName,
			c.GroupName,
			durationToString(c.TimeAllocated),
			durationToString(c.TimeUsed),
			durationToString(c.Remaining),
		})
	}
	data = append(data, []string{
		"SUM",
		"",
		durationToString(summary.TotalAllocated),
		durationToString(summary.TotalUsed),
		durationToString(summary.TotalRemaining),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

// durationToString formats d as hh:mm:ss. Hours are not wrapped at a day
// and a negative duration gets a leading minus.
func durationToString(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	seconds := int64(d / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, seconds/3600, seconds/60%60, seconds%60)
}
