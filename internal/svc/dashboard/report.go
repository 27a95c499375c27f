package dashboard

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/hkato/wanidash/internal/domain"
)

// srsStageNames maps SRS stage numbers to display names, in stage order.
//
//nolint:gochecknoglobals
var srsStageNames = []string{
	"Lesson",
	"Apprentice 1",
	"Apprentice 2",
	"Apprentice 3",
	"Apprentice 4",
	"Guru 1",
	"Guru 2",
	"Master",
	"Enlightened",
	"Burned",
}

// SRSBucket is one stage of the spaced-repetition distribution.
type SRSBucket struct {
	Stage string
	Count int
}

// ScheduleEntry is the number of reviews unlocking within one hour.
type ScheduleEntry struct {
	Hour  time.Time
	Count int
}

// StudyItem is one row of the lessons/kanji/vocabulary listing.
type StudyItem struct {
	Characters string
	Meaning    string
}

// Report is the aggregated dashboard content for one user.
type Report struct {
	KanjiLearned     int
	VocabLearned     int
	LessonsAvailable int

	Schedule []ScheduleEntry
	SRS      []SRSBucket

	Lessons    []StudyItem
	Kanji      []StudyItem
	Vocabulary []StudyItem
}

// BuildSRSDistribution counts assignments per SRS stage. Every stage appears
// in the result, in stage order, even with a zero count. Assignments with an
// out-of-range stage are folded into the lowest stage.
func BuildSRSDistribution(assignments []domain.Assignment) []SRSBucket {
	counts := make([]int, len(srsStageNames))

	for _, a := range assignments {
		stage := a.Data.SRSStage
		if stage < 0 || stage >= len(srsStageNames) {
			stage = 0
		}

		counts[stage]++
	}

	buckets := make([]SRSBucket, 0, len(srsStageNames))
	for stage, name := range srsStageNames {
		buckets = append(buckets, SRSBucket{Stage: name, Count: counts[stage]})
	}

	return buckets
}

// BuildReviewSchedule buckets the upcoming reviews of the next 24 hours by
// hour, sorted ascending. Batches outside the window are dropped.
func BuildReviewSchedule(summary domain.Summary, now time.Time) []ScheduleEntry {
	var (
		horizon = now.Add(24 * time.Hour)
		byHour  = make(map[time.Time]int)
	)

	for _, batch := range summary.Data.Reviews.Upcoming {
		availableAt := batch.AvailableAt

		if availableAt.Before(now) || availableAt.After(horizon) {
			continue
		}

		hour := availableAt.Truncate(time.Hour)
		byHour[hour] += len(batch.SubjectIDs)
	}

	schedule := make([]ScheduleEntry, 0, len(byHour))
	for hour, count := range byHour {
		schedule = append(schedule, ScheduleEntry{Hour: hour, Count: count})
	}

	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Hour.Before(schedule[j].Hour)
	})

	return schedule
}

// Render writes the report as a plain-text summary.
func (r Report) Render(w io.Writer) error {
	fmt.Fprintln(w, "WaniKani dashboard")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Kanji learned:      %d\n", r.KanjiLearned)
	fmt.Fprintf(w, "Vocabulary learned: %d\n", r.VocabLearned)
	fmt.Fprintf(w, "Lessons available:  %d\n", r.LessonsAvailable)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reviews in the next 24h:")

	if len(r.Schedule) == 0 {
		fmt.Fprintln(w, "  none scheduled")
	}

	for _, entry := range r.Schedule {
		fmt.Fprintf(w, "  %s  %d\n", entry.Hour.Format("2006-01-02 15:04"), entry.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "SRS distribution:")

	for _, bucket := range r.SRS {
		fmt.Fprintf(w, "  %-12s %d\n", bucket.Stage, bucket.Count)
	}

	for _, section := range []struct {
		title string
		items []StudyItem
	}{
		{title: "Lessons", items: r.Lessons},
		{title: "Kanji", items: r.Kanji},
		{title: "Vocabulary", items: r.Vocabulary},
	} {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", section.title)

		if len(section.items) == 0 {
			fmt.Fprintln(w, "  none")

			continue
		}

		tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

		for _, item := range section.items {
			fmt.Fprintf(tw, "  %s\t%s\n", item.Characters, item.Meaning)
		}

		if err := tw.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
	}

	return nil
}
