package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/hkato/wanidash/internal/domain"
	"github.com/hkato/wanidash/internal/infra/logging"
)

// Service assembles the dashboard report from the upstream API and the
// translation service.
type Service struct {
	Client     *Client
	Translator Translator
	Log        logging.Logger
}

// NewService creates a new dashboard Service.
func NewService(client *Client, translator Translator) *Service {
	return &Service{
		Client:     client,
		Translator: translator,
		Log:        logging.GetLogger("svc.dashboard.dashboard_service"),
	}
}

// BuildReport fetches assignments, subjects and the review summary and
// aggregates them into a Report. Upstream failures are returned as errors
// for the caller to surface; they never panic.
func (s *Service) BuildReport(ctx context.Context) (_ Report, err error) {
	log := s.Log

	defer func() {
		if err != nil {
			log.ErrorContext(ctx, "build report failed", "error", err)
		} else {
			log.DebugContext(ctx, "report built")
		}
	}()

	kanji, err := s.Client.Assignments(ctx, "kanji")
	if err != nil {
		return Report{}, fmt.Errorf("fetch kanji assignments: %w", err)
	}

	vocab, err := s.Client.Assignments(ctx, "vocabulary")
	if err != nil {
		return Report{}, fmt.Errorf("fetch vocabulary assignments: %w", err)
	}

	lessons, err := s.Client.AvailableLessons(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("fetch available lessons: %w", err)
	}

	subjects, err := s.Client.Subjects(ctx, subjectIDs(kanji, vocab, lessons))
	if err != nil {
		return Report{}, fmt.Errorf("fetch subjects: %w", err)
	}

	summary, err := s.Client.Summary(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("fetch summary: %w", err)
	}

	var all []domain.Assignment
	all = append(all, kanji...)
	all = append(all, vocab...)

	return Report{
		KanjiLearned:     len(kanji),
		VocabLearned:     len(vocab),
		LessonsAvailable: len(lessons),
		Schedule:         BuildReviewSchedule(summary, time.Now().UTC()),
		SRS:              BuildSRSDistribution(all),
		Lessons:          s.studyItems(ctx, lessons, subjects),
		Kanji:            s.studyItems(ctx, kanji, subjects),
		Vocabulary:       s.studyItems(ctx, vocab, subjects),
	}, nil
}

// studyItems maps assignments to display rows, translating the primary
// meaning. A failed translation falls back to the untranslated text.
func (s *Service) studyItems(
	ctx context.Context,
	assignments []domain.Assignment,
	subjects map[int]domain.Subject,
) []StudyItem {
	items := make([]StudyItem, 0, len(assignments))

	for _, assignment := range assignments {
		subject, ok := subjects[assignment.Data.SubjectID]
		if !ok {
			continue
		}

		meaning, ok := subject.PrimaryMeaning()
		if !ok {
			meaning = "?"
		} else {
			translated, err := s.Translator.Translate(ctx, meaning)
			if err != nil {
				s.Log.WarnContext(ctx, "translate failed, using original text",
					"meaning", meaning, "error", err)
			} else {
				meaning = translated
			}
		}

		characters := subject.Data.Characters
		if characters == "" {
			characters = "?"
		}

		items = append(items, StudyItem{
			Characters: characters,
			Meaning:    meaning,
		})
	}

	return items
}

func subjectIDs(assignmentLists ...[]domain.Assignment) []int {
	var ids []int

	seen := make(map[int]bool)

	for _, assignments := range assignmentLists {
		for _, assignment := range assignments {
			id := assignment.Data.SubjectID
			if seen[id] {
				continue
			}

			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids
}
