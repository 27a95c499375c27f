package mockapi

import (
	"math/rand/v2"
	"time"

	"github.com/hkato/wanidash/internal/domain"
)

// ReviewService serves canned study data shaped like the real WaniKani API.
// There is no scheduling logic behind it; the payloads exist so the dashboard
// can be developed offline.
type ReviewService struct {
	subjects []domain.Subject
	now      func() time.Time
}

// NewReviewService creates a ReviewService with the built-in sample subjects.
func NewReviewService() *ReviewService {
	return &ReviewService{
		subjects: sampleSubjects(),
		now:      time.Now,
	}
}

func sampleSubjects() []domain.Subject {
	return []domain.Subject{
		{
			ID:     1,
			Object: "kanji",
			Data: domain.SubjectData{
				Characters: "日",
				Level:      1,
				Meanings:   []domain.Meaning{{Meaning: "sun", Primary: true}},
			},
		},
		{
			ID:     2,
			Object: "vocabulary",
			Data: domain.SubjectData{
				Characters: "本",
				Level:      1,
				Meanings:   []domain.Meaning{{Meaning: "book", Primary: true}},
			},
		},
	}
}

// Session returns a review session for an authorized user: one randomly
// drawn sample subject.
func (s *ReviewService) Session(username string) domain.ReviewSession {
	return domain.ReviewSession{
		User:    username,
		Subject: s.subjects[rand.IntN(len(s.subjects))],
	}
}

// Assignments returns one assignment per sample subject.
func (s *ReviewService) Assignments() []domain.Assignment {
	assignments := make([]domain.Assignment, 0, len(s.subjects))

	for i, subject := range s.subjects {
		assignments = append(assignments, domain.Assignment{
			ID: i + 1,
			Data: domain.AssignmentData{
				SubjectID: subject.ID,
				SRSStage:  1,
			},
		})
	}

	return assignments
}

// Subjects returns the sample subjects matching the given IDs, preserving
// request order and skipping unknown IDs.
func (s *ReviewService) Subjects(ids []int) []domain.Subject {
	byID := make(map[int]domain.Subject, len(s.subjects))
	for _, subject := range s.subjects {
		byID[subject.ID] = subject
	}

	subjects := make([]domain.Subject, 0, len(ids))

	for _, id := range ids {
		if subject, ok := byID[id]; ok {
			subjects = append(subjects, subject)
		}
	}

	return subjects
}

// Summary returns an upcoming-reviews digest with a single batch available now.
func (s *ReviewService) Summary() domain.Summary {
	ids := make([]int, 0, len(s.subjects))
	for _, subject := range s.subjects {
		ids = append(ids, subject.ID)
	}

	return domain.Summary{
		Data: domain.SummaryData{
			Reviews: domain.ReviewForecast{
				Upcoming: []domain.UpcomingReviews{
					{
						AvailableAt: s.now().UTC(),
						SubjectIDs:  ids,
					},
				},
			},
		},
	}
}
