package domain

import "time"

// Subject is a single study item (kanji, vocabulary or radical) as served by
// the WaniKani v2 API.
type Subject struct {
	ID     int         `json:"id"`
	Object string      `json:"object"`
	Data   SubjectData `json:"data"`
}

// SubjectData holds the display attributes of a subject.
type SubjectData struct {
	Characters string    `json:"characters"`
	Level      int       `json:"level"`
	Meanings   []Meaning `json:"meanings"`
}

// Meaning is one meaning of a subject in the source language.
type Meaning struct {
	Meaning string `json:"meaning"`
	Primary bool   `json:"primary"`
}

// PrimaryMeaning returns the subject's primary meaning, falling back to the
// first meaning when none is marked primary. Returns false if the subject has
// no meanings at all.
func (s Subject) PrimaryMeaning() (string, bool) {
	for _, m := range s.Data.Meanings {
		if m.Primary {
			return m.Meaning, true
		}
	}

	if len(s.Data.Meanings) > 0 {
		return s.Data.Meanings[0].Meaning, true
	}

	return "", false
}

// Assignment links a user to a subject together with its spaced-repetition
// progress.
type Assignment struct {
	ID   int            `json:"id"`
	Data AssignmentData `json:"data"`
}

// AssignmentData holds the progress attributes of an assignment.
type AssignmentData struct {
	SubjectID int `json:"subject_id"`
	SRSStage  int `json:"srs_stage"`
}

// Summary is the upcoming-reviews digest served by the summary endpoint.
type Summary struct {
	Data SummaryData `json:"data"`
}

// SummaryData wraps the review forecast.
type SummaryData struct {
	Reviews ReviewForecast `json:"reviews"`
}

// ReviewForecast lists batches of reviews becoming available in the future.
type ReviewForecast struct {
	Upcoming []UpcomingReviews `json:"upcoming"`
}

// UpcomingReviews is one batch of reviews unlocking at a given time.
type UpcomingReviews struct {
	AvailableAt time.Time `json:"available_at"`
	SubjectIDs  []int     `json:"subject_ids"`
}

// ReviewSession is the payload of the protected revision-session endpoint:
// one randomly drawn subject for the authenticated user to review.
type ReviewSession struct {
	User    string  `json:"user"`
	Subject Subject `json:"subject"`
}
