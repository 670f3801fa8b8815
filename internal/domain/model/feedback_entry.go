package model

import "time"

// FeedbackEntry is one record in the feedback log. The log is append-on-
// submission and curated by viewers, who may rewrite or remove any entry
// regardless of who authored it. That looser model is deliberate and kept
// separate from the teacher/admin question flow.
type FeedbackEntry struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
