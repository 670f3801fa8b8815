package model

// Question is a review item: the original text, the revised text, and the
// review state around them.
//
// The three moving facets are independent, not a linear state machine:
// updated and approved only ever go false -> true, while assigned_to may be
// rewritten any number of times.
type Question struct {
	ID       int64  `json:"id"`
	OldText  string `json:"old_question"`
	NewText  string `json:"new_question"`
	Feedback string `json:"feedback"`
	Updated  bool   `json:"updated"`
	Approved bool   `json:"approved"`

	// AssignedTo names the teacher responsible for the review. A weak
	// reference: it is used for filtering, never joined on.
	AssignedTo *string `json:"assigned_to"`
	Difficulty *string `json:"difficulty"`
	// Editor is the last username that edited the question.
	Editor *string `json:"editor"`
	// ImportBatch identifies the bulk-import run that created the row.
	ImportBatch *string `json:"import_batch,omitempty"`
}

// QuestionPair is the importer's input shape: original and revised text.
type QuestionPair struct {
	OldText string
	NewText string
}
