package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"question_review/internal/common"
	"question_review/internal/domain/model"
	"question_review/internal/domain/repository"

	"github.com/google/uuid"
)

// Importer bulk-loads question pairs into the store. Input is a CSV with
// old_questions and new_questions columns, one question per row; every run
// gets a batch id stamped on the rows it creates so an import can be traced
// afterwards.
type Importer struct {
	questionRepo repository.QuestionRepository
}

func New(questionRepo repository.QuestionRepository) *Importer {
	return &Importer{questionRepo: questionRepo}
}

// Result describes one completed import run.
type Result struct {
	BatchID  string
	Imported int64
}

// ImportCSV reads the question pairs from r and inserts them in one
// transaction. The header row is required and matched by name, so column
// order in the source file does not matter.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	oldIdx, newIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "old_questions", "old_question":
			oldIdx = i
		case "new_questions", "new_question":
			newIdx = i
		}
	}
	if oldIdx < 0 || newIdx < 0 {
		return nil, fmt.Errorf("CSV must have old_questions and new_questions columns: %w", common.ErrValidation)
	}

	var pairs []model.QuestionPair
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		if oldIdx >= len(record) || newIdx >= len(record) {
			return nil, fmt.Errorf("CSV row has too few columns: %w", common.ErrValidation)
		}
		pairs = append(pairs, model.QuestionPair{
			OldText: record[oldIdx],
			NewText: record[newIdx],
		})
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no question rows found in CSV: %w", common.ErrValidation)
	}

	batchID := uuid.NewString()
	count, err := im.questionRepo.InsertBatch(ctx, pairs, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert questions: %w", err)
	}
	return &Result{BatchID: batchID, Imported: count}, nil
}
