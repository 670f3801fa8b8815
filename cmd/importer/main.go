package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"question_review/internal/app/importer"
	"question_review/internal/domain/repository"
	"question_review/internal/platform/config"
	"question_review/internal/platform/database"
)

func main() {
	csvPath := flag.String("csv", "questions.csv", "CSV file with old_questions and new_questions columns")
	flag.Parse()

	config.Load()

	db, err := database.Open(config.AppConfig)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Error opening CSV file: %v", err)
	}
	defer f.Close()

	im := importer.New(repository.NewSQLQuestionRepository(db))
	result, err := im.ImportCSV(ctx, f)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	fmt.Printf("Imported %d questions (batch %s)\n", result.Imported, result.BatchID)
}
