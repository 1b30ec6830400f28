package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/wordbook/internal/audit"
	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/entities"
)

// WordSaver is the part of the repository the importer writes through.
type WordSaver interface {
	CreateWord(ctx context.Context, word *entities.Word) error
	SaveWord(ctx context.Context, word *entities.Word) error
}

type ImportWordsCommand struct {
	File         string
	DatabasePath string
	AuditDir     string
	Replace      bool
	Verbose      bool

	stdin  io.Reader
	stdout io.Writer
}

// ImportResult counts what happened to each word of an import.
type ImportResult struct {
	Created int
	Skipped int
	Failed  int
	Errors  []string
}

func NewImportWordsCommand() *ImportWordsCommand {
	return &ImportWordsCommand{stdin: os.Stdin, stdout: os.Stdout}
}

func (cmd *ImportWordsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-words", flag.ContinueOnError)

	fs.StringVar(&cmd.File, "file", "", "JSON file with an array of words, or - for stdin (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.AuditDir, "audit-dir", "", "Directory to archive the imported payload in")
	fs.BoolVar(&cmd.Replace, "replace", false, "Overwrite words whose id already exists instead of skipping them")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-words [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import words with their nested pronunciations and stage words.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s import-words -file ./words.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s export-words | %s import-words -file - -db ./copy.db -replace\n", os.Args[0], os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("file is required")
	}

	return nil
}

func (cmd *ImportWordsCommand) Run() error {
	if cmd.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	words, raw, err := cmd.readWords()
	if err != nil {
		return err
	}

	db, err := database.NewSilentDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := audit.NewAuditor(cmd.AuditDir).SaveJSON("import", raw); err != nil {
		log.Printf("Failed to archive import payload: %v", err)
	}

	result := ImportWords(context.Background(), vocabulary.NewRepository(db.DB), words, cmd.Replace)

	fmt.Fprintf(cmd.stdout, "\n=== Import Results ===\n")
	fmt.Fprintf(cmd.stdout, "Words created: %d\n", result.Created)
	fmt.Fprintf(cmd.stdout, "Words skipped: %d\n", result.Skipped)
	fmt.Fprintf(cmd.stdout, "Words failed: %d\n", result.Failed)
	for _, msg := range result.Errors {
		fmt.Fprintf(cmd.stdout, "  - %s\n", msg)
	}

	if result.Failed > 0 {
		return fmt.Errorf("%d of %d words failed to import", result.Failed, len(words))
	}
	return nil
}

func (cmd *ImportWordsCommand) readWords() ([]entities.Word, json.RawMessage, error) {
	var reader io.Reader
	if cmd.File == "-" {
		reader = cmd.stdin
	} else {
		f, err := os.Open(cmd.File)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s: %w", cmd.File, err)
		}
		defer f.Close()
		reader = f
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, fmt.Errorf("failed to parse words: %w", err)
	}

	// Decode over NewWord so that omitted fields get the same defaults as
	// words created through the API.
	words := make([]entities.Word, 0, len(items))
	for i, item := range items {
		word := entities.NewWord("", "")
		if err := json.Unmarshal(item, word); err != nil {
			return nil, nil, fmt.Errorf("failed to parse word #%d: %w", i+1, err)
		}
		words = append(words, *word)
	}
	return words, raw, nil
}

// ImportWords stores each word with its nested children. A word that fails
// is reported and does not stop the import. Without replace, existing ids
// are skipped.
func ImportWords(ctx context.Context, store WordSaver, words []entities.Word, replace bool) ImportResult {
	var result ImportResult

	for i := range words {
		word := &words[i]

		var err error
		if replace {
			err = store.SaveWord(ctx, word)
		} else {
			err = store.CreateWord(ctx, word)
		}

		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, vocabulary.ErrAlreadyExists):
			result.Skipped++
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s (%s): %v", word.ID, word.WordName, err))
			if errors.Is(err, entities.ErrDataAccess) {
				// The store is gone; the remaining words would fail the same way.
				result.Failed += len(words) - i - 1
				return result
			}
		}
	}
	return result
}
