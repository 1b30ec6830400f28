package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/wordbook/internal/config"
	"github.com/mrlokans/wordbook/internal/database"
	"github.com/mrlokans/wordbook/internal/database/vocabulary"
	"github.com/mrlokans/wordbook/internal/entities"
)

// WordLister is the part of the repository the exporter reads from.
type WordLister interface {
	ListWords(ctx context.Context, filter vocabulary.ListWordsFilter) ([]entities.Word, int64, error)
}

type ExportWordsCommand struct {
	Output       string
	DatabasePath string
	ActiveOnly   bool

	stdout io.Writer
}

func NewExportWordsCommand() *ExportWordsCommand {
	return &ExportWordsCommand{stdout: os.Stdout}
}

func (cmd *ExportWordsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export-words", flag.ContinueOnError)

	fs.StringVar(&cmd.Output, "out", "-", "File to write the JSON export to, - for stdout")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.BoolVar(&cmd.ActiveOnly, "active", false, "Export active words only")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export-words [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every word with its pronunciations and stage words as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ExportWordsCommand) Run() error {
	if _, err := os.Stat(cmd.DatabasePath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist: %s", cmd.DatabasePath)
	}

	db, err := database.NewSilentDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.stdout
	if cmd.Output != "-" {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", cmd.Output, err)
		}
		defer f.Close()
		out = f
	}

	count, err := ExportWords(context.Background(), vocabulary.NewRepository(db.DB), out, cmd.ActiveOnly)
	if err != nil {
		return err
	}
	if cmd.Output != "-" {
		fmt.Fprintf(cmd.stdout, "Exported %d words to %s\n", count, cmd.Output)
	}
	return nil
}

// ExportWords writes all words as a JSON array. Both child collections are
// resolved first so that the output can be fed back to ImportWords.
func ExportWords(ctx context.Context, store WordLister, w io.Writer, activeOnly bool) (int, error) {
	filter := vocabulary.ListWordsFilter{}
	if activeOnly {
		active := true
		filter.Active = &active
	}

	words, _, err := store.ListWords(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to list words: %w", err)
	}

	for i := range words {
		if _, err := words[i].Pronunciations.Load(ctx); err != nil {
			return 0, fmt.Errorf("load pronunciations of %s: %w", words[i].ID, err)
		}
		if _, err := words[i].StageWords.Load(ctx); err != nil {
			return 0, fmt.Errorf("load stage words of %s: %w", words[i].ID, err)
		}
	}
	if words == nil {
		words = []entities.Word{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(words); err != nil {
		return 0, fmt.Errorf("failed to encode words: %w", err)
	}
	return len(words), nil
}
