// Command import_notes extracts the text of a PDF document and appends it to
// the dashboard's notes pad.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"skylight/internal/config"
	"skylight/internal/db"
	"skylight/internal/store"
	"skylight/models"
)

var cleanWhitespace = regexp.MustCompile(`[ \t]+`)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import_notes <document.pdf>")
		os.Exit(1)
	}

	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("pdf path must not be empty")
	}

	text, err := extractText(path)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if text == "" {
		return fmt.Errorf("no text found in %s", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	ctx := context.Background()
	st := store.New(database)

	existing, _, err := st.Get(ctx, models.SettingKeyNotes)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	if err := st.Set(ctx, models.SettingKeyNotes, appendNotes(existing, text)); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}

	fmt.Printf("imported %d characters from %s\n", len(text), path)
	return nil
}

func extractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return normalizeText(buf.String()), nil
}

// normalizeText collapses runs of spaces and trims blank edges while keeping
// line breaks intact.
func normalizeText(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(cleanWhitespace.ReplaceAllString(line, " ")))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func appendNotes(existing, imported string) string {
	existing = strings.TrimRight(existing, "\n")
	if existing == "" {
		return imported
	}
	return existing + "\n\n" + imported
}
