package importer

import (
	"bufio"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/caretide/triage/internal/categories"
	"github.com/caretide/triage/internal/tickets"
	"github.com/caretide/triage/pkg/storage"
)

const (
	// batchSize is the number of inserted tickets per transaction commit.
	batchSize = 100

	// maxLineBytes bounds a single JSONL line; chat transcripts get large.
	maxLineBytes = 16 << 20
)

// Result summarizes a completed import run.
type Result struct {
	ArchiveKey string `json:"archive_key"`
	Imported   int    `json:"imported"`
	Duplicates int    `json:"duplicates"`
	Skipped    int    `json:"skipped"`
}

// System defines the public contract for bulk import operations.
type System interface {
	Handler() *Handler

	// Import archives the uploaded export, then loads it. The returned
	// result carries the archive key for later replay.
	Import(ctx context.Context, filename string, upload io.Reader) (*Result, error)

	// Replay re-runs a previously archived export. Deduplication makes
	// this idempotent for records already loaded.
	Replay(ctx context.Context, key string) (*Result, error)
}

type importer struct {
	db     *sql.DB
	cats   categories.System
	store  storage.System
	logger *slog.Logger
}

// New creates the import system over the given database pool, category
// system, and archive store.
func New(db *sql.DB, cats categories.System, store storage.System, logger *slog.Logger) System {
	return &importer{
		db:     db,
		cats:   cats,
		store:  store,
		logger: logger.With("system", "importer"),
	}
}

func (i *importer) Handler() *Handler {
	return NewHandler(i, i.logger)
}

func (i *importer) Import(ctx context.Context, filename string, upload io.Reader) (*Result, error) {
	// Spool the upload so it can be archived and parsed without holding
	// the whole export in memory.
	spool, err := os.CreateTemp("", "triage-import-*")
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer func() {
		spool.Close()
		os.Remove(spool.Name())
	}()

	if _, err := io.Copy(spool, upload); err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}

	key := archiveKey(filename)
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}
	if err := i.store.Archive(ctx, key, spool, "application/gzip"); err != nil {
		return nil, fmt.Errorf("archive upload: %w", err)
	}

	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	result, err := i.run(ctx, spool)
	if err != nil {
		return nil, err
	}

	result.ArchiveKey = key
	return result, nil
}

func (i *importer) Replay(ctx context.Context, key string) (*Result, error) {
	archive, err := i.store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	result, err := i.run(ctx, archive)
	if err != nil {
		return nil, err
	}

	result.ArchiveKey = key
	return result, nil
}

// run loads a gzip-compressed JSONL export. Tickets commit in batches; a
// failure rolls back only the open batch and reports ErrImportFailed, so a
// replay of the same archive picks up where the run stopped.
func (i *importer) run(ctx context.Context, archive io.Reader) (*Result, error) {
	gz, err := gzip.NewReader(archive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer gz.Close()

	seeded, err := i.cats.Seed(ctx, categories.Canonical)
	if err != nil {
		return nil, fmt.Errorf("%w: seed categories: %v", ErrImportFailed, err)
	}

	byName := make(map[string]categories.Category, len(seeded))
	for name, cat := range seeded {
		byName[strings.ToLower(name)] = cat
	}
	fallback, ok := byName[categories.Fallback]
	if !ok {
		return nil, fmt.Errorf("%w: fallback category %q missing after seed", ErrImportFailed, categories.Fallback)
	}

	result := &Result{}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrImportFailed, err)
	}

	fail := func(line int, stage string, cause error) (*Result, error) {
		tx.Rollback()
		return nil, fmt.Errorf("%w: line %d: %s: %v", ErrImportFailed, line, stage, cause)
	}

	scanner := bufio.NewScanner(gz)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	line := 0
	batch := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(strings.TrimSpace(string(raw))) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fail(line, "decode", err)
		}

		likelihood, keep := rec.Classify()
		if !keep {
			result.Skipped++
			continue
		}

		exists, err := tickets.ExistsByExternalID(ctx, tx, rec.TicketID.String())
		if err != nil {
			return fail(line, "dedup check", err)
		}
		if exists {
			result.Duplicates++
			continue
		}

		cmd, err := rec.Command(likelihood)
		if err != nil {
			return fail(line, "convert", err)
		}

		id, err := tickets.InsertTx(ctx, tx, cmd)
		if err != nil {
			return fail(line, "insert", err)
		}

		if err := i.attach(ctx, tx, id, rec.CategoryNames(), byName, fallback); err != nil {
			return fail(line, "attach categories", err)
		}

		result.Imported++
		batch++
		if batch == batchSize {
			if err := tx.Commit(); err != nil {
				return nil, fmt.Errorf("%w: commit batch at line %d: %v", ErrImportFailed, line, err)
			}
			batch = 0
			if tx, err = i.db.BeginTx(ctx, nil); err != nil {
				return nil, fmt.Errorf("%w: begin: %v", ErrImportFailed, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: read archive: %v", ErrImportFailed, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrImportFailed, err)
	}

	i.logger.Info(
		"import complete",
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"skipped", result.Skipped,
	)

	return result, nil
}

// attach links a ticket to its recognized categories, falling back to the
// catch-all when none of the record's names are in the taxonomy.
func (i *importer) attach(
	ctx context.Context,
	tx *sql.Tx,
	ticketID int64,
	names []string,
	byName map[string]categories.Category,
	fallback categories.Category,
) error {
	attached := false
	for _, name := range names {
		cat, ok := byName[strings.ToLower(name)]
		if !ok {
			continue
		}
		if err := tickets.AttachCategoryTx(ctx, tx, ticketID, cat.ID); err != nil {
			return err
		}
		attached = true
	}

	if !attached {
		return tickets.AttachCategoryTx(ctx, tx, ticketID, fallback.ID)
	}
	return nil
}

// archiveKey derives a collision-free storage key from the upload filename.
func archiveKey(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "export.jsonl.gz"
	}
	return uuid.NewString() + "-" + base
}
