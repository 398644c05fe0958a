package datastores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// ContactsFile implements [ContactsStore] on top of a single JSON document.
//
// The document is an array of contacts. SaveAll writes a temporary file next
// to it and renames it into place, so readers never observe a partial write.
// Nothing protects a load/save pair against another process doing the same.
type ContactsFile struct {
	Path   string
	Logger *slog.Logger
}

var _ ContactsStore = (*ContactsFile)(nil)

func NewContactsFile(path string, logger *slog.Logger) *ContactsFile {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ContactsFile{Path: path, Logger: logger}
}

func (s *ContactsFile) LoadAll(ctx context.Context) ([]*Contact, error) {
	b, err := os.ReadFile(s.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return []*Contact{}, nil
	case err != nil:
		return nil, fmt.Errorf("datastores: load contacts: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(b, &records); err != nil {
		s.Logger.WarnContext(ctx, "contacts document is not a JSON array, starting empty",
			slog.String("path", s.Path), slog.Any("err", err))
		return []*Contact{}, nil
	}

	contacts := make([]*Contact, 0, len(records))
	for i, record := range records {
		c := new(Contact)
		if err := json.Unmarshal(record, c); err != nil || !c.valid() {
			s.Logger.WarnContext(ctx, "skipping invalid contact record",
				slog.String("path", s.Path), slog.Int("index", i), slog.Any("err", err))
			continue
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (s *ContactsFile) SaveAll(ctx context.Context, cs []*Contact) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("datastores: save contacts: %w", err)
	}
	if cs == nil {
		cs = []*Contact{}
	}

	b, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return fmt.Errorf("datastores: save contacts: %w", err)
	}
	b = append(b, '\n')

	if err := writeFileAtomic(s.Path, b); err != nil {
		return fmt.Errorf("datastores: save contacts: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint: mnd // rwxr-xr-x
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint: mnd // rw-r--r--
		return err
	}

	// atomically move into place
	return os.Rename(tmp.Name(), path)
}
