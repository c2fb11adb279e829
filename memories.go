package gommt

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// MemoryServices groups the translation-memory and glossary operations
// of the API. Access it through Client.Memories.
type MemoryServices struct {
	client *Client
}

// List returns all translation memories owned by the account.
func (s *MemoryServices) List(ctx context.Context) ([]Memory, error) {
	raw, err := s.client.send(ctx, "get", "/memories", nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeMany[Memory](raw)
}

// Get returns a single memory by id.
func (s *MemoryServices) Get(ctx context.Context, id int64) (*Memory, error) {
	raw, err := s.client.send(ctx, "get", fmt.Sprintf("/memories/%d", id), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Memory](raw)
}

// Create creates a new memory. Recognized options: description,
// external_id.
func (s *MemoryServices) Create(ctx context.Context, name string, opts ...Options) (*Memory, error) {
	data := map[string]any{"name": name}
	mergeOptions(opts).apply(data, memoryCreateOptionKeys...)

	raw, err := s.client.send(ctx, "post", "/memories", data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Memory](raw)
}

// Edit updates a memory. Recognized options: name, description.
func (s *MemoryServices) Edit(ctx context.Context, id int64, opts ...Options) (*Memory, error) {
	data := map[string]any{}
	mergeOptions(opts).apply(data, memoryEditOptionKeys...)

	raw, err := s.client.send(ctx, "put", fmt.Sprintf("/memories/%d", id), data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Memory](raw)
}

// Delete deletes a memory and returns its last state.
func (s *MemoryServices) Delete(ctx context.Context, id int64) (*Memory, error) {
	raw, err := s.client.send(ctx, "delete", fmt.Sprintf("/memories/%d", id), nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[Memory](raw)
}

// Add adds a single sentence/translation pair to a memory.
// Recognized options: tuid, session.
func (s *MemoryServices) Add(ctx context.Context, id int64, source, target, sentence, translation string, opts ...Options) (*ImportJob, error) {
	data := map[string]any{
		"source":      source,
		"target":      target,
		"sentence":    sentence,
		"translation": translation,
	}
	mergeOptions(opts).apply(data, contentAddOptionKeys...)

	raw, err := s.client.send(ctx, "post", fmt.Sprintf("/memories/%d/content", id), data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}

// Replace overwrites the pair previously stored under tuid.
func (s *MemoryServices) Replace(ctx context.Context, id int64, tuid, source, target, sentence, translation string) (*ImportJob, error) {
	data := map[string]any{
		"tuid":        tuid,
		"source":      source,
		"target":      target,
		"sentence":    sentence,
		"translation": translation,
	}

	raw, err := s.client.send(ctx, "put", fmt.Sprintf("/memories/%d/content", id), data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}

// ImportTMX bulk-imports TMX content into a memory. Recognized
// options: compression.
func (s *MemoryServices) ImportTMX(ctx context.Context, id int64, tmx io.Reader, opts ...Options) (*ImportJob, error) {
	data := map[string]any{}
	mergeOptions(opts).apply(data, importOptionKeys...)

	raw, err := s.client.send(ctx, "post", fmt.Sprintf("/memories/%d/content", id), data, map[string]io.Reader{"tmx": tmx}, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}

// ImportTMXFile is ImportTMX reading from a file path; the file is
// closed whether the call succeeds or fails.
func (s *MemoryServices) ImportTMXFile(ctx context.Context, id int64, path string, opts ...Options) (*ImportJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open tmx file")
	}
	defer f.Close()
	return s.ImportTMX(ctx, id, f, opts...)
}

// AddToGlossary adds terms to the glossary of a memory. termType is
// "unidirectional" or "equivalent"; an empty tuid is omitted.
func (s *MemoryServices) AddToGlossary(ctx context.Context, id int64, terms []GlossaryTerm, termType, tuid string) (*ImportJob, error) {
	data := map[string]any{"terms": terms, "type": termType}
	if tuid != "" {
		data["tuid"] = tuid
	}

	raw, err := s.client.send(ctx, "post", fmt.Sprintf("/memories/%d/glossary", id), data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}

// ReplaceInGlossary overwrites the glossary entry stored under tuid.
func (s *MemoryServices) ReplaceInGlossary(ctx context.Context, id int64, terms []GlossaryTerm, termType, tuid string) (*ImportJob, error) {
	data := map[string]any{"terms": terms, "type": termType, "tuid": tuid}

	raw, err := s.client.send(ctx, "put", fmt.Sprintf("/memories/%d/glossary", id), data, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}

// ImportGlossary bulk-imports glossary terms from a CSV stream.
// Recognized options: compression.
func (s *MemoryServices) ImportGlossary(ctx context.Context, id int64, csv io.Reader, opts ...Options) (*ImportJob, error) {
	data := map[string]any{}
	mergeOptions(opts).apply(data, importOptionKeys...)

	raw, err := s.client.send(ctx, "post", fmt.Sprintf("/memories/%d/glossary", id), data, map[string]io.Reader{"csv": csv}, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}

// ImportGlossaryFile is ImportGlossary reading from a file path; the
// file is closed whether the call succeeds or fails.
func (s *MemoryServices) ImportGlossaryFile(ctx context.Context, id int64, path string, opts ...Options) (*ImportJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open csv file")
	}
	defer f.Close()
	return s.ImportGlossary(ctx, id, f, opts...)
}

// GetImportStatus returns the current state of an import job. Poll it
// until Progress reaches 1.
func (s *MemoryServices) GetImportStatus(ctx context.Context, uuid string) (*ImportJob, error) {
	raw, err := s.client.send(ctx, "get", "/import-jobs/"+uuid, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[ImportJob](raw)
}
