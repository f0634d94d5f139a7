// Package loader reads corpus text files from disk and splits them into
// retrieval-sized chunks. Chunking policy lives here, outside the index:
// the index stores whatever passages it is handed.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File is a loaded corpus file.
type File struct {
	Path    string
	Content string
}

// LoadError reports a single file that could not be read. One failing file
// never aborts the rest of the batch.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadTextFiles recursively reads every .txt file under dir. A missing
// directory is created and yields an empty result. Unreadable files are
// returned as LoadErrors alongside the files that did load.
func LoadTextFiles(dir string) ([]File, []error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return nil, []error{fmt.Errorf("create corpus dir %s: %w", dir, mkErr)}
		}
		return nil, nil
	}

	var files []File
	var errs []error
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			errs = append(errs, &LoadError{Path: path, Err: err})
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, &LoadError{Path: path, Err: readErr})
			return nil
		}
		files = append(files, File{Path: path, Content: string(data)})
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("walk %s: %w", dir, walkErr))
	}
	return files, errs
}

// SplitChunks splits text into chunks of at most maxChars characters,
// breaking at sentence boundaries (. ! ?). Sentences that individually
// exceed the budget become their own chunk rather than being dropped.
func SplitChunks(text string, maxChars int) []string {
	if maxChars <= 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, sentence := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		sentenceLen := len([]rune(sentence))
		if currentLen+sentenceLen+2 > maxChars && current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentLen = 0
		}

		if current.Len() > 0 {
			current.WriteByte(' ')
			currentLen++
		}
		current.WriteString(sentence)
		current.WriteByte('.')
		currentLen += sentenceLen + 1
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
