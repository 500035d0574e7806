package rag

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/mwiater/docsearch/internal/logging"
)

// DefaultExtensions are the file extensions discovered when none are configured.
var DefaultExtensions = []string{".md", ".txt"}

// EnsureProjectDirs creates the data and storage directories below root if
// they do not already exist and returns their paths.
func EnsureProjectDirs(root, dataName, storageName string) (string, string, error) {
	if dataName == "" {
		dataName = "data"
	}
	if storageName == "" {
		storageName = "storage"
	}
	dataDir := filepath.Join(root, dataName)
	storageDir := filepath.Join(root, storageName)

	for _, dir := range []string{dataDir, storageDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", "", fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return dataDir, storageDir, nil
}

// DiscoverDocFiles walks dataDir and returns the sorted paths of files whose
// extension is in exts, skipping anything matched by an exclude pattern.
func DiscoverDocFiles(dataDir string, exts []string, exclude []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowed[ext] = struct{}{}
	}

	// WalkDir does not follow a symlinked root, so walk its target and
	// report paths under dataDir.
	root, err := filepath.EvalSymlinks(dataDir)
	if err != nil {
		return nil, fmt.Errorf("discover documents in %s: %w", dataDir, err)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		isRoot := path == root
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		path = filepath.Join(dataDir, rel)
		if err != nil {
			if isRoot {
				return err
			}
			logging.LogEvent("[INGEST] Skipping unreadable path: %s | Error: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !isRoot && shouldExclude(path, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldExclude(path, exclude) {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover documents in %s: %w", dataDir, err)
	}

	sort.Strings(files)
	return files, nil
}

func shouldExclude(path string, patterns []string) bool {
	normalized := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		pattern = filepath.ToSlash(pattern)
		if strings.Contains(pattern, "**") {
			trimmed := strings.ReplaceAll(pattern, "**", "")
			if trimmed != "" && strings.Contains(normalized, trimmed) {
				return true
			}
		}
		if ok, _ := filepath.Match(pattern, normalized); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// LoadDocuments reads every path into a Document. Invalid UTF-8 is dropped
// and surrounding whitespace trimmed. Files that cannot be read are logged
// and left out.
func LoadDocuments(paths []string) []Document {
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		text, err := readText(path)
		if err != nil {
			logging.LogEvent("[INGEST] Skipping unreadable file: %s | Error: %v", path, err)
			continue
		}
		docs = append(docs, Document{
			Source: path,
			Text:   strings.TrimSpace(strings.ToValidUTF8(text, "")),
		})
	}
	return docs
}

func readText(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
