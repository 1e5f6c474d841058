package services

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

// DocumentResolver fills in document text that a pair only references by
// file.
type DocumentResolver interface {
	ResolvePairs(pairs []models.DocumentPair) []models.DocumentPair
}

type documentResolver struct {
	baseDir   string
	pdfParser PDFParserService
}

func NewDocumentResolver(baseDir string, pdfParser PDFParserService) DocumentResolver {
	return &documentResolver{
		baseDir:   baseDir,
		pdfParser: pdfParser,
	}
}

// ResolvePairs returns a copy of pairs with file-backed texts loaded. File
// names are relative to the data directory. A file that cannot be read, or
// that lies outside the data directory, leaves the text empty, which renders
// as a placeholder.
func (r *documentResolver) ResolvePairs(pairs []models.DocumentPair) []models.DocumentPair {
	resolved := make([]models.DocumentPair, len(pairs))
	copy(resolved, pairs)

	for i := range resolved {
		pair := &resolved[i]
		if pair.JobDescription == "" && pair.JobDescriptionFile != "" {
			pair.JobDescription = r.readDocument(pair.JobDescriptionFile, i)
		}
		if pair.CandidateProfile == "" && pair.CandidateProfileFile != "" {
			pair.CandidateProfile = r.readDocument(pair.CandidateProfileFile, i)
		}
	}

	return resolved
}

func (r *documentResolver) readDocument(name string, index int) string {
	text, err := r.extract(name)
	if err != nil {
		log.Printf("⚠️  %s: failed to read %s: %v\n", PairLabel(index), name, err)
		return ""
	}
	return text
}

// extract reads name from inside baseDir. Absolute paths, ".." segments and
// symlinks leading out of baseDir are refused.
func (r *documentResolver) extract(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("document path %q is outside the data directory", name)
	}

	f, err := os.OpenInRoot(r.baseDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		info, err := f.Stat()
		if err != nil {
			return "", fmt.Errorf("failed to stat document: %w", err)
		}
		return r.pdfParser.ExtractText(f, info.Size())
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return CleanText(string(data)), nil
}
