package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"alfredoptarigan/compliance-dashboard/internal/models"
)

// resultEntry is the object form of one result source element. Most
// producers write the tuple form [[requirements...], {metrics}] instead.
type resultEntry struct {
	Results models.ResultSet       `json:"results"`
	Metrics models.UpstreamMetrics `json:"metrics"`
}

// DecodeDocumentPairs parses a JSON array of document pairs.
func DecodeDocumentPairs(data []byte) ([]models.DocumentPair, error) {
	var pairs []models.DocumentPair
	if err := strictUnmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("%w: document pairs: %v", ErrMalformedSource, err)
	}
	if pairs == nil {
		return nil, fmt.Errorf("%w: document pairs: expected a JSON array", ErrMalformedSource)
	}
	return pairs, nil
}

// DecodeResultSource parses a JSON array whose elements are either
// [requirements, metrics] tuples or {"results", "metrics"} objects.
func DecodeResultSource(data []byte) (*models.ResultSource, error) {
	var elements []json.RawMessage
	if err := strictUnmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%w: result source: %v", ErrMalformedSource, err)
	}
	if elements == nil {
		return nil, fmt.Errorf("%w: result source: expected a JSON array", ErrMalformedSource)
	}

	source := &models.ResultSource{
		Sets:    make([]models.ResultSet, 0, len(elements)),
		Metrics: make([]models.UpstreamMetrics, 0, len(elements)),
	}

	for i, element := range elements {
		entry, err := decodeResultEntry(element)
		if err != nil {
			return nil, fmt.Errorf("%w: result source element %d: %v", ErrMalformedSource, i, err)
		}
		source.Sets = append(source.Sets, entry.Results)
		source.Metrics = append(source.Metrics, entry.Metrics)
	}

	return source, nil
}

func decodeResultEntry(element json.RawMessage) (*resultEntry, error) {
	trimmed := bytes.TrimSpace(element)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty element")
	}

	switch trimmed[0] {
	case '[':
		var tuple []json.RawMessage
		if err := json.Unmarshal(trimmed, &tuple); err != nil {
			return nil, err
		}
		if len(tuple) != 2 {
			return nil, fmt.Errorf("expected [results, metrics], got %d items", len(tuple))
		}
		var entry resultEntry
		if err := json.Unmarshal(tuple[0], &entry.Results); err != nil {
			return nil, fmt.Errorf("results: %w", err)
		}
		if err := json.Unmarshal(tuple[1], &entry.Metrics); err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		return &entry, nil
	case '{':
		var entry resultEntry
		if err := json.Unmarshal(trimmed, &entry); err != nil {
			return nil, err
		}
		return &entry, nil
	default:
		return nil, fmt.Errorf("expected an array or object")
	}
}

// strictUnmarshal rejects trailing data after the first JSON value.
func strictUnmarshal(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(target); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after top-level value")
	}
	return nil
}
