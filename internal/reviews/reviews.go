// Package reviews loads review input files and prepares them for labelling.
package reviews

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Review is one piece of review text. Text holds the cleaned form once
// Prepare has run.
type Review struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Column names accepted for CSV input.
var (
	idColumns   = []string{"id", "review_id", "yorum_id"}
	textColumns = []string{"text", "review", "yorum"}
)

// LoadFile reads reviews from a .jsonl, .json, .csv, or .txt file. Text files
// carry one review per line and take their 1-based line number as id.
func LoadFile(path string) ([]Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reviews: %w", err)
	}
	defer f.Close()

	var out []Review
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		out, err = readJSONL(f)
	case ".json":
		out, err = readJSONArray(f)
	case ".csv":
		out, err = readCSV(f)
	case ".txt", "":
		out, err = readLines(f)
	default:
		return nil, fmt.Errorf("unsupported review file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// flexibleID accepts both numeric and string ids.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %s", string(data))
	}
	*f = flexibleID(n.String())
	return nil
}

type jsonReview struct {
	ID     flexibleID `json:"id"`
	Text   string     `json:"text"`
	Review string     `json:"review"`
	Yorum  string     `json:"yorum"`
}

func (r jsonReview) toReview(fallbackID int) Review {
	id := strings.TrimSpace(string(r.ID))
	if id == "" {
		id = strconv.Itoa(fallbackID)
	}
	text := r.Text
	if text == "" {
		text = r.Review
	}
	if text == "" {
		text = r.Yorum
	}
	return Review{ID: id, Text: text}
}

func readJSONL(r io.Reader) ([]Review, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var out []Review
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var rec jsonReview
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec.toReview(line))
	}
	return out, scanner.Err()
}

func readJSONArray(r io.Reader) ([]Review, error) {
	var recs []jsonReview
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, err
	}
	out := make([]Review, 0, len(recs))
	for i, rec := range recs {
		out = append(out, rec.toReview(i+1))
	}
	return out, nil
}

func readCSV(r io.Reader) ([]Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	idCol, textCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if idCol < 0 && contains(idColumns, name) {
			idCol = i
		}
		if textCol < 0 && contains(textColumns, name) {
			textCol = i
		}
	}
	if textCol < 0 {
		return nil, fmt.Errorf("csv header needs one of %v, got %v", textColumns, header)
	}
	var out []Review
	row := 0
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row++
		review := Review{ID: strconv.Itoa(row)}
		if idCol >= 0 && idCol < len(rec) && strings.TrimSpace(rec[idCol]) != "" {
			review.ID = strings.TrimSpace(rec[idCol])
		}
		if textCol < len(rec) {
			review.Text = rec[textCol]
		}
		out = append(out, review)
	}
	return out, nil
}

func readLines(r io.Reader) ([]Review, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var out []Review
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		out = append(out, Review{ID: strconv.Itoa(line), Text: text})
	}
	return out, scanner.Err()
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
