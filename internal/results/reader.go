package results

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"reviewlens/internal/labels"
)

const textPrefix = "[REVIEW ID = "

// ReadRecords parses a result file in either format.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	var out []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return out, nil
}

// ReadFile loads a result file as label sources.
func ReadFile(path string) ([]labels.LabelSource, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, err
	}
	out := make([]labels.LabelSource, 0, len(records))
	for _, rec := range records {
		src, err := rec.Source()
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

func parseLine(line string) (Record, error) {
	var rec Record
	if rest, ok := strings.CutPrefix(line, textPrefix); ok {
		id, payload, found := strings.Cut(rest, "] ")
		if !found {
			return rec, errors.New("malformed text record")
		}
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return rec, err
		}
		if rec.ID == "" {
			rec.ID = strings.TrimSpace(id)
		}
		return rec, nil
	}
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return rec, err
	}
	return rec, nil
}
