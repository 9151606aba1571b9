// Package table reads and writes the batch table's workbook
// representation. Required columns are Name, Recording Link,
// Transcription and Review; every other column passes through untouched,
// in its original order, so a load/save round trip is lossless.
package table

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"callcenter-qa-go/internal/types"
)

const (
	headerName          = "Name"
	headerRecording     = "Recording Link"
	headerTranscription = "Transcription"
	headerReview        = "Review"

	defaultSheet = "Sheet1"
)

// sampleRecordingLink seeds the default workbook with a known-good direct
// download so a fresh install can be exercised end to end.
const sampleRecordingLink = "https://drive.google.com/uc?export=download&id=191790CYx6x3_axe_sJDqW5rcj9io3Vkv"

func canonicalKey(header string) string {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "name":
		return types.KeyName
	case "recording link", "recording":
		return types.KeyRecording
	case "transcription":
		return types.KeyTranscription
	case "review":
		return types.KeyReview
	}
	return ""
}

// Load reads the first sheet of the workbook into a batch table.
func Load(path string) (*types.BatchTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook %s has no header row", path)
	}

	header := rows[0]
	seen := map[string]bool{}
	for _, h := range header {
		if key := canonicalKey(h); key != "" {
			seen[key] = true
		}
	}
	for _, required := range []string{types.KeyName, types.KeyRecording, types.KeyTranscription, types.KeyReview} {
		if !seen[required] {
			return nil, fmt.Errorf("workbook %s is missing required column %q", path, required)
		}
	}

	tbl := &types.BatchTable{Columns: append([]string(nil), header...)}
	for _, row := range rows[1:] {
		cells := normalizeRow(row, len(header))
		rec := types.CallRecord{}
		for i, h := range header {
			switch canonicalKey(h) {
			case types.KeyName:
				rec.Name = cells[i]
			case types.KeyRecording:
				rec.RecordingURL = cells[i]
			case types.KeyTranscription:
				rec.Transcription = cells[i]
			case types.KeyReview:
				rec.Review = cells[i]
			default:
				if rec.Extra == nil {
					rec.Extra = map[string]string{}
				}
				rec.Extra[h] = cells[i]
			}
		}
		tbl.Records = append(tbl.Records, rec)
	}
	return tbl, nil
}

// Save writes the table to path, preserving the loaded column order.
// Tables without column metadata (JSON-sourced) get the canonical columns
// followed by any extra keys.
func Save(tbl *types.BatchTable, path string) error {
	columns := tbl.Columns
	if len(columns) == 0 {
		columns = defaultColumns(tbl)
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range tbl.Records {
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			row[j] = cellValue(rec, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(defaultSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// CreateDefault writes a one-row sample workbook so a fresh install has a
// template to fill in.
func CreateDefault(path string) error {
	tbl := &types.BatchTable{
		Columns: []string{headerName, "Campaign", "Serial Number", "Date", headerRecording, headerTranscription, headerReview},
		Records: []types.CallRecord{{
			Name:         "Your Agent Name",
			RecordingURL: sampleRecordingLink,
			Extra: map[string]string{
				"Campaign":      "Final Expense",
				"Serial Number": "CALL-001",
				"Date":          time.Now().Format("2006-01-02"),
			},
		}},
	}
	return Save(tbl, path)
}

func defaultColumns(tbl *types.BatchTable) []string {
	columns := []string{headerName, headerRecording, headerTranscription, headerReview}
	seen := map[string]bool{}
	var extras []string
	for _, rec := range tbl.Records {
		for k := range rec.Extra {
			if !seen[k] {
				seen[k] = true
				extras = append(extras, k)
			}
		}
	}
	sort.Strings(extras)
	return append(columns, extras...)
}

func cellValue(rec types.CallRecord, column string) string {
	switch canonicalKey(column) {
	case types.KeyName:
		return rec.Name
	case types.KeyRecording:
		return rec.RecordingURL
	case types.KeyTranscription:
		return rec.Transcription
	case types.KeyReview:
		return rec.Review
	}
	return rec.Extra[column]
}

func normalizeRow(row []string, length int) []string {
	if len(row) >= length {
		return row
	}
	normalized := make([]string, length)
	copy(normalized, row)
	return normalized
}
