// Package export renders a user's learning entries as a downloadable XLSX
// workbook or CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/server/models"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const sheet = "Sheet1"

var header = []string{
	"Date", "Topic", "Category", "Challenge", "Day", "Time Spent (min)",
	"Tags", "Status", "Key Takeaway", "Doubts", "Content", "Views",
}

// ParseFormat accepts "xlsx" or "csv" (case-insensitive); empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", common.NewValidationError("format", "must be xlsx or csv")
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename is the attachment name for an export produced at now.
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("devlog-entries-%s.%s", now.UTC().Format("2006-01-02"), f)
}

// Write renders entries in the given format to w.
func Write(w io.Writer, f Format, entries []*models.Entry) error {
	if f == FormatCSV {
		return WriteCSV(w, entries)
	}
	return WriteXLSX(w, entries)
}

func row(e *models.Entry) []string {
	challenge, day := "", ""
	if e.InChallenge() {
		challenge = e.ChallengeID
		day = strconv.Itoa(e.DayNumber)
	}
	return []string{
		e.Date.UTC().Format("2006-01-02"),
		e.Topic,
		e.Category,
		challenge,
		day,
		strconv.FormatFloat(e.TimeSpent.Minutes(), 'f', -1, 64),
		strings.Join(e.Tags, ", "),
		string(e.Status),
		e.KeyTakeaway,
		e.Doubts,
		e.Content,
		strconv.Itoa(e.Views),
	}
}

func WriteCSV(w io.Writer, entries []*models.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(row(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, entries []*models.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(e)
		cells := make([]any, len(values))
		for j, v := range values {
			cells[j] = v
		}
		// numeric columns stay numeric so spreadsheets can sum them
		cells[5] = e.TimeSpent.Minutes()
		cells[11] = e.Views
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 30); err != nil {
		return err
	}

	return f.Write(w)
}
