package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Appender implements domain.RowAppender on top of the Google Sheets
// API, scoped to one spreadsheet and range. Authentication comes from
// the passed client options (service-account JSON, ADC, ...).
type Appender struct {
	svc           *sheets.Service
	spreadsheetID string
	writeRange    string
}

func New(ctx context.Context, spreadsheetID, writeRange string, opts ...option.ClientOption) (*Appender, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheetID is required")
	}
	if writeRange == "" {
		writeRange = "A:F"
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Appender{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

func (a *Appender) AppendRow(ctx context.Context, columns []string) error {
	values := make([]interface{}, len(columns))
	for i, c := range columns {
		values[i] = c
	}

	vr := &sheets.ValueRange{
		Values: [][]interface{}{values},
	}

	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.writeRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}
