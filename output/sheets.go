package output

import (
	"context"
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"value-rating/model"
)

// SheetsClient writes ranked results into one tab of a spreadsheet.
type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	log           logrus.FieldLogger
}

// NewSheetsClient authenticates with a service account key and resolves the
// spreadsheet from its browser URL.
func NewSheetsClient(ctx context.Context, credentialsJSON []byte, sheetURL, sheetName string, log logrus.FieldLogger) (*SheetsClient, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	jwt, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("sheets credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	spreadsheetID, err := extractSpreadsheetID(sheetURL)
	if err != nil {
		return nil, err
	}

	return &SheetsClient{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		log:           log,
	}, nil
}

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

func extractSpreadsheetID(sheetURL string) (string, error) {
	matches := spreadsheetIDPattern.FindStringSubmatch(sheetURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("no spreadsheet ID in %q", sheetURL)
	}
	return matches[1], nil
}

// sheetRows renders results as typed cells, same layout as the CSV export.
func sheetRows(results []model.RatingResult) [][]interface{} {
	headers := Headers()
	rows := make([][]interface{}, 0, len(results)+1)

	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	rows = append(rows, head)

	for i := range results {
		row := make([]interface{}, len(columns))
		for j, c := range columns {
			row[j] = c.value(&results[i])
		}
		rows = append(rows, row)
	}
	return rows
}

// UploadResults replaces the sheet contents with the ranked results.
func (c *SheetsClient) UploadResults(ctx context.Context, results []model.RatingResult) error {
	rows := sheetRows(results)

	clearRange := fmt.Sprintf("%s!A:ZZ", c.sheetName)
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	writeRange := fmt.Sprintf("%s!A1", c.sheetName)
	valueRange := &sheets.ValueRange{
		Values: rows,
	}

	_, err = c.service.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", writeRange, err)
	}

	c.log.WithFields(logrus.Fields{
		"sheet":   c.sheetName,
		"players": len(results),
	}).Info("uploaded ratings to sheet")
	return nil
}
