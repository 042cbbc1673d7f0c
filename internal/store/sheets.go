package store

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsStore: implementasi RowStore di atas Google Sheets, sesuai deployment
// asli warung (satu spreadsheet, satu worksheet per tabel). Autentikasi pakai
// service account JSON.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheetsStore(ctx context.Context, credentialsPath, spreadsheetID string) (*SheetsStore, error) {
	credBytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("tidak bisa baca file credentials: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credBytes, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("credentials tidak valid: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("tidak bisa membuat Sheets service: %w", err)
	}

	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsStore) ListRows(table string) ([][]string, error) {
	readRange := fmt.Sprintf("'%s'!A2:Z", table)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Do()
	if err != nil {
		return nil, fmt.Errorf("baca baris %q gagal: %w", table, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *SheetsStore) AppendRow(table string, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, fmt.Sprintf("'%s'!A1", table), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Do()
	if err != nil {
		return fmt.Errorf("tambah baris %q gagal: %w", table, err)
	}
	return nil
}

func (s *SheetsStore) UpdateCell(table string, rowIndex, colIndex int, value string) error {
	// +2: lewati header dan geser ke 1-based
	cell := fmt.Sprintf("'%s'!%s%d", table, columnLetter(colIndex), rowIndex+2)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}

	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, cell, vr).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("update sel %q gagal: %w", table, err)
	}
	return nil
}

func (s *SheetsStore) DeleteRow(table string, rowIndex int) error {
	sheetID, err := s.sheetID(table)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex + 1), // 0-based, baris 0 = header
					EndIndex:   int64(rowIndex + 2),
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Do(); err != nil {
		return fmt.Errorf("hapus baris %q gagal: %w", table, err)
	}
	return nil
}

func (s *SheetsStore) EnsureTable(table string, header []string) error {
	if _, err := s.sheetID(table); err != nil {
		addReq := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: table},
				},
			}},
		}
		if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, addReq).Do(); err != nil {
			return fmt.Errorf("buat sheet %q gagal: %w", table, err)
		}
	}

	// Tulis header kalau baris pertama masih kosong
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, fmt.Sprintf("'%s'!1:1", table)).Do()
	if err != nil {
		return fmt.Errorf("cek header %q gagal: %w", table, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		values := make([]interface{}, len(header))
		for i, h := range header {
			values[i] = h
		}
		vr := &sheets.ValueRange{Values: [][]interface{}{values}}
		_, err := s.svc.Spreadsheets.Values.
			Update(s.spreadsheetID, fmt.Sprintf("'%s'!A1", table), vr).
			ValueInputOption("RAW").
			Do()
		if err != nil {
			return fmt.Errorf("tulis header %q gagal: %w", table, err)
		}
	}
	return nil
}

func (s *SheetsStore) sheetID(table string) (int64, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Do()
	if err != nil {
		return 0, fmt.Errorf("baca spreadsheet gagal: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == table {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q tidak ditemukan", table)
}

// columnLetter: 0 -> A, 1 -> B, dst. Tabel kita maksimal 6 kolom.
func columnLetter(col int) string {
	return string(rune('A' + col))
}
