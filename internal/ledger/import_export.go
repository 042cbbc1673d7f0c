package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"kasir-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// Urutan kolom CSV tetap: Tanggal,Nama,Barang,Jumlah,Harga Satuan,Total

// ImportCSV: import massal ke satu tingkat. Baris rusak hanya dilewati
// (skipped), tidak pernah membatalkan batch.
func (s *Service) ImportCSV(tingkat int, data string) (*ImportResult, error) {
	if !models.ValidTingkat(tingkat) {
		return nil, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
	}

	rd := csv.NewReader(strings.NewReader(data))
	rd.FieldsPerRecord = -1
	rd.TrimLeadingSpace = true

	res := &ImportResult{}
	first := true
	for {
		rec, err := rd.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}

		if first {
			first = false
			if isHeaderRow(rec) {
				continue
			}
		}

		if len(rec) < 6 {
			res.Skipped++
			continue
		}

		tanggal := strings.TrimSpace(rec[models.ColTanggal])
		nama := strings.TrimSpace(rec[models.ColNama])
		barang := strings.TrimSpace(rec[models.ColBarang])
		jumlah := strings.TrimSpace(rec[models.ColJumlah])
		harga := strings.TrimSpace(rec[models.ColHargaSatuan])

		total, err := models.ParseAmount(rec[models.ColTotal])
		if nama == "" || err != nil || total <= 0 {
			res.Skipped++
			continue
		}

		_, merged, err := s.upsert(tingkat, nama, barang, jumlah, harga, tanggal, total)
		if err != nil {
			res.Skipped++
			continue
		}
		if merged {
			res.Merged++
		} else {
			res.Imported++
		}
	}
	return res, nil
}

// Toleransi dua konvensi header: sheet Indonesia ("Tanggal,Nama,...") dan
// konvensi export Inggris ("date,name,..."), keduanya case-insensitive.
func isHeaderRow(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	c0 := strings.ToLower(strings.TrimSpace(rec[0]))
	c1 := strings.ToLower(strings.TrimSpace(rec[1]))
	return (c0 == "tanggal" || c0 == "date") && (c1 == "nama" || c1 == "name")
}

// ExportCSV: seluruh isi tabel tingkat sebagai CSV (header + data).
// Return string kosong kalau tabel belum punya baris data.
func (s *Service) ExportCSV(tingkat int) (string, error) {
	if !models.ValidTingkat(tingkat) {
		return "", fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
	}

	rows, err := s.store.ListRows(models.TingkatTable(tingkat))
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(models.TingkatHeader); err != nil {
		return "", fmt.Errorf("tulis CSV gagal: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("tulis CSV gagal: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("tulis CSV gagal: %w", err)
	}
	return buf.String(), nil
}

// ExportXLSX: tabel tingkat sebagai workbook Excel. Return nil kalau kosong.
func (s *Service) ExportXLSX(tingkat int) ([]byte, error) {
	if !models.ValidTingkat(tingkat) {
		return nil, fmt.Errorf("%w: tingkat harus 1-4", ErrInvalidInput)
	}

	rows, err := s.store.ListRows(models.TingkatTable(tingkat))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := models.TingkatTable(tingkat)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("tulis XLSX gagal: %w", err)
	}

	header := make([]interface{}, len(models.TingkatHeader))
	for i, h := range models.TingkatHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("tulis XLSX gagal: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("tulis XLSX gagal: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("tulis XLSX gagal: %w", err)
	}
	return buf.Bytes(), nil
}
