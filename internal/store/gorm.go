package store

import (
	"encoding/json"
	"fmt"
	"log"

	"kasir-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// GormStore: implementasi RowStore di atas database relasional. Sel tiap
// baris disimpan sebagai array JSON, urutan insert dijaga lewat Position.
type GormStore struct {
	db *gorm.DB
}

// ConnectPostgres: koneksi Postgres untuk production, fatal kalau gagal
func ConnectPostgres(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa konek ke database: %v", err)
	}
	return db
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&models.Sheet{}, &models.SheetRow{}); err != nil {
		return nil, fmt.Errorf("AutoMigrate gagal: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) ListRows(table string) ([][]string, error) {
	var recs []models.SheetRow
	if err := s.db.Where("sheet = ?", table).
		Order("position asc, id asc").
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("baca baris %q gagal: %w", table, err)
	}

	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		var cells []string
		if err := json.Unmarshal([]byte(rec.Cells), &cells); err != nil {
			return nil, fmt.Errorf("sel baris %q (id=%d) rusak: %w", table, rec.ID, err)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (s *GormStore) AppendRow(table string, row []string) error {
	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode sel gagal: %w", err)
	}

	var maxPos int
	if err := s.db.Model(&models.SheetRow{}).
		Where("sheet = ?", table).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error; err != nil {
		return fmt.Errorf("hitung posisi %q gagal: %w", table, err)
	}

	rec := models.SheetRow{Sheet: table, Position: maxPos + 1, Cells: string(cells)}
	if err := s.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("tambah baris %q gagal: %w", table, err)
	}
	return nil
}

func (s *GormStore) UpdateCell(table string, rowIndex, colIndex int, value string) error {
	rec, cells, err := s.rowAt(table, rowIndex)
	if err != nil {
		return err
	}
	if colIndex < 0 || colIndex >= len(cells) {
		return fmt.Errorf("kolom %d di luar jangkauan untuk %q (baris %d)", colIndex, table, rowIndex)
	}

	cells[colIndex] = value
	encoded, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("encode sel gagal: %w", err)
	}
	if err := s.db.Model(&models.SheetRow{}).
		Where("id = ?", rec.ID).
		Update("cells", string(encoded)).Error; err != nil {
		return fmt.Errorf("update sel %q gagal: %w", table, err)
	}
	return nil
}

func (s *GormStore) DeleteRow(table string, rowIndex int) error {
	rec, _, err := s.rowAt(table, rowIndex)
	if err != nil {
		return err
	}
	if err := s.db.Delete(&models.SheetRow{}, rec.ID).Error; err != nil {
		return fmt.Errorf("hapus baris %q gagal: %w", table, err)
	}
	return nil
}

func (s *GormStore) EnsureTable(table string, header []string) error {
	encoded, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("encode header gagal: %w", err)
	}
	sheet := models.Sheet{Name: table, Header: string(encoded)}
	if err := s.db.Where("name = ?", table).
		FirstOrCreate(&sheet).Error; err != nil {
		return fmt.Errorf("siapkan tabel %q gagal: %w", table, err)
	}
	return nil
}

func (s *GormStore) rowAt(table string, rowIndex int) (models.SheetRow, []string, error) {
	if rowIndex < 0 {
		return models.SheetRow{}, nil, fmt.Errorf("index baris %d tidak valid", rowIndex)
	}
	var rec models.SheetRow
	err := s.db.Where("sheet = ?", table).
		Order("position asc, id asc").
		Offset(rowIndex).
		First(&rec).Error
	if err != nil {
		return models.SheetRow{}, nil, fmt.Errorf("baris %d di %q tidak ditemukan: %w", rowIndex, table, err)
	}
	var cells []string
	if err := json.Unmarshal([]byte(rec.Cells), &cells); err != nil {
		return models.SheetRow{}, nil, fmt.Errorf("sel baris %q (id=%d) rusak: %w", table, rec.ID, err)
	}
	return rec, cells, nil
}
