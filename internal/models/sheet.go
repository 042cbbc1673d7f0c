package models

import "time"

// Model gorm untuk row store berbasis database. Satu SheetRow = satu baris
// data sebuah sheet; sel disimpan sebagai array JSON di kolom teks, urutan
// baris mengikuti Position (urutan insert).

type Sheet struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:50;uniqueIndex;not null"`
	Header    string `gorm:"size:255;not null"` // array JSON nama kolom
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SheetRow struct {
	ID        uint   `gorm:"primaryKey"`
	Sheet     string `gorm:"size:50;index;not null"`
	Position  int    `gorm:"index;not null"`
	Cells     string `gorm:"type:text;not null"` // array JSON isi sel
	CreatedAt time.Time
	UpdatedAt time.Time
}
