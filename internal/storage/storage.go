// Package storage persists parsed transactions in a local sqlite database.
// The service is single-tenant with a single active statement: the upload
// flow clears the table before saving a new parse, and that clear-then-save
// sequence only runs after a fully successful parse.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// transactionRecord is the persisted row shape. RawData is serialized JSON.
type transactionRecord struct {
	ID          string    `gorm:"primary_key;size:36"`
	Date        time.Time `gorm:"not null;index"`
	Description string    `gorm:"type:text"`
	Amount      float64   `gorm:"not null"`
	Currency    string    `gorm:"size:3"`
	Type        string    `gorm:"size:6;not null"`
	Category    string    `gorm:"size:64"`
	Balance     *float64
	RawData     string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (transactionRecord) TableName() string { return "transactions" }

// Store is a gorm-backed transaction store.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and migrates
// the transactions table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := db.AutoMigrate(&transactionRecord{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate transactions table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the transactions, assigning an ID to any that lack one.
func (s *Store) Save(txns []models.Transaction) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin save: %w", tx.Error)
	}
	for _, t := range txns {
		rec, err := toRecord(t)
		if err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("save transaction: %w", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// GetAll returns every stored transaction ordered by date descending.
func (s *Store) GetAll() ([]models.Transaction, error) {
	var records []transactionRecord
	if err := s.db.Order("date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	txns := make([]models.Transaction, 0, len(records))
	for _, rec := range records {
		t, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// ClearAll deletes every stored transaction.
func (s *Store) ClearAll() error {
	if err := s.db.Delete(&transactionRecord{}).Error; err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	return nil
}

func toRecord(t models.Transaction) (transactionRecord, error) {
	id := t.ID
	if id == "" {
		id = uuid.NewString()
	}
	raw := "{}"
	if len(t.RawData) > 0 {
		data, err := json.Marshal(t.RawData)
		if err != nil {
			return transactionRecord{}, fmt.Errorf("encode raw data: %w", err)
		}
		raw = string(data)
	}
	return transactionRecord{
		ID:          id,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Type:        string(t.Type),
		Category:    t.Category,
		Balance:     t.Balance,
		RawData:     raw,
	}, nil
}

func fromRecord(rec transactionRecord) (models.Transaction, error) {
	t := models.Transaction{
		ID:          rec.ID,
		Date:        rec.Date,
		Description: rec.Description,
		Amount:      rec.Amount,
		Currency:    rec.Currency,
		Type:        models.TxnType(rec.Type),
		Category:    rec.Category,
		Balance:     rec.Balance,
	}
	if rec.RawData != "" && rec.RawData != "{}" {
		if err := json.Unmarshal([]byte(rec.RawData), &t.RawData); err != nil {
			return t, fmt.Errorf("decode raw data for %s: %w", rec.ID, err)
		}
	}
	return t, nil
}
