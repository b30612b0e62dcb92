package db

import (
	"bookingapi/booking/model"
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bookingRow keeps each booking as one JSON document keyed by id, so the table behaves
// like the key-value store the handlers run against in AWS.
type bookingRow struct {
	Id           string `gorm:"primaryKey"`
	CurrentState string `gorm:"not null"`
}

type BookingSqlDao struct {
	db        *gorm.DB
	tableName string
}

// NewBookingSqlDao migrates the bookings table and returns a dao over it.
func NewBookingSqlDao(db *gorm.DB, tableName string) (*BookingSqlDao, error) {
	if err := db.Table(tableName).AutoMigrate(&bookingRow{}); err != nil {
		return nil, err
	}
	return &BookingSqlDao{db: db, tableName: tableName}, nil
}

// OpenDatabase connects to PostgreSQL for postgres:// URLs and to SQLite otherwise.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)
	return gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
}

func (dao *BookingSqlDao) PutBooking(ctx context.Context, booking model.BookingRecord) error {
	currentState, err := json.Marshal(booking)
	if err != nil {
		return err
	}

	row := bookingRow{Id: booking.Id, CurrentState: string(currentState)}
	return dao.db.WithContext(ctx).
		Table(dao.tableName).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (dao *BookingSqlDao) GetBooking(ctx context.Context, id string) (model.BookingRecord, bool, error) {
	var row bookingRow
	err := dao.db.WithContext(ctx).Table(dao.tableName).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BookingRecord{}, false, nil
	}
	if err != nil {
		return model.BookingRecord{}, false, err
	}

	var booking model.BookingRecord
	if err = json.Unmarshal([]byte(row.CurrentState), &booking); err != nil {
		return model.BookingRecord{}, false, err
	}
	return booking, true, nil
}

func (dao *BookingSqlDao) ScanBookings(ctx context.Context) ([]model.BookingRecord, error) {
	var rows []bookingRow
	if err := dao.db.WithContext(ctx).Table(dao.tableName).Find(&rows).Error; err != nil {
		return nil, err
	}

	bookings := make([]model.BookingRecord, 0, len(rows))
	for _, row := range rows {
		var booking model.BookingRecord
		if err := json.Unmarshal([]byte(row.CurrentState), &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (dao *BookingSqlDao) DeleteBooking(ctx context.Context, id string) error {
	return dao.db.WithContext(ctx).Table(dao.tableName).Where("id = ?", id).Delete(&bookingRow{}).Error
}
