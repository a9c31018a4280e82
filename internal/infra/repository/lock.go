package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// lockDate takes a transaction scoped advisory lock for one calendar date.
// Bookings and availability edits of the same date run one at a time;
// different dates never contend.
func lockDate(tx *gorm.DB, date string) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "clinic-day:"+date).Error
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
