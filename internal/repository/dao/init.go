package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Team{},
		&Tournament{},
		&Match{},
		&Pool{},
		&ScoringRuleSet{},
		&PoolParticipant{},
		&Prediction{},
	)
}

// DropTables removes every table InitTables creates. Only the integration tests call it.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&Prediction{},
		&PoolParticipant{},
		&ScoringRuleSet{},
		&Pool{},
		&Match{},
		&Tournament{},
		&Team{},
		&User{},
	)
}

// isUniqueViolation reports whether err is a postgres unique violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, `"`+constraint+`"`)
}
