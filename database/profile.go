package database

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Profile is the optional per-user extension. Optional fields are pointers
// so that blank form input persists as NULL rather than a zero value.
type Profile struct {
	ID          uint `gorm:"primarykey"`
	UserID      uint `gorm:"uniqueIndex;not null"`
	Age         *int
	City        *string
	HomepageURL *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileRecord is the user row joined against its profile, used to prefill
// the edit form. Profile fields are nil when no profile row exists.
type ProfileRecord struct {
	FirstName   string
	LastName    string
	Email       string
	Age         *int
	City        *string
	HomepageURL *string
}

func GetProfile(db *gorm.DB, userID uint) (*ProfileRecord, error) {
	var rows []ProfileRecord

	res := db.Raw(`
		SELECT users.first_name,
		       users.last_name,
		       users.email,
		       profiles.age,
		       profiles.city,
		       profiles.homepage_url
		FROM users
		LEFT JOIN profiles
		ON users.id = profiles.user_id
		WHERE users.id = ?
		AND users.deleted_at IS NULL
	`, userID).Scan(&rows)

	if res.Error != nil {
		return nil, res.Error
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// UpsertProfile inserts the profile row for userID or, when one already
// exists, overwrites all of its fields. City is trimmed before storage and
// blank strings store as NULL.
func UpsertProfile(db *gorm.DB, userID uint, age *int, city, homepageURL string) error {
	profile := Profile{
		UserID:      userID,
		Age:         age,
		City:        nullableString(strings.TrimSpace(city)),
		HomepageURL: nullableString(homepageURL),
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"age", "city", "homepage_url", "updated_at"}),
	}).Create(&profile)

	return classify(res.Error)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
