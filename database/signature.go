package database

import (
	"errors"
	"net/url"
	"time"

	"gorm.io/gorm"
)

// Signature holds one signing record. The unique index on UserID enforces
// the at-most-one-signature-per-user rule the rest of the application
// assumes. Rows are hard-deleted on unsign so the index never blocks a
// re-sign.
type Signature struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"uniqueIndex;not null"`
	Body      *string
	CreatedAt time.Time
}

// Signer is one row of the public signer listing; profile fields are nil
// when the signer never filled a profile.
type Signer struct {
	FirstName   string
	LastName    string
	Age         *int
	City        *string
	HomepageURL *string
}

// CreateSignature inserts a signing record and returns its id. A second
// signature for the same user surfaces as ErrUniqueViolation.
func CreateSignature(db *gorm.DB, userID uint, body *string) (uint, error) {
	sig := Signature{
		UserID: userID,
		Body:   body,
	}

	res := db.Create(&sig)
	if res.Error != nil {
		return 0, classify(res.Error)
	}

	return sig.ID, nil
}

func DeleteSignature(db *gorm.DB, id uint) error {
	res := db.Delete(&Signature{}, id)

	return classify(res.Error)
}

// GetSignatureByID returns the stored signature image for id, nil when the
// row is absent or holds no image.
func GetSignatureByID(db *gorm.DB, id uint) (*string, error) {
	var sig Signature

	res := db.First(&sig, id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, res.Error
	}

	return sig.Body, nil
}

func CountSigners(db *gorm.DB) (int64, error) {
	var count int64

	res := db.Model(&Signature{}).Count(&count)
	if res.Error != nil {
		return 0, res.Error
	}

	return count, nil
}

func ListSigners(db *gorm.DB) ([]Signer, error) {
	var signers []Signer

	res := db.Raw(`
		SELECT users.first_name,
		       users.last_name,
		       profiles.age,
		       profiles.city,
		       profiles.homepage_url
		FROM signatures
		LEFT JOIN users
		ON signatures.user_id = users.id
		LEFT JOIN profiles
		ON signatures.user_id = profiles.user_id
	`).Scan(&signers)

	if res.Error != nil {
		return nil, res.Error
	}

	return signers, nil
}

func ListSignersByCity(db *gorm.DB, city string) ([]Signer, error) {
	var signers []Signer

	res := db.Raw(`
		SELECT users.first_name,
		       users.last_name,
		       profiles.age,
		       profiles.city,
		       profiles.homepage_url
		FROM signatures
		LEFT JOIN users
		ON signatures.user_id = users.id
		LEFT JOIN profiles
		ON signatures.user_id = profiles.user_id
		WHERE LOWER(profiles.city) = LOWER(?)
	`, city).Scan(&signers)

	if res.Error != nil {
		return nil, res.Error
	}

	return signers, nil
}

// NormalizeURL prefixes bare homepage values with http:// so they render as
// absolute links. Already-qualified URLs pass through unchanged.
func NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		return raw
	}

	return "http://" + raw
}
