package database

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	FirstName    string `gorm:"not null"`
	LastName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// Credentials is the login-time view of a user: the account row joined
// against signatures so the caller learns in one query whether the user has
// already signed. SigID is nil for unsigned users.
type Credentials struct {
	UserID       uint
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	SigID        *uint
}

// CreateUser inserts a registration. Empty required fields are rejected
// with ErrNotNullViolation before the statement runs; a duplicate email
// surfaces as ErrUniqueViolation.
func CreateUser(db *gorm.DB, first, last, email, passwordHash string) (*User, error) {
	if anyBlank(first, last, email, passwordHash) {
		return nil, ErrNotNullViolation
	}

	user := User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: passwordHash,
	}

	res := db.Create(&user)
	if res.Error != nil {
		return nil, classify(res.Error)
	}

	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*Credentials, error) {
	var rows []Credentials

	res := db.Raw(`
		SELECT users.id AS user_id,
		       users.first_name,
		       users.last_name,
		       users.email,
		       users.password_hash,
		       signatures.id AS sig_id
		FROM users
		LEFT JOIN signatures
		ON signatures.user_id = users.id
		WHERE users.email = ?
		AND users.deleted_at IS NULL
	`, email).Scan(&rows)

	if res.Error != nil {
		return nil, res.Error
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// UpdateUser rewrites name and email, leaving the stored password hash
// untouched.
func UpdateUser(db *gorm.DB, first, last, email string, userID uint) error {
	if anyBlank(first, last, email) {
		return ErrNotNullViolation
	}

	res := db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"first_name": first,
		"last_name":  last,
		"email":      email,
	})

	return classify(res.Error)
}

// UpdateUserWithPassword is the variant used when the edit form carried a
// new password.
func UpdateUserWithPassword(db *gorm.DB, first, last, email, passwordHash string, userID uint) error {
	if anyBlank(first, last, email, passwordHash) {
		return ErrNotNullViolation
	}

	res := db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"first_name":    first,
		"last_name":     last,
		"email":         email,
		"password_hash": passwordHash,
	})

	return classify(res.Error)
}

func anyBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}

	return false
}
