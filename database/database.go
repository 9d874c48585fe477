package database

import (
	"sync"

	"gorm.io/gorm"
)

var db *gorm.DB
var initOnce sync.Once

func InitDatabase(d *gorm.DB) {
	initOnce.Do(func() {
		d.AutoMigrate(&User{}, &Profile{}, &Signature{})
		db = d
	})
}

func GetDatabase() *gorm.DB {
	return db
}
