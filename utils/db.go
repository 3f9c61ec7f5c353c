package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
)

// InitDB mendaftarkan koneksi database global sekali di startup;
// pemanggilan berikutnya diabaikan.
func InitDB(database *gorm.DB) {
	dbOnce.Do(func() {
		db = database
	})
}

// GetDB mengembalikan koneksi yang didaftarkan lewat InitDB.
func GetDB() *gorm.DB {
	return db
}
