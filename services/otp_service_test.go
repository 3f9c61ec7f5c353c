package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

func setupOtpTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.OtpRequest{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestRequestAndVerifyOtp(t *testing.T) {
	db := setupOtpTestDB(t)
	svc := NewOtpService(db)

	otpID, err := svc.RequestOtp("+628123456789")
	assert.NoError(t, err)
	assert.NotEmpty(t, otpID)

	var req models.OtpRequest
	assert.NoError(t, db.First(&req, "id = ?", otpID).Error)
	assert.Len(t, req.Code, 6)

	assert.NoError(t, svc.VerifyOtp("+628123456789", req.Code, otpID))

	// Kode yang sudah terpakai tidak bisa dipakai ulang
	assert.ErrorIs(t, svc.VerifyOtp("+628123456789", req.Code, otpID), ErrOtpNotFound)
}

func TestVerifyOtpWrongCode(t *testing.T) {
	db := setupOtpTestDB(t)
	svc := NewOtpService(db)

	otpID, err := svc.RequestOtp("+628123456789")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyOtp("+628123456789", "000000", otpID), ErrOtpInvalid)

	var req models.OtpRequest
	assert.NoError(t, db.First(&req, "id = ?", otpID).Error)
	assert.Equal(t, 1, req.Attempts)
}

func TestVerifyOtpMaxAttempts(t *testing.T) {
	db := setupOtpTestDB(t)
	svc := NewOtpService(db)

	otpID, err := svc.RequestOtp("+628123456789")
	assert.NoError(t, err)

	for i := 0; i < otpMaxAttempts; i++ {
		assert.ErrorIs(t, svc.VerifyOtp("+628123456789", "000000", otpID), ErrOtpInvalid)
	}

	var req models.OtpRequest
	assert.NoError(t, db.First(&req, "id = ?", otpID).Error)

	// Percobaan habis -> kode benar pun ditolak
	assert.ErrorIs(t, svc.VerifyOtp("+628123456789", req.Code, otpID), ErrOtpExpired)
}

func TestVerifyOtpExpired(t *testing.T) {
	db := setupOtpTestDB(t)
	svc := NewOtpService(db)

	otpID, err := svc.RequestOtp("+628123456789")
	assert.NoError(t, err)

	assert.NoError(t, db.Model(&models.OtpRequest{}).
		Where("id = ?", otpID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	var req models.OtpRequest
	assert.NoError(t, db.First(&req, "id = ?", otpID).Error)
	assert.ErrorIs(t, svc.VerifyOtp("+628123456789", req.Code, otpID), ErrOtpExpired)
}

func TestVerifyOtpWrongID(t *testing.T) {
	db := setupOtpTestDB(t)
	svc := NewOtpService(db)

	assert.ErrorIs(t, svc.VerifyOtp("+628123456789", "123456", "no-such-id"), ErrOtpNotFound)
}
