package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

const (
	otpTTL         = 5 * time.Minute
	otpMaxAttempts = 3
)

var (
	ErrOtpNotFound = errors.New("otp request not found")
	ErrOtpExpired  = errors.New("otp code expired")
	ErrOtpInvalid  = errors.New("otp code invalid")
)

type OtpService struct {
	DB *gorm.DB
}

func NewOtpService(db *gorm.DB) *OtpService {
	return &OtpService{DB: db}
}

// RequestOtp membuat kode 6 digit untuk satu nomor dan mengembalikan otp_id.
// Pengiriman SMS di luar cakupan; kode ditulis ke log untuk development.
func (os *OtpService) RequestOtp(phone string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", err
	}

	req := models.OtpRequest{
		ID:        uuid.NewString(),
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := os.DB.Create(&req).Error; err != nil {
		return "", err
	}

	utils.InfoLogger.Printf("OTP issued for %s (otp_id=%s, code=%s)", phone, req.ID, code)
	return req.ID, nil
}

// VerifyOtp memvalidasi kode terhadap otp_id. Sukses menandai request terpakai;
// gagal menambah hitungan percobaan.
func (os *OtpService) VerifyOtp(phone, code, otpID string) error {
	var req models.OtpRequest
	if err := os.DB.Where("id = ? AND phone = ? AND used = ?", otpID, phone, false).
		First(&req).Error; err != nil {
		return ErrOtpNotFound
	}

	if time.Now().After(req.ExpiresAt) || req.Attempts >= otpMaxAttempts {
		return ErrOtpExpired
	}

	if req.Code != code {
		os.DB.Model(&req).Update("attempts", req.Attempts+1)
		return ErrOtpInvalid
	}

	return os.DB.Model(&req).Update("used", true).Error
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
