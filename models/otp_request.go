package models

import "time"

// OtpRequest menyimpan satu kode OTP yang dikirim ke nomor telepon.
// ID (uuid) dipegang bot di temporary data sebagai otp_id.
type OtpRequest struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Phone     string `gorm:"type:varchar(20);not null;index" json:"phone"`
	Code      string `gorm:"type:varchar(10);not null" json:"-"`
	Attempts  int    `gorm:"not null;default:0" json:"attempts"`
	Used      bool   `gorm:"not null;default:false" json:"used"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
