package common

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// HashService wraps bcrypt with separate costs for passwords and OTPs.
type HashService struct {
	passwordCost int
	otpCost      int
}

func NewHashService(otpCost int) *HashService {
	return &HashService{passwordCost: bcrypt.DefaultCost, otpCost: otpCost}
}

func (h *HashService) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(b), nil
}

func (h *HashService) HashOTP(otp string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(otp), h.otpCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}
	return string(b), nil
}

// Compare reports whether plain matches a bcrypt hash of either kind.
func (h *HashService) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// GenerateOTP returns a 6-digit code in [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
