// Package i18n holds the localized response messages and the per-request
// language carried in the context.
package i18n

import (
	"context"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	supported = []language.Tag{language.English, language.Indonesian}
	matcher   = language.NewMatcher(supported)
	builder   = catalog.NewBuilder(catalog.Fallback(language.English))

	defaultMu  sync.RWMutex
	defaultTag = language.English
)

var messages = map[language.Tag]map[string]string{
	language.English: {
		"success.data_received":          "%d data received",
		"success.data_found":             "data has been received",
		"success.data_added":             "data has been added",
		"success.data_updated":           "data has been updated",
		"success.data_deleted":           "data has been deleted",
		"success.data_restored":          "data has been restored",
		"success.login":                  "login successfully",
		"success.logout":                 "logout successfully",
		"success.register":               "registration successful, please check your phone for the OTP code",
		"success.otp_verified":           "OTP code verified successfully",
		"success.otp_sent":               "a new OTP code has been sent",
		"success.session_valid":          "session is valid",
		"success.live_joined":            "you have joined the live room",
		"success.live_left":              "you have left the live room",
		"success.live_stopped":           "live room has been stopped",
		"errors.not_found":               "%s data not found or has been deleted",
		"errors.account_not_found":       "account not found or has been deleted",
		"errors.incorrect_email_or_pass": "incorrect email or password",
		"errors.cant_be_empty":           "can't be empty",
		"errors.invalid_otp":             "please enter a valid OTP code",
		"errors.otp_expired":             "OTP code has expired",
		"errors.account_blocked":         "your account has been blocked",
		"errors.account_verified":        "account is already verified",
		"errors.unauthorized":            "unauthorized, please login",
		"errors.permission_access":       "you do not have permission to access this resource",
		"errors.session_expired":         "session has expired, please login again",
		"errors.live_ended":              "live room has ended",
		"errors.validation":              "validation failed",
		"errors.internal":                "something went wrong, please try again later",
		"errors.invalid_id":              "invalid id",
		"errors.invalid_body":            "invalid request body",
		"errors.already_exists":          "%s already exists",
		"errors.not_room_owner":          "you are not the host of this live room",
		"errors.invalid_host":            "host must be an active host or admin account",
		"errors.still_hosting":           "user still hosts live rooms",
		"errors.too_many_requests":       "too many requests, please try again later",
		"otp.sms_text":                   "%s verification code: %s. Valid for %d minutes.",
	},
	language.Indonesian: {
		"success.data_received":          "%d data diterima",
		"success.data_found":             "data telah diterima",
		"success.data_added":             "data berhasil ditambahkan",
		"success.data_updated":           "data berhasil diperbarui",
		"success.data_deleted":           "data berhasil dihapus",
		"success.data_restored":          "data berhasil dipulihkan",
		"success.login":                  "berhasil masuk",
		"success.logout":                 "berhasil keluar",
		"success.register":               "registrasi berhasil, silakan cek kode OTP di ponsel anda",
		"success.otp_verified":           "verifikasi kode otp berhasil",
		"success.otp_sent":               "kode OTP baru telah dikirim",
		"success.session_valid":          "sesi valid",
		"success.live_joined":            "anda telah bergabung ke live",
		"success.live_left":              "anda telah keluar dari live",
		"success.live_stopped":           "live telah dihentikan",
		"errors.not_found":               "data %s tidak ditemukan atau telah dihapus",
		"errors.account_not_found":       "akun tidak ditemukan atau telah dihapus",
		"errors.incorrect_email_or_pass": "email atau kata sandi salah",
		"errors.cant_be_empty":           "tidak boleh kosong",
		"errors.invalid_otp":             "harap masukan code otp yang sesuai",
		"errors.otp_expired":             "code otp sudah kadaluarsa",
		"errors.account_blocked":         "akun anda telah diblokir",
		"errors.account_verified":        "akun sudah terverifikasi",
		"errors.unauthorized":            "tidak diizinkan, silakan masuk",
		"errors.permission_access":       "anda tidak memiliki akses ke sumber daya ini",
		"errors.session_expired":         "sesi telah berakhir, silakan masuk kembali",
		"errors.live_ended":              "live telah berakhir",
		"errors.validation":              "validasi gagal",
		"errors.internal":                "terjadi kesalahan, silakan coba lagi nanti",
		"errors.invalid_id":              "id tidak valid",
		"errors.invalid_body":            "isi permintaan tidak valid",
		"errors.already_exists":          "%s sudah digunakan",
		"errors.not_room_owner":          "anda bukan host dari live ini",
		"errors.invalid_host":            "host harus akun host atau admin yang aktif",
		"errors.still_hosting":           "pengguna masih menjadi host live",
		"errors.too_many_requests":       "terlalu banyak permintaan, silakan coba lagi nanti",
		"otp.sms_text":                   "Kode verifikasi %s: %s. Berlaku %d menit.",
	},
}

func init() {
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := builder.SetString(tag, key, msg); err != nil {
				panic("i18n: " + key + ": " + err.Error())
			}
		}
	}
}

// SetDefault sets the language used when a request does not ask for one.
func SetDefault(lang string) {
	tag := Resolve(lang)
	defaultMu.Lock()
	defaultTag = tag
	defaultMu.Unlock()
}

// Default returns the configured fallback language.
func Default() language.Tag {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultTag
}

// Resolve picks the first candidate (a tag or an Accept-Language value) that
// matches a supported language, falling back to Default.
func Resolve(candidates ...string) language.Tag {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(c)
		if err != nil || len(tags) == 0 {
			continue
		}
		if _, idx, conf := matcher.Match(tags...); conf != language.No {
			return supported[idx]
		}
	}
	return Default()
}

// T returns the message for key in tag, formatted with args.
func T(tag language.Tag, key string, args ...interface{}) string {
	p := message.NewPrinter(tag, message.Catalog(builder))
	return p.Sprintf(key, args...)
}

type contextKey string

var languageKey contextKey = "language"

func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, languageKey, tag)
}

// FromContext returns the request language or Default.
func FromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(languageKey).(language.Tag); ok {
		return tag
	}
	return Default()
}

// Tc is T using the language stored in ctx.
func Tc(ctx context.Context, key string, args ...interface{}) string {
	return T(FromContext(ctx), key, args...)
}
