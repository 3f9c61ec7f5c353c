package locales

import "fmt"

// Kode tombol stabil untuk dispatch; teks label hanya untuk tampilan.
// State machine memutuskan berdasarkan kode, bukan caption (lihat CodeForLabel).
const (
	BtnMenu      = "menu"
	BtnCart      = "cart"
	BtnAddresses = "addresses"
	BtnSettings  = "settings"
	BtnBack      = "back"
)

// Localizer memetakan key + locale (+ argumen) menjadi teks pesan.
type Localizer struct {
	Default string
}

func New(defaultLocale string) *Localizer {
	if _, ok := messages[defaultLocale]; !ok {
		defaultLocale = "en"
	}
	return &Localizer{Default: defaultLocale}
}

// Supported mengembalikan daftar locale yang tersedia.
func (l *Localizer) Supported() []string { return []string{"en", "id"} }

func (l *Localizer) IsSupported(code string) bool {
	_, ok := messages[code]
	return ok
}

// T me-resolve key ke teks pada locale tertentu; fallback ke default lalu en.
func (l *Localizer) T(locale, key string, args ...interface{}) string {
	table, ok := messages[locale]
	if !ok {
		table = messages[l.Default]
	}
	msg, ok := table[key]
	if !ok {
		msg, ok = messages["en"][key]
		if !ok {
			return key
		}
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// ButtonLabel mengembalikan caption tombol reply-keyboard untuk satu kode.
func (l *Localizer) ButtonLabel(locale, code string) string {
	table, ok := buttons[locale]
	if !ok {
		table = buttons[l.Default]
	}
	if label, ok := table[code]; ok {
		return label
	}
	return buttons["en"][code]
}

// CodeForLabel membalik caption menjadi kode tombol untuk locale aktif.
// Perbandingan teks label dipertahankan dari perilaku lama bot, tetapi hanya
// sebagai fallback: semua jalur lain dispatch lewat kode.
func (l *Localizer) CodeForLabel(locale, text string) (string, bool) {
	table, ok := buttons[locale]
	if !ok {
		table = buttons[l.Default]
	}
	for code, label := range table {
		if label == text {
			return code, true
		}
	}
	return "", false
}

// LanguageName dipakai untuk keyboard pilihan bahasa.
func LanguageName(code string) string {
	switch code {
	case "id":
		return "🇮🇩 Bahasa Indonesia"
	default:
		return "🇬🇧 English"
	}
}

var buttons = map[string]map[string]string{
	"en": {
		BtnMenu:      "🍽 Menu",
		BtnCart:      "🛒 Cart",
		BtnAddresses: "📍 My Addresses",
		BtnSettings:  "⚙️ Settings",
		BtnBack:      "◀️ Back",
	},
	"id": {
		BtnMenu:      "🍽 Menu",
		BtnCart:      "🛒 Keranjang",
		BtnAddresses: "📍 Alamat Saya",
		BtnSettings:  "⚙️ Pengaturan",
		BtnBack:      "◀️ Kembali",
	},
}

var messages = map[string]map[string]string{
	"en": {
		"choose_language":       "👋 Welcome! Please choose your language:",
		"language_set":          "Language set to %s.",
		"share_phone":           "📱 Please share your phone number using the button below.",
		"contact_not_yours":     "⚠️ That contact does not belong to you. Please share your own number.",
		"otp_prompt":            "🔐 We sent a verification code to %s. Reply to this message with the code.",
		"otp_invalid":           "❌ That code is not valid. We sent you a new one, please try again.",
		"otp_session_lost":      "⚠️ Your verification session expired. Please start again with /start.",
		"otp_send_failed":       "❌ We could not send the code right now. Please try again.",
		"share_location":        "📍 Verified! Now share your delivery location.",
		"address_details":       "🏠 Almost done. Send your address as \"street, city\".",
		"address_saved":         "✅ Address saved. You are all set!",
		"main_menu":             "🏠 Main menu. What would you like to do?",
		"command_unavailable":   "⚠️ That command is not available yet. Finish registration first.",
		"must_share_phone":      "📱 Please share your phone number first.",
		"must_verify_otp":       "🔐 Please enter the verification code first.",
		"must_share_location":   "📍 Please share your delivery location first.",
		"must_address_details":  "🏠 Please send your address details first.",
		"must_select_address":   "📍 Please choose a delivery address first.",
		"help":                  "ℹ️ Use /menu to browse food, the cart button to review your order, and /settings to change language.",
		"settings":              "⚙️ Settings. Choose your language:",
		"data_deleted":          "🗑 Your data has been removed. Send /start to begin again.",
		"categories_title":      "🍽 Choose a category:",
		"category_empty":        "There is nothing in this category yet.",
		"products_title":        "Choose a product:",
		"product_line":          "%s — %s",
		"product_detail":        "🍕 %s\n\n%s\n\nPrice: %s",
		"product_not_found":     "⚠️ That product is no longer available.",
		"category_not_found":    "⚠️ That category is no longer available.",
		"added_to_cart":         "✅ %s ×%d added to your cart.",
		"cart_title":            "🛒 Your cart:",
		"cart_line":             "• %s ×%d = %s",
		"cart_total":            "Subtotal: %s",
		"cart_empty":            "🛒 Your cart is empty.",
		"checkout_no_address":   "📍 You have no saved address yet. Add one to continue checkout.",
		"select_address":        "📍 Choose a delivery address:",
		"order_summary":         "🧾 Order summary:\n%s\nSubtotal: %s\nService charge: %s\nDelivery fee: %s\nDiscount: -%s\n\nTotal: %s",
		"order_submitted":       "✅ Order #%d received! We will keep you posted.",
		"order_failed":          "❌ We could not submit your order. Your cart is untouched, please try again.",
		"order_cancelled":       "Order cancelled.",
		"addresses_title":       "📍 Your addresses:",
		"generic_error":         "❌ Something went wrong. Please try again.",
		"btn_share_phone":       "📱 Share phone number",
		"btn_share_location":    "📍 Share location",
		"btn_add_to_cart":       "🛒 Add to cart",
		"btn_checkout":          "✅ Checkout",
		"btn_confirm":           "✅ Confirm order",
		"btn_cancel":            "❌ Cancel",
		"btn_add_address":       "➕ Add address",
		"btn_main_menu":         "🏠 Main menu",
		"btn_back_to_products":  "◀️ Back to products",
		"btn_view_cart":         "🛒 View cart",
	},
	"id": {
		"choose_language":       "👋 Selamat datang! Silakan pilih bahasa:",
		"language_set":          "Bahasa diatur ke %s.",
		"share_phone":           "📱 Silakan bagikan nomor telepon Anda dengan tombol di bawah.",
		"contact_not_yours":     "⚠️ Kontak itu bukan milik Anda. Bagikan nomor Anda sendiri.",
		"otp_prompt":            "🔐 Kami mengirim kode verifikasi ke %s. Balas pesan ini dengan kodenya.",
		"otp_invalid":           "❌ Kode tidak valid. Kami kirim kode baru, silakan coba lagi.",
		"otp_session_lost":      "⚠️ Sesi verifikasi Anda berakhir. Mulai lagi dengan /start.",
		"otp_send_failed":       "❌ Kode tidak bisa dikirim sekarang. Silakan coba lagi.",
		"share_location":        "📍 Terverifikasi! Sekarang bagikan lokasi pengiriman Anda.",
		"address_details":       "🏠 Hampir selesai. Kirim alamat dengan format \"jalan, kota\".",
		"address_saved":         "✅ Alamat tersimpan. Semua siap!",
		"main_menu":             "🏠 Menu utama. Mau apa hari ini?",
		"command_unavailable":   "⚠️ Perintah itu belum tersedia. Selesaikan pendaftaran dulu.",
		"must_share_phone":      "📱 Bagikan nomor telepon Anda dulu.",
		"must_verify_otp":       "🔐 Masukkan kode verifikasi dulu.",
		"must_share_location":   "📍 Bagikan lokasi pengiriman Anda dulu.",
		"must_address_details":  "🏠 Kirim detail alamat Anda dulu.",
		"must_select_address":   "📍 Pilih alamat pengiriman dulu.",
		"help":                  "ℹ️ Pakai /menu untuk lihat makanan, tombol keranjang untuk cek pesanan, dan /settings untuk ganti bahasa.",
		"settings":              "⚙️ Pengaturan. Pilih bahasa:",
		"data_deleted":          "🗑 Data Anda sudah dihapus. Kirim /start untuk mulai lagi.",
		"categories_title":      "🍽 Pilih kategori:",
		"category_empty":        "Belum ada apa-apa di kategori ini.",
		"products_title":        "Pilih produk:",
		"product_line":          "%s — %s",
		"product_detail":        "🍕 %s\n\n%s\n\nHarga: %s",
		"product_not_found":     "⚠️ Produk itu sudah tidak tersedia.",
		"category_not_found":    "⚠️ Kategori itu sudah tidak tersedia.",
		"added_to_cart":         "✅ %s ×%d masuk ke keranjang.",
		"cart_title":            "🛒 Keranjang Anda:",
		"cart_line":             "• %s ×%d = %s",
		"cart_total":            "Subtotal: %s",
		"cart_empty":            "🛒 Keranjang Anda kosong.",
		"checkout_no_address":   "📍 Anda belum punya alamat tersimpan. Tambahkan dulu untuk lanjut checkout.",
		"select_address":        "📍 Pilih alamat pengiriman:",
		"order_summary":         "🧾 Ringkasan pesanan:\n%s\nSubtotal: %s\nBiaya layanan: %s\nOngkir: %s\nDiskon: -%s\n\nTotal: %s",
		"order_submitted":       "✅ Pesanan #%d diterima! Kami akan kabari perkembangannya.",
		"order_failed":          "❌ Pesanan gagal dikirim. Keranjang Anda masih utuh, silakan coba lagi.",
		"order_cancelled":       "Pesanan dibatalkan.",
		"addresses_title":       "📍 Alamat Anda:",
		"generic_error":         "❌ Terjadi kesalahan. Silakan coba lagi.",
		"btn_share_phone":       "📱 Bagikan nomor telepon",
		"btn_share_location":    "📍 Bagikan lokasi",
		"btn_add_to_cart":       "🛒 Masukkan keranjang",
		"btn_checkout":          "✅ Checkout",
		"btn_confirm":           "✅ Konfirmasi pesanan",
		"btn_cancel":            "❌ Batal",
		"btn_add_address":       "➕ Tambah alamat",
		"btn_main_menu":         "🏠 Menu utama",
		"btn_back_to_products":  "◀️ Kembali ke produk",
		"btn_view_cart":         "🛒 Lihat keranjang",
	},
}
