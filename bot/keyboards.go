package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeremiapane/food-order-bot/locales"
	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

// Callback data dipisah titik dua: "prefix:arg[:arg...]". Aksi tanpa argumen
// dikirim tanpa titik dua.
const (
	cbMainMenu       = "main_menu"
	cbViewCart       = "view_cart"
	cbCheckout       = "checkout"
	cbBackToProducts = "back_to_products"
	cbConfirmOrder   = "confirm_order"
	cbCancelOrder    = "cancel_order"
	cbAddAddress     = "add_address"
)

func (h *Handler) languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, code := range h.loc.Supported() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(locales.LanguageName(code), "lang:"+code),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) contactKeyboard(locale string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(h.loc.T(locale, "btn_share_phone")),
		),
	)
	kb.OneTimeKeyboard = true
	return kb
}

func (h *Handler) locationKeyboard(locale string) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonLocation(h.loc.T(locale, "btn_share_location")),
		),
	)
	kb.OneTimeKeyboard = true
	return kb
}

// mainMenuKeyboard adalah reply keyboard utama; caption diambil dari locale
// aktif dan dipetakan balik ke kode tombol saat dispatch.
func (h *Handler) mainMenuKeyboard(locale string) tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(h.loc.ButtonLabel(locale, locales.BtnMenu)),
			tgbotapi.NewKeyboardButton(h.loc.ButtonLabel(locale, locales.BtnCart)),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(h.loc.ButtonLabel(locale, locales.BtnAddresses)),
			tgbotapi.NewKeyboardButton(h.loc.ButtonLabel(locale, locales.BtnSettings)),
		),
	)
}

func (h *Handler) categoriesKeyboard(locale string, categories []models.MenuCategory) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, cat := range categories {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(cat.Name, fmt.Sprintf("category:%d", cat.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_main_menu"), cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) productsKeyboard(locale string, products []models.Menu) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range products {
		label := h.loc.T(locale, "product_line", p.Name, utils.FormatCurrency(p.Price))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("product:%d", p.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_main_menu"), cbMainMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// productDetailKeyboard menampilkan pemilih jumlah. Jumlah berjalan dibawa di
// callback data supaya tidak perlu state tambahan; tombol minus tidak pernah
// menurunkan di bawah 1.
func (h *Handler) productDetailKeyboard(locale string, productID uint, qty int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", fmt.Sprintf("qty:dec:%d:%d", productID, qty)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d", qty), fmt.Sprintf("qty:cur:%d:%d", productID, qty)),
			tgbotapi.NewInlineKeyboardButtonData("➕", fmt.Sprintf("qty:inc:%d:%d", productID, qty)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_add_to_cart"), fmt.Sprintf("cart:add:%d:%d", productID, qty)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_back_to_products"), cbBackToProducts),
		),
	)
}

func (h *Handler) afterAddKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_back_to_products"), cbBackToProducts),
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_view_cart"), cbViewCart),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_main_menu"), cbMainMenu),
		),
	)
}

func (h *Handler) cartKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_checkout"), cbCheckout),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_main_menu"), cbMainMenu),
		),
	)
}

func (h *Handler) addressSelectKeyboard(locale string, addresses []models.Address) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, a := range addresses {
		label := fmt.Sprintf("%s, %s", a.Line, a.City)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("address:%d", a.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_add_address"), cbAddAddress),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) addAddressKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_add_address"), cbAddAddress),
		),
	)
}

func (h *Handler) mainMenuInline(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_main_menu"), cbMainMenu),
		),
	)
}

func (h *Handler) confirmKeyboard(locale string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_confirm"), cbConfirmOrder),
			tgbotapi.NewInlineKeyboardButtonData(h.loc.T(locale, "btn_cancel"), cbCancelOrder),
		),
	)
}
