package bot

import (
	"strconv"
	"strings"

	"github.com/yeremiapane/food-order-bot/utils"
)

// showCart menampilkan isi keranjang dengan subtotal. msgID > 0 berarti
// datang dari tombol inline dan pesan lama diedit.
func (h *Handler) showCart(chatID int64, locale string, msgID int) {
	items, err := h.carts.GetCart(chatID)
	if err != nil {
		utils.ErrorLogger.Printf("get cart for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}
	if len(items) == 0 {
		h.editOrSend(chatID, msgID, h.loc.T(locale, "cart_empty"), h.mainMenuInline(locale))
		return
	}

	var b strings.Builder
	b.WriteString(h.loc.T(locale, "cart_title"))
	var subtotal float64
	for _, item := range items {
		lineTotal := item.Menu.Price * float64(item.Quantity)
		subtotal += lineTotal
		b.WriteString("\n")
		b.WriteString(h.loc.T(locale, "cart_line", item.Menu.Name, item.Quantity, utils.FormatCurrency(lineTotal)))
	}
	b.WriteString("\n\n")
	b.WriteString(h.loc.T(locale, "cart_total", utils.FormatCurrency(subtotal)))

	h.editOrSend(chatID, msgID, b.String(), h.cartKeyboard(locale))
}

// startCheckout memeriksa prasyarat: keranjang tidak kosong dan minimal satu
// alamat tersimpan. Tanpa alamat, alur dialihkan ke entry alamat dulu dan
// checkout dilanjutkan otomatis begitu alamat tersimpan.
func (h *Handler) startCheckout(chatID int64, msgID int, sess Session) {
	locale := sess.Locale

	items, err := h.carts.GetCart(chatID)
	if err != nil {
		utils.ErrorLogger.Printf("get cart for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}
	if len(items) == 0 {
		h.editOrSend(chatID, msgID, h.loc.T(locale, "cart_empty"), h.mainMenuInline(locale))
		return
	}

	customerID := h.resolveCustomerID(chatID)
	if customerID == 0 {
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	addresses, err := h.addresses.ListForCustomer(customerID)
	if err != nil {
		utils.ErrorLogger.Printf("list addresses for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	if len(addresses) == 0 {
		// Redirect ke entry alamat; previous state menandai checkout yang
		// tertunda supaya bisa di-resume.
		h.sessions.SetPreviousState(chatID, StateAwaitingAddressSelection)
		h.editOrSend(chatID, msgID, h.loc.T(locale, "checkout_no_address"), h.addAddressKeyboard(locale))
		return
	}

	h.sessions.SetState(chatID, StateAwaitingAddressSelection)
	h.editOrSend(chatID, msgID, h.loc.T(locale, "select_address"), h.addressSelectKeyboard(locale, addresses))
}

// selectAddress menyimpan pilihan ke draft (upsert, satu baris per customer)
// dan langsung maju ke konfirmasi order tanpa pemilihan ulang.
func (h *Handler) selectAddress(chatID int64, msgID int, sess Session, rawID string) {
	locale := sess.Locale
	id64, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}
	addressID := uint(id64)

	customerID := h.resolveCustomerID(chatID)
	if customerID == 0 {
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	// Alamat harus milik customer ini; id dari callback bisa dipalsukan
	// atau basi.
	address, err := h.addresses.FindByID(addressID)
	if err != nil || address.CustomerID != customerID {
		h.editOrSend(chatID, msgID, h.loc.T(locale, "generic_error"), h.mainMenuInline(locale))
		return
	}

	if _, err := h.orders.UpsertDraft(customerID, &addressID, ""); err != nil {
		utils.ErrorLogger.Printf("upsert draft for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	h.sessions.SetState(chatID, StateRegistered)
	h.showConfirmation(chatID, locale)
}

// showConfirmation merender ringkasan harga dari keranjang + draft.
func (h *Handler) showConfirmation(chatID int64, locale string) {
	items, err := h.carts.GetCart(chatID)
	if err != nil || len(items) == 0 {
		h.send(chatID, h.loc.T(locale, "cart_empty"))
		return
	}

	pricing := h.orders.Quote(items)

	var lines strings.Builder
	for _, item := range items {
		lines.WriteString(h.loc.T(locale, "cart_line", item.Menu.Name, item.Quantity,
			utils.FormatCurrency(item.Menu.Price*float64(item.Quantity))))
		lines.WriteString("\n")
	}

	text := h.loc.T(locale, "order_summary",
		lines.String(),
		utils.FormatCurrency(pricing.Subtotal),
		utils.FormatCurrency(pricing.ServiceCharge),
		utils.FormatCurrency(pricing.DeliveryFee),
		utils.FormatCurrency(pricing.Discount),
		utils.FormatCurrency(pricing.Total),
	)
	h.sendWithInline(chatID, text, h.confirmKeyboard(locale))
}

// confirmOrder mengirim order ke Order Assembly. Keranjang baru dikosongkan
// setelah order tersimpan; kegagalan menyisakan keranjang utuh dan pesan
// gagal yang terminal.
func (h *Handler) confirmOrder(chatID int64, sess Session) {
	locale := sess.Locale

	customerID := h.resolveCustomerID(chatID)
	if customerID == 0 {
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	items, err := h.carts.GetCart(chatID)
	if err != nil {
		utils.ErrorLogger.Printf("get cart for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}
	if len(items) == 0 {
		h.send(chatID, h.loc.T(locale, "cart_empty"))
		return
	}

	draft, err := h.orders.GetDraft(customerID)
	if err != nil || draft.AddressID == nil {
		// Draft hilang: ulang pemilihan alamat.
		h.startCheckout(chatID, 0, sess)
		return
	}

	order, err := h.orders.CreateOrder(customerID, h.restaurantID, *draft.AddressID, items, draft.PaymentOption)
	if err != nil {
		utils.ErrorLogger.Printf("create order for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "order_failed"))
		return
	}

	if err := h.carts.ClearCart(chatID); err != nil {
		utils.ErrorLogger.Printf("clear cart for chat %d: %v", chatID, err)
	}

	if h.feed != nil {
		h.feed.OrderCreated(*order)
	}

	h.sessions.SetState(chatID, StateRegistered)
	h.sessions.SetMenuState(chatID, MenuMain)
	h.sendWithReply(chatID, h.loc.T(locale, "order_submitted", order.ID), h.mainMenuKeyboard(locale))
}

func (h *Handler) cancelOrder(chatID int64, msgID int, sess Session) {
	locale := sess.Locale
	h.sessions.SetState(chatID, StateRegistered)
	h.sessions.SetMenuState(chatID, MenuMain)
	h.editOrSend(chatID, msgID, h.loc.T(locale, "order_cancelled"), h.mainMenuInline(locale))
}
