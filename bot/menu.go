package bot

import (
	"strconv"

	"github.com/yeremiapane/food-order-bot/utils"
)

// showCategories menampilkan daftar kategori restoran.
func (h *Handler) showCategories(chatID int64, locale string) {
	categories, err := h.catalog.CategoriesByRestaurant(h.restaurantID)
	if err != nil {
		utils.ErrorLogger.Printf("list categories for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	h.sessions.SetState(chatID, StateRegistered)
	h.sessions.SetMenuState(chatID, MenuCategory)
	h.sendWithInline(chatID, h.loc.T(locale, "categories_title"), h.categoriesKeyboard(locale, categories))
}

// selectCategory menampilkan produk dalam satu kategori; id kategori disimpan
// di scratch data supaya "kembali ke produk" tahu harus ke mana.
func (h *Handler) selectCategory(chatID int64, msgID int, sess Session, rawID string) {
	locale := sess.Locale
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}

	products, err := h.catalog.ProductsByCategory(uint(id))
	if err != nil {
		utils.ErrorLogger.Printf("list products for chat %d: %v", chatID, err)
		h.editOrSend(chatID, msgID, h.loc.T(locale, "category_not_found"), h.mainMenuInline(locale))
		return
	}
	if len(products) == 0 {
		h.editOrSend(chatID, msgID, h.loc.T(locale, "category_empty"), h.mainMenuInline(locale))
		return
	}

	h.sessions.SetTemporaryData(chatID, KeyCurrentCategoryID, rawID)
	h.sessions.SetMenuState(chatID, MenuProduct)
	h.editOrSend(chatID, msgID, h.loc.T(locale, "products_title"), h.productsKeyboard(locale, products))
}

// selectProduct menampilkan detail produk dengan pemilih jumlah (mulai 1).
func (h *Handler) selectProduct(chatID int64, msgID int, sess Session, rawID string) {
	locale := sess.Locale
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}

	product, err := h.catalog.ProductByID(uint(id))
	if err != nil {
		h.editOrSend(chatID, msgID, h.loc.T(locale, "product_not_found"), h.mainMenuInline(locale))
		return
	}

	h.sessions.SetState(chatID, StateProductDetail)
	text := h.loc.T(locale, "product_detail", product.Name, product.Description, utils.FormatCurrency(product.Price))
	h.editOrSend(chatID, msgID, text, h.productDetailKeyboard(locale, product.ID, 1))
}

// adjustQuantity mengubah angka pada pemilih jumlah. Murni urusan tampilan:
// keranjang baru tersentuh saat "masukkan keranjang". Minus tidak pernah
// membawa angka di bawah 1.
func (h *Handler) adjustQuantity(chatID int64, msgID int, sess Session, op, rawID, rawQty string) {
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty < 1 {
		qty = 1
	}

	switch op {
	case "inc":
		qty++
	case "dec":
		if qty > 1 {
			qty--
		} else {
			return // sudah di lantai, tidak ada yang diedit
		}
	default:
		return
	}

	h.editMarkup(chatID, msgID, h.productDetailKeyboard(sess.Locale, uint(id), qty))
}

// addToCart mengeksekusi jumlah terpilih menjadi baris keranjang.
func (h *Handler) addToCart(chatID int64, msgID int, sess Session, rawID, rawQty string) {
	locale := sess.Locale
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty < 1 {
		qty = 1
	}

	product, err := h.catalog.ProductByID(uint(id))
	if err != nil {
		h.editOrSend(chatID, msgID, h.loc.T(locale, "product_not_found"), h.mainMenuInline(locale))
		return
	}

	if err := h.carts.AddItem(chatID, product.ID, qty); err != nil {
		utils.ErrorLogger.Printf("add to cart for chat %d: %v", chatID, err)
		h.editOrSend(chatID, msgID, h.loc.T(locale, "generic_error"), h.mainMenuInline(locale))
		return
	}

	h.sessions.SetState(chatID, StateRegistered)
	h.sessions.SetMenuState(chatID, MenuProduct)
	h.editOrSend(chatID, msgID, h.loc.T(locale, "added_to_cart", product.Name, qty), h.afterAddKeyboard(locale))
}

// backToProducts kembali ke daftar produk kategori yang tersimpan di scratch;
// tanpa kategori tersimpan jatuh ke daftar kategori.
func (h *Handler) backToProducts(chatID int64, msgID int, sess Session) {
	locale := sess.Locale
	rawID, ok := h.sessions.GetTemporaryData(chatID, KeyCurrentCategoryID)
	if !ok {
		h.showCategories(chatID, locale)
		return
	}

	h.sessions.SetState(chatID, StateRegistered)
	h.selectCategory(chatID, msgID, sess, rawID)
}
