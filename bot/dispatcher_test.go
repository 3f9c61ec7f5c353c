package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/food-order-bot/models"
)

const testChat = int64(1001)

func TestFirstMessageOpensLanguageSelection(t *testing.T) {
	f := newFixture()

	// Chat yang belum pernah terlihat; teks apapun membuka pemilihan bahasa.
	f.handler.HandleUpdate(textUpdate(testChat, "halo"))

	sess := f.sessions.Get(testChat)
	assert.Equal(t, StateAwaitingLanguage, sess.CurrentState)
	assert.Equal(t, f.loc.T("en", "choose_language"), f.sender.lastText())
}

func TestStartCommandForExistingCustomerSkipsRegistration(t *testing.T) {
	f := newFixture()
	f.customers.Save(&models.Customer{ChatID: testChat, Phone: "+628111", Language: "id"})

	f.handler.HandleUpdate(commandUpdate(testChat, "start"))

	sess := f.sessions.Get(testChat)
	assert.Equal(t, StateRegistered, sess.CurrentState)
	assert.Equal(t, "id", sess.Locale)
	assert.Equal(t, f.loc.T("id", "main_menu"), f.sender.lastText())
}

func TestCommandsGatedBeforeRegistration(t *testing.T) {
	f := newFixture()
	f.sessions.SetState(testChat, StateAwaitingPhone)

	for _, cmd := range []string{"menu", "settings", "deletedata"} {
		f.sender.reset()
		f.handler.HandleUpdate(commandUpdate(testChat, cmd))
		assert.Equal(t, f.loc.T("en", "command_unavailable"), f.sender.lastText(), cmd)
	}

	// /help selalu tersedia
	f.sender.reset()
	f.handler.HandleUpdate(commandUpdate(testChat, "help"))
	assert.Equal(t, f.loc.T("en", "help"), f.sender.lastText())
}

func TestFullRegistrationFlow(t *testing.T) {
	f := newFixture()

	f.handler.HandleUpdate(commandUpdate(testChat, "start"))
	assert.Equal(t, StateAwaitingLanguage, f.sessions.Get(testChat).CurrentState)

	f.handler.HandleUpdate(callbackUpdate(testChat, "lang:en"))
	assert.Equal(t, StateAwaitingPhone, f.sessions.Get(testChat).CurrentState)

	f.handler.HandleUpdate(contactUpdate(testChat, testChat, "628123456789"))
	sess := f.sessions.Get(testChat)
	assert.Equal(t, StateAwaitingOtp, sess.CurrentState)
	// Nomor dinormalisasi ke bentuk +
	assert.Equal(t, "+628123456789", sess.TemporaryData[KeyPhoneNumber])
	assert.NotEmpty(t, sess.TemporaryData[KeyOtpID])

	f.handler.HandleUpdate(replyUpdate(testChat, "123456"))
	sess = f.sessions.Get(testChat)
	assert.Equal(t, StateAwaitingAddress, sess.CurrentState)
	// Scratch data dibuang setelah verifikasi sukses
	assert.Empty(t, sess.TemporaryData)

	customer, err := f.customers.FindByChatID(testChat)
	assert.NoError(t, err)
	assert.Equal(t, "+628123456789", customer.Phone)

	f.handler.HandleUpdate(locationUpdate(testChat, -6.2, 106.8))
	assert.Equal(t, StateAwaitingAddressDetails, f.sessions.Get(testChat).CurrentState)

	f.handler.HandleUpdate(textUpdate(testChat, "Jl. Kenanga 5, Jakarta"))
	assert.Equal(t, StateRegistered, f.sessions.Get(testChat).CurrentState)

	saved, _ := f.addresses.ListForCustomer(customer.ID)
	assert.Len(t, saved, 1)
	assert.Equal(t, "Jl. Kenanga 5", saved[0].Line)
	assert.Equal(t, "Jakarta", saved[0].City)
	assert.InDelta(t, -6.2, saved[0].Latitude, 0.0001)
}

func TestForeignContactRejected(t *testing.T) {
	f := newFixture()
	f.sessions.SetState(testChat, StateAwaitingPhone)

	f.handler.HandleUpdate(contactUpdate(testChat, testChat+1, "628999"))

	sess := f.sessions.Get(testChat)
	assert.Equal(t, StateAwaitingPhone, sess.CurrentState)
	assert.Equal(t, f.loc.T("en", "contact_not_yours"), f.sender.lastText())
	assert.Empty(t, f.auth.issued)
}

func TestWrongOtpIssuesNewCodeAndStays(t *testing.T) {
	f := newFixture()
	f.sessions.SetState(testChat, StateAwaitingPhone)
	f.handler.HandleUpdate(contactUpdate(testChat, testChat, "628123"))

	firstID, _ := f.sessions.GetTemporaryData(testChat, KeyOtpID)

	f.handler.HandleUpdate(replyUpdate(testChat, "000000"))

	sess := f.sessions.Get(testChat)
	assert.Equal(t, StateAwaitingOtp, sess.CurrentState)
	assert.Equal(t, f.loc.T("en", "otp_invalid"), f.sender.lastText())

	// otp_id diganti dengan terbitan baru
	secondID := sess.TemporaryData[KeyOtpID]
	assert.NotEqual(t, firstID, secondID)
	assert.Len(t, f.auth.issued, 2)

	// Kode dari terbitan baru diterima
	f.handler.HandleUpdate(replyUpdate(testChat, "123456"))
	assert.Equal(t, StateAwaitingAddress, f.sessions.Get(testChat).CurrentState)
}

func TestOtpWithLostSessionReturnsToStart(t *testing.T) {
	f := newFixture()
	f.sessions.SetState(testChat, StateAwaitingOtp)
	// Tidak ada phone_number / otp_id di scratch data

	f.handler.HandleUpdate(replyUpdate(testChat, "123456"))

	assert.Equal(t, StateStart, f.sessions.Get(testChat).CurrentState)
	assert.Equal(t, f.loc.T("en", "otp_session_lost"), f.sender.lastText())
}

func TestPlainTextDuringOtpTreatedAsCode(t *testing.T) {
	f := newFixture()
	f.sessions.SetState(testChat, StateAwaitingPhone)
	f.handler.HandleUpdate(contactUpdate(testChat, testChat, "628123"))

	// Teks biasa tanpa reply tetap dianggap kode
	f.handler.HandleUpdate(textUpdate(testChat, "123456"))
	assert.Equal(t, StateAwaitingAddress, f.sessions.Get(testChat).CurrentState)
}

func TestAddressWithoutCityDefaultsToUnknown(t *testing.T) {
	f := newFixture()
	customer := f.registered(testChat)
	f.sessions.SetState(testChat, StateAwaitingAddressDetails)

	f.handler.HandleUpdate(textUpdate(testChat, "Jl. Mawar 10"))

	saved, _ := f.addresses.ListForCustomer(customer.ID)
	assert.Len(t, saved, 1)
	assert.Equal(t, "Jl. Mawar 10", saved[0].Line)
	assert.Equal(t, "Unknown", saved[0].City)
}

func TestReminderMatchesCurrentStep(t *testing.T) {
	f := newFixture()

	// Event yang tidak cocok dengan state (mis. stiker, foto) harus dijawab
	// dengan pengingat langkah yang sedang berjalan, bukan pesan error umum.
	cases := []struct {
		state State
		key   string
	}{
		{StateAwaitingLanguage, "choose_language"},
		{StateAwaitingPhone, "must_share_phone"},
		{StateAwaitingOtp, "must_verify_otp"},
		{StateAwaitingAddress, "must_share_location"},
		{StateAwaitingAddressDetails, "must_address_details"},
		{StateAwaitingAddressSelection, "must_select_address"},
	}
	for _, tc := range cases {
		f.sender.reset()
		f.sessions.SetState(testChat, tc.state)

		f.handler.HandleUpdate(textUpdate(testChat, ""))

		assert.Equal(t, f.loc.T("en", tc.key), f.sender.lastText(), string(tc.state))
	}
}

func TestUnknownCallbackIgnored(t *testing.T) {
	f := newFixture()
	f.registered(testChat)

	f.handler.HandleUpdate(callbackUpdate(testChat, "bogus:data"))

	// Hanya jawaban callback, tidak ada pesan keluar
	assert.Empty(t, f.sender.texts())
}

func TestDeleteDataRemovesEverything(t *testing.T) {
	f := newFixture()
	customer := f.registered(testChat)
	f.withAddress(customer)
	f.carts.AddItem(testChat, 1, 2)

	f.handler.HandleUpdate(commandUpdate(testChat, "deletedata"))

	_, err := f.customers.FindByChatID(testChat)
	assert.Error(t, err)

	// Session kembali default: event berikutnya membuka pemilihan bahasa lagi
	sess := f.sessions.Get(testChat)
	assert.Equal(t, StateStart, sess.CurrentState)
	assert.Equal(t, f.loc.T("en", "data_deleted"), f.sender.lastText())
}
