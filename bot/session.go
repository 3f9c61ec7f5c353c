package bot

import (
	"sync"
	"time"
)

// State adalah posisi percakapan satu chat di alur bot.
type State string

const (
	StateStart                    State = "start"
	StateAwaitingLanguage         State = "awaiting_language"
	StateAwaitingPhone            State = "awaiting_phone"
	StateAwaitingOtp              State = "awaiting_otp"
	StateAwaitingAddress          State = "awaiting_address"
	StateAwaitingAddressDetails   State = "awaiting_address_details"
	StateAwaitingAddressSelection State = "awaiting_address_selection"
	StateRegistered               State = "registered"
	StateProductDetail            State = "product_detail"
)

// MenuState adalah kedalaman navigasi menu, ortogonal terhadap State dan hanya
// bermakna setelah customer terdaftar.
type MenuState string

const (
	MenuMain     MenuState = "main_menu"
	MenuCategory MenuState = "category_view"
	MenuProduct  MenuState = "product_view"
)

// Key temporary data yang dipakai state machine. Key lain dianggap opaque.
const (
	KeyPhoneNumber       = "phone_number"
	KeyOtpID             = "otp_id"
	KeyTempLatitude      = "temp_latitude"
	KeyTempLongitude     = "temp_longitude"
	KeyPhoneVerified     = "phone_verified"
	KeyUsername          = "username"
	KeyCurrentCategoryID = "current_category_id"
)

// Session adalah konteks percakapan satu chat.
type Session struct {
	ChatID        int64
	CurrentState  State
	PreviousState State
	MenuState     MenuState
	TemporaryData map[string]string
	CustomerID    uint
	Locale        string
	LastSeen      time.Time
}

// SessionStore menyimpan session per chat di memori. Semua operasi keyed
// lookup dengan default-on-miss; tidak ada operasi yang gagal. Session idle
// dievict oleh janitor supaya map tidak tumbuh tanpa batas.
type SessionStore struct {
	mu            sync.RWMutex
	sessions      map[int64]*Session
	locks         map[int64]*sync.Mutex
	defaultLocale string
	ttl           time.Duration
	stop          chan struct{}
	stopOnce      sync.Once
}

const defaultSessionTTL = 24 * time.Hour

func NewSessionStore(defaultLocale string, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	s := &SessionStore{
		sessions:      make(map[int64]*Session),
		locks:         make(map[int64]*sync.Mutex),
		defaultLocale: defaultLocale,
		ttl:           ttl,
		stop:          make(chan struct{}),
	}
	go s.janitor()
	return s
}

// ChatLock mengembalikan mutex per chat. Dispatcher memegang lock ini selama
// satu update diproses supaya dua delivery untuk chat yang sama tidak balapan
// di read-modify-write session/keranjang.
func (s *SessionStore) ChatLock(chatID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[chatID]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[chatID] = l
	return l
}

// Get mengembalikan snapshot session; chat baru mendapat default
// (start, main_menu, map kosong, locale default).
func (s *SessionStore) Get(chatID int64) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getLocked(chatID)
}

func (s *SessionStore) getLocked(chatID int64) *Session {
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{
			ChatID:        chatID,
			CurrentState:  StateStart,
			MenuState:     MenuMain,
			TemporaryData: make(map[string]string),
			Locale:        s.defaultLocale,
		}
		s.sessions[chatID] = sess
	}
	sess.LastSeen = time.Now()
	return sess
}

func (s *SessionStore) SetState(chatID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).CurrentState = state
}

func (s *SessionStore) SetPreviousState(chatID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).PreviousState = state
}

func (s *SessionStore) SetMenuState(chatID int64, state MenuState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).MenuState = state
}

func (s *SessionStore) SetTemporaryData(chatID int64, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).TemporaryData[key] = value
}

func (s *SessionStore) GetTemporaryData(chatID int64, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.getLocked(chatID).TemporaryData[key]
	return v, ok
}

// ClearTemporaryData mengosongkan scratch map; state, cache customer, dan
// locale tetap.
func (s *SessionStore) ClearTemporaryData(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).TemporaryData = make(map[string]string)
}

func (s *SessionStore) CacheCustomer(chatID int64, customerID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).CustomerID = customerID
}

// Customer mengembalikan id customer yang di-cache; 0 artinya belum ada.
func (s *SessionStore) Customer(chatID int64) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(chatID).CustomerID
}

func (s *SessionStore) SetLocale(chatID int64, locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getLocked(chatID).Locale = locale
}

func (s *SessionStore) Locale(chatID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(chatID).Locale
}

// Reset membuang session satu chat (dipakai /deletedata).
func (s *SessionStore) Reset(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) janitor() {
	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			s.evictIdle(time.Now().Add(-s.ttl))
		}
	}
}

// evictIdle membuang session yang idle sebelum cutoff. Mutex chat hanya ikut
// dibuang kalau sedang tidak dipegang; mutex yang masih dipegang handler
// dibiarkan supaya ChatLock tidak mencetak mutex kedua untuk chat yang sama
// selagi update lain masih berjalan. ChatLock dan evictIdle sama-sama menahan
// s.mu, jadi tidak ada yang bisa mengambil mutex di antara TryLock dan delete.
func (s *SessionStore) evictIdle(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if !sess.LastSeen.Before(cutoff) {
			continue
		}
		delete(s.sessions, id)
		if l, ok := s.locks[id]; ok && l.TryLock() {
			l.Unlock()
			delete(s.locks, id)
		}
	}
}
