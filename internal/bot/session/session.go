// Package session хранит состояние диалога регистрации по каждому
// пользователю Telegram. Хранение в памяти: при перезапуске бота
// незавершенные диалоги начинаются заново.
package session

import "sync"

// State состояние диалога регистрации.
type State string

const (
	// StateIdle диалог не начат или завершен.
	StateIdle State = "idle"
	// StateAwaitingClientInfo бот ждет имя, фамилию и телефон.
	StateAwaitingClientInfo State = "awaiting_client_info"
	// StateAwaitingConfirmation бот ждет подтверждения введенных данных.
	StateAwaitingConfirmation State = "awaiting_confirmation"
)

// Session данные диалога одного пользователя Telegram.
type Session struct {
	State     State
	GymID     int64
	GymName   string
	FirstName string
	LastName  string
	Phone     string
}

// Store потокобезопасное хранилище сессий по telegram user id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewStore создает пустое хранилище сессий.
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get возвращает сессию пользователя. Для незнакомого пользователя
// возвращается новая сессия в состоянии idle.
func (s *Store) Get(userID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}
	return &Session{State: StateIdle}
}

// Set сохраняет сессию пользователя.
func (s *Store) Set(userID int64, sess *Session) {
	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()
}

// Reset сбрасывает сессию пользователя в idle.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}
