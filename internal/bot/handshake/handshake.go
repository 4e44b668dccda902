// Package handshake реализует диалог регистрации клиента через Telegram-бота.
//
// Диалог проходит три состояния: idle, ожидание данных клиента и ожидание
// подтверждения. Логика не зависит от транспорта: на вход текст сообщения,
// на выход текст ответа.
package handshake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/fit-control/fit-control/internal/bot/api"
	"github.com/fit-control/fit-control/internal/bot/session"
	"github.com/fit-control/fit-control/internal/lib/sl"
	"github.com/fit-control/fit-control/internal/metrics"
	"github.com/fit-control/fit-control/internal/models"
)

var phoneRe = regexp.MustCompile(`^\+998\d{9}$`)

var affirmative = map[string]bool{
	"ha": true, "xa": true, "yes": true, "da": true, "ok": true,
}

var negative = map[string]bool{
	"yo'q": true, "yoq": true, "no": true, "yo": true,
}

const (
	msgWelcome = "Salom! Fit Control platformasiga xush kelibsiz.\n\n" +
		"QR kod orqali ro'yxatdan o'tish uchun gym adminidan QR kodni oling."
	msgTokenInvalid = "QR kod noto'g'ri yoki muddati o'tgan."
	msgError        = "Xatolik yuz berdi. Iltimos, keyinroq urinib ko'ring."
	msgBadInfo      = "Ma'lumotlar formati noto'g'ri.\n\n" +
		"Ism, Familiya, Telefon raqami\nMisol: Alisher Karimov +998901234567"
	msgCancelled    = "Bekor qilindi."
	msgConfirmAgain = "Iltimos, ha yoki yo'q deb javob bering."
	msgSuccess      = "Ro'yxatdan muvaffaqiyatli o'tdingiz!"
	msgPhoneTaken   = "Bu telefon raqami allaqachon ro'yxatdan o'tgan."
	msgRetryCreate  = "Xatolik yuz berdi. Ma'lumotlar to'g'ri bo'lsa, ha deb qayta urinib ko'ring."
)

// Backend описывает методы API платформы, нужные диалогу.
type Backend interface {
	VerifyToken(ctx context.Context, token string) (*models.PairingInfo, error)
	CreateClient(ctx context.Context, req models.DummyClient) (int64, error)
}

// Handshake обрабатывает сообщения пользователей и ведет сессии диалогов.
type Handshake struct {
	backend  Backend
	sessions *session.Store
	log      *slog.Logger
}

// New создает новый Handshake.
func New(backend Backend, sessions *session.Store, log *slog.Logger) *Handshake {
	return &Handshake{
		backend:  backend,
		sessions: sessions,
		log:      log,
	}
}

// Handle обрабатывает входящее сообщение и возвращает текст ответа.
// Паника внутри обработки сбрасывает сессию пользователя в idle.
func (h *Handshake) Handle(ctx context.Context, userID int64, tgUsername, text string) (reply string) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error("handshake panic, session reset",
				slog.Int64("user_id", userID), slog.Any("panic", rec))
			h.sessions.Reset(userID)
			reply = msgError
		}
	}()

	text = strings.TrimSpace(text)
	sess := h.sessions.Get(userID)

	if strings.HasPrefix(text, "/cancel") {
		if sess.State != session.StateIdle {
			h.sessions.Reset(userID)
		}
		return msgCancelled
	}
	if strings.HasPrefix(text, "/start") {
		return h.handleStart(ctx, userID, text)
	}

	switch sess.State {
	case session.StateAwaitingClientInfo:
		return h.handleClientInfo(userID, sess, text)
	case session.StateAwaitingConfirmation:
		return h.handleConfirmation(ctx, userID, tgUsername, sess, text)
	default:
		return msgWelcome
	}
}

// handleStart обрабатывает /start, с deep link токеном или без.
func (h *Handshake) handleStart(ctx context.Context, userID int64, text string) string {
	args := strings.Fields(text)
	if len(args) < 2 {
		h.sessions.Reset(userID)
		return msgWelcome
	}

	info, err := h.backend.VerifyToken(ctx, args[1])
	if err != nil {
		h.sessions.Reset(userID)
		if errors.Is(err, api.ErrTokenInvalid) {
			h.log.Info("invalid pairing token", slog.Int64("user_id", userID))
			return msgTokenInvalid
		}
		h.log.Error("failed to verify pairing token", sl.Err(err))
		return msgError
	}

	h.sessions.Set(userID, &session.Session{
		State:   session.StateAwaitingClientInfo,
		GymID:   info.GymID,
		GymName: info.GymName,
	})
	return fmt.Sprintf("QR kod topildi!\nGym: %s\n\n"+
		"Ro'yxatdan o'tish uchun quyidagi ma'lumotlarni yuboring:\n"+
		"Ism, Familiya, Telefon raqami\n\n"+
		"Misol: Alisher Karimov +998901234567", info.GymName)
}

// handleClientInfo разбирает строку "Ism Familiya +998XXXXXXXXX".
// Последний токен — телефон, первый — имя, остальное — фамилия.
func (h *Handshake) handleClientInfo(userID int64, sess *session.Session, text string) string {
	parts := strings.Fields(text)
	if len(parts) < 3 || !phoneRe.MatchString(parts[len(parts)-1]) {
		return msgBadInfo
	}

	sess.FirstName = parts[0]
	sess.LastName = strings.Join(parts[1:len(parts)-1], " ")
	sess.Phone = parts[len(parts)-1]
	sess.State = session.StateAwaitingConfirmation
	h.sessions.Set(userID, sess)

	return fmt.Sprintf("Ism: %s\nFamiliya: %s\nTelefon: %s\n\n"+
		"Ma'lumotlar to'g'rimi? (ha/yo'q)",
		sess.FirstName, sess.LastName, sess.Phone)
}

func (h *Handshake) handleConfirmation(ctx context.Context, userID int64, tgUsername string, sess *session.Session, text string) string {
	answer := strings.ToLower(strings.TrimSpace(text))

	switch {
	case affirmative[answer]:
		req := models.DummyClient{
			GymID:      sess.GymID,
			FirstName:  sess.FirstName,
			LastName:   sess.LastName,
			Phone:      sess.Phone,
			TelegramID: &userID,
		}
		if tgUsername != "" {
			req.TelegramUsername = &tgUsername
		}
		if _, err := h.backend.CreateClient(ctx, req); err != nil {
			if errors.Is(err, api.ErrPhoneTaken) {
				h.log.Info("phone already registered",
					slog.Int64("gym_id", sess.GymID), slog.String("phone", sess.Phone))
				h.sessions.Reset(userID)
				metrics.BotRegistrationsTotal.WithLabelValues("conflict").Inc()
				return msgPhoneTaken
			}
			// Сессия сохраняется: пользователь может подтвердить еще раз.
			h.log.Error("failed to create client", sl.Err(err))
			metrics.BotRegistrationsTotal.WithLabelValues("error").Inc()
			return msgRetryCreate
		}
		h.sessions.Reset(userID)
		metrics.BotRegistrationsTotal.WithLabelValues("success").Inc()
		h.log.Info("client registered via bot",
			slog.Int64("gym_id", sess.GymID), slog.Int64("user_id", userID))
		return msgSuccess
	case negative[answer]:
		h.sessions.Reset(userID)
		return msgCancelled
	default:
		return msgConfirmAgain
	}
}
