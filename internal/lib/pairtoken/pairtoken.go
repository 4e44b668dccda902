// Package pairtoken генерирует непрозрачные токены для привязки
// telegram-пользователей к залу через QR-код.
package pairtoken

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// entropyBytes количество случайных байт в токене.
const entropyBytes = 32

// New возвращает криптографически случайный URL-safe токен
// из 32 байт энтропии в кодировке base64 без набивки.
func New() (string, error) {
	const op = "pairtoken.New"
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
