// Package api содержит HTTP-клиент бота к основному API платформы.
//
// Бот проверяет токен привязки через публичный маршрут, а клиентов
// создает под служебной учеткой: клиент логинится и хранит JWT,
// при 401 перелогинивается один раз.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fit-control/fit-control/internal/models"
)

// ErrTokenInvalid означает, что токен привязки не найден или пуст.
var ErrTokenInvalid = errors.New("pairing token is invalid")

// ErrPhoneTaken означает, что телефон уже зарегистрирован в зале.
var ErrPhoneTaken = errors.New("phone already registered")

// Client HTTP-клиент к API платформы.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client

	mu    sync.Mutex
	token string
}

// New создает новый Client. username и password — служебная учетка бота.
func New(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Status string          `json:"status"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
}

// VerifyToken проверяет токен привязки и возвращает зал, которому он выдан.
func (c *Client) VerifyToken(ctx context.Context, token string) (*models.PairingInfo, error) {
	const op = "botapi.VerifyToken"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/v1/verify/%s", c.baseURL, token), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusBadRequest:
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	default:
		return nil, fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var data struct {
		Valid   bool   `json:"valid"`
		GymID   int64  `json:"gym_id"`
		GymName string `json:"gym_name"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !data.Valid {
		return nil, fmt.Errorf("%s: %w", op, ErrTokenInvalid)
	}
	return &models.PairingInfo{GymID: data.GymID, GymName: data.GymName}, nil
}

// CreateClient создает клиента зала от имени служебной учетки.
func (c *Client) CreateClient(ctx context.Context, req models.DummyClient) (int64, error) {
	const op = "botapi.CreateClient"

	id, err := c.createClient(ctx, req)
	if errors.Is(err, errUnauthorized) {
		c.invalidateToken()
		id, err = c.createClient(ctx, req)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

var errUnauthorized = errors.New("unauthorized")

func (c *Client) createClient(ctx context.Context, client models.DummyClient) (int64, error) {
	token, err := c.ensureToken(ctx)
	if err != nil {
		return 0, err
	}

	body, err := json.Marshal(client)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/clients", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return 0, errUnauthorized
	case http.StatusConflict:
		return 0, ErrPhoneTaken
	default:
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return 0, err
	}
	var data struct {
		ClientID int64 `json:"client_id"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return 0, err
	}
	return data.ClientID, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) ensureToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", err
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", err
	}
	c.token = data.Token
	return c.token, nil
}
