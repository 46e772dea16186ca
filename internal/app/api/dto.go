package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChatRequest struct {
	Message string `json:"message"`
	Topic   string `json:"topic"`

	// В тело не попадают, едут заголовками X-Username / Authorization.
	Username string `json:"-"`
	Token    string `json:"-"`
}

// Response — сырой ответ upstream: статус и тело как есть.
type Response struct {
	Status int
	Body   []byte
}

func (r Response) Text() string { return string(r.Body) }

// Created — 200 или 201, так /users/register сообщает об успехе.
func (r Response) Created() bool {
	return r.Status == http.StatusOK || r.Status == http.StatusCreated
}

func (r Response) OK() bool { return r.Status == http.StatusOK }

func (r Response) Unauthorized() bool { return r.Status == http.StatusUnauthorized }

// Detail достаёт поле detail из JSON-ответа. Строка возвращается как есть,
// любой другой JSON (например, список ошибок валидации) — компактной строкой.
// Если тело не JSON-объект, а detail нет или он null — исходный текст ответа.
func (r Response) Detail() string {
	raw, ok := r.field("detail")
	if !ok || string(raw) == "null" {
		return r.Text()
	}
	return jsonText(raw)
}

// Token — token или access_token, пустая строка если тело не JSON.
func (r Response) Token() string {
	var body struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	if body.Token != "" {
		return body.Token
	}
	return body.AccessToken
}

const NoReply = "No response received"

// Reply — поле response ответа /chat: строка как есть, остальное компактным JSON.
// Ошибка — только если тело не JSON-объект.
func (r Response) Reply() (string, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if body == nil {
		return "", errors.New("decode chat response: body is not a JSON object")
	}
	raw, ok := body["response"]
	if !ok {
		return NoReply, nil
	}
	return jsonText(raw), nil
}

func (r Response) field(name string) (json.RawMessage, bool) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return nil, false
	}
	raw, ok := body[name]
	return raw, ok
}

func jsonText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
