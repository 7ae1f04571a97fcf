package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BuzzLyutic/taskseed-api/internal/service"
)

// Request is the transport-neutral form of an incoming call.
type Request struct {
	Method     string
	PathParams map[string]string
	Query      map[string]string
	Body       string
}

type Response struct {
	Status  int
	Headers map[string]string
	Body    string
}

// Handler serves one resource. A returned error is a store failure the
// transport turns into a 500.
type Handler interface {
	Handle(ctx context.Context, req Request) (Response, error)
}

func baseHeaders(contentType string) map[string]string {
	return map[string]string{
		"Content-Type":                contentType,
		"Access-Control-Allow-Origin": "*",
	}
}

func jsonResponse(status int, data any) (Response, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return Response{}, fmt.Errorf("encode response: %w", err)
	}
	return Response{Status: status, Headers: baseHeaders("application/json"), Body: string(b)}, nil
}

func textResponse(status int, message string) Response {
	return Response{Status: status, Headers: baseHeaders("text/plain; charset=utf-8"), Body: message}
}

func messageResponse(status int, message string) Response {
	b, _ := json.Marshal(map[string]string{"message": message})
	return Response{Status: status, Headers: baseHeaders("application/json"), Body: string(b)}
}

// decodeBody returns nil for an empty body so the service reports it as missing.
func decodeBody(body string) (map[string]any, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", service.ErrValidation, err)
	}
	return payload, nil
}

// errorMessage renders err for the client with a capitalized first letter,
// e.g. "Invalid request: missing body".
func errorMessage(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
