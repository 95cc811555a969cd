// Package backend is the REST client of the print backend.
//
// Every call maps its failure onto one of four kinds: a missing token, an
// expired token, a *ServerError carrying the backend's message, or a
// transport failure wrapping ErrTransport.
package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingToken is returned by authenticated calls when no session exists.
	// No request is sent.
	ErrMissingToken = errors.New("token manquant")

	// ErrTokenExpired is returned when the backend rejects the bearer token.
	ErrTokenExpired = errors.New("token expiré")

	// ErrTransport wraps network and protocol failures.
	ErrTransport = errors.New("erreur de connexion au serveur")
)

// GenericMessage is shown when a failure carries no usable message.
const GenericMessage = "Erreur serveur, veuillez réessayer."

// messageFields lists the payload keys inspected for a human message, in order.
var messageFields = []string{"email", "password", "detail", "error", "message", "non_field_errors"}

// ServerError is a non-2xx response, or a 2xx response whose payload reports failure.
type ServerError struct {
	Status int
	Fields map[string][]string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message())
}

// Message returns the first message found under a known field, or GenericMessage.
func (e *ServerError) Message() string {
	for _, key := range messageFields {
		if msgs := e.Fields[key]; len(msgs) > 0 && msgs[0] != "" {
			return msgs[0]
		}
	}
	return GenericMessage
}

// Field returns the messages reported for a form field.
func (e *ServerError) Field(name string) []string {
	return e.Fields[name]
}

// MapHTTPStatus returns the HTTP status carried by err, or 0 when err is not a ServerError.
func MapHTTPStatus(err error) int {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Status
	}
	if errors.Is(err, ErrTokenExpired) {
		return http.StatusUnauthorized
	}
	return 0
}

// UserMessage turns any client error into the text shown to the user.
func UserMessage(err error) string {
	var se *ServerError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingToken):
		return "Vous devez être connecté pour continuer."
	case errors.Is(err, ErrTokenExpired):
		return "Votre session a expiré, veuillez vous reconnecter."
	case errors.As(err, &se):
		return se.Message()
	default:
		return GenericMessage
	}
}

func newServerError(status int, body []byte) *ServerError {
	se := &ServerError{Status: status, Fields: map[string][]string{}}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 {
			se.Fields["detail"] = []string{text}
		}
		return se
	}

	for key, value := range payload {
		if msgs := flatten(value); len(msgs) > 0 {
			se.Fields[key] = msgs
		}
	}
	return se
}

// flatten reduces a DRF error value (string, list, or nested object) to strings.
func flatten(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case map[string]any:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	default:
		return nil
	}
}
