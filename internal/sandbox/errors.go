package sandbox

import (
	"errors"
	"net/http"
)

// Errors carry the French messages the print backend answers with, so that
// clients can surface them unchanged.
var (
	ErrInvalidCredentials = errors.New("Aucun compte actif n'a été trouvé avec les identifiants fournis")
	ErrNotAuthenticated   = errors.New("Informations d'authentification non fournies.")
	ErrInvalidToken       = errors.New("Le jeton n'est valide pour aucun type de jeton.")
	ErrForbidden          = errors.New("Vous n'avez pas la permission d'effectuer cette action.")
	ErrNotFound           = errors.New("Ressource introuvable.")
	ErrEmailTaken         = errors.New("Un utilisateur avec cet email existe déjà.")
	ErrUnknownEmail       = errors.New("Aucun utilisateur avec cet email.")
	ErrInvalidResetLink   = errors.New("Lien invalide ou expiré.")
	ErrPasswordMismatch   = errors.New("Les mots de passe ne correspondent pas.")
	ErrEmptyMessage       = errors.New("Le message ne peut pas être vide.")
	ErrUnknownStatus      = errors.New("Statut de commande inconnu.")
	ErrBadQuantity        = errors.New("La quantité doit être un nombre entier.")
)

// MapHTTPStatus maps sandbox errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNotAuthenticated),
		errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownEmail):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidResetLink),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrEmptyMessage),
		errors.Is(err, ErrUnknownStatus),
		errors.Is(err, ErrBadQuantity):
		return http.StatusBadRequest
	}
	var oe *OrderError
	if errors.As(err, &oe) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// OrderError rejects a print configuration the backend would not accept.
type OrderError struct {
	Reason string
}

func (e *OrderError) Error() string {
	return e.Reason
}
