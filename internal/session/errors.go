package session

import (
	"errors"

	"github.com/rpggio/bugdeck/internal/api"
)

// RegistrationError carries the normalized message for a failed registration.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return e.Message
}

// normalizeMessage extracts the backend's detail message when one exists,
// otherwise the fallback. Network failures and credential rejections are not
// distinguished here; that split belongs to the backend's error payload.
func normalizeMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
