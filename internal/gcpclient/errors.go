package gcpclient

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// IsNotFound reports whether err is the result of the server replying with http.StatusNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, http.StatusNotFound)
}

// IsAlreadyExists reports whether err is the result of the server replying with http.StatusConflict,
// which compute uses when an instance with the same name already exists in the zone.
func IsAlreadyExists(err error) bool {
	return hasCode(err, http.StatusConflict)
}

// ErrorMessage returns the provider's error.message for API errors and the
// plain error text otherwise.
func ErrorMessage(err error) string {
	var ae *googleapi.Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return err.Error()
}

func hasCode(err error, code int) bool {
	var ae *googleapi.Error
	return errors.As(err, &ae) && ae.Code == code
}
