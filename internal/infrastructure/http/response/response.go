// Package response writes the JSON envelope every endpoint answers with and maps
// classified errors to their status code and fixed message.
package response

import (
	"encoding/json"
	"net/http"

	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

// Messages returned for each failure class. They are part of the API contract.
const (
	MsgUnprocessable  = "Unprocessable Entity"
	MsgNotAuthorized  = "Not Authorized"
	MsgNotFound       = "Not found"
	MsgConflict       = "Conflict - The Email already exists"
	MsgInternalFailed = "Internal Server/Database Error"

	MsgMethodNotAllowed = "Method Not Allowed"
)

// Envelope is the body shape of every response.
type Envelope struct {
	Message string        `json:"message"`
	Data    []interface{} `json:"data"`
}

// Describe maps a failure class to its status code and message. Unknown kinds
// degrade to 500.
func Describe(kind domerrors.Kind) (int, string) {
	switch kind {
	case domerrors.MalformedInput:
		return http.StatusUnprocessableEntity, MsgUnprocessable
	case domerrors.Unauthenticated, domerrors.WrongCredentials:
		return http.StatusUnauthorized, MsgNotAuthorized
	case domerrors.NotFound:
		return http.StatusNotFound, MsgNotFound
	case domerrors.Conflict:
		return http.StatusConflict, MsgConflict
	default:
		return http.StatusInternalServerError, MsgInternalFailed
	}
}

// JSON writes the envelope. A nil data is sent as [].
func JSON(w http.ResponseWriter, code int, message string, data ...interface{}) {
	if data == nil {
		data = []interface{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Envelope{Message: message, Data: data})
}

// Error writes the envelope for err's classification. The cause is never exposed.
func Error(w http.ResponseWriter, err error) {
	code, msg := Describe(domerrors.KindOf(err))
	JSON(w, code, msg)
}
