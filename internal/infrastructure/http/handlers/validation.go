package handlers

import (
	"encoding/json"
	"mime"
	"net/http"

	domerrors "github.com/amirhosseinghanipour/verigate/internal/domain/errors"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	maxBodyBytes      = 1 << 16
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// readCredentials accepts a JSON body or a form post. Missing fields come back empty
// and are rejected by the use case; undecodable or oversized input is malformed.
func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, error) {
	var c credentials
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			return c, domerrors.Wrap(domerrors.MalformedInput, err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return c, domerrors.Wrap(domerrors.MalformedInput, err)
		}
		c.Email = r.PostForm.Get("email")
		c.Password = r.PostForm.Get("password")
	}
	if len(c.Email) > MaxEmailLength || len(c.Password) > MaxPasswordLength {
		return c, domerrors.ErrMalformedInput
	}
	return c, nil
}
