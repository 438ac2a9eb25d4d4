package handlers

import (
	"net/http"

	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/verigate/internal/infrastructure/http/response"
)

const MsgProtected = "Success! You are now viewing a protected route"

// Protected is the sample resource behind RequireSession. It echoes the session's email.
func Protected(w http.ResponseWriter, r *http.Request) {
	email := middleware.AccountEmailFromContext(r.Context())
	response.JSON(w, http.StatusOK, MsgProtected, map[string]string{"email": email})
}
