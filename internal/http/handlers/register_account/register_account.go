package registeraccount

import (
	"net/http"
	"secureauth/internal/core/services"
	registeraccount "secureauth/internal/core/services/register_account"
	"secureauth/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[registeraccount.Input, registeraccount.Result]
	flashes *response.Flashes
}

func New(
	service services.Service[registeraccount.Input, registeraccount.Result],
	flashes *response.Flashes,
) *Handler {
	if service == nil {
		panic("service must not be nil")
	}
	if flashes == nil {
		panic("flashes must not be nil")
	}
	return &Handler{service: service, flashes: flashes}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	_, err := h.service.Run(r.Context(), registeraccount.Input{Email: r.PostFormValue("email")})
	h.flashes.RedirectWithFlash(rw, r, "/", response.RegistrationFlash(err))
}
