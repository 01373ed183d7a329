package handlers

import (
	"errors"
	"net/http"

	"mogilev-express/internal/apperr"
	"mogilev-express/internal/domain"
	"mogilev-express/internal/logx"
)

// AuthHandler handles contact-based sign in.
type AuthHandler struct {
	usecase authUsecase
	logger  logx.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(logger logx.Logger, uc authUsecase) *AuthHandler {
	return &AuthHandler{usecase: uc, logger: logger}
}

type contactRequest struct {
	Phone      string `json:"phone"`
	TelegramID int64  `json:"telegramId"`
}

type loginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type accountResponse struct {
	Phone   string  `json:"phone"`
	Role    string  `json:"role"`
	Balance float64 `json:"balance"`
	Steps   int64   `json:"steps"`
	Kcal    int64   `json:"kcal"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  accountResponse `json:"user"`
}

func accountToResponse(a domain.Account) accountResponse {
	return accountResponse{
		Phone:   a.Phone,
		Role:    string(a.Role),
		Balance: a.Balance.InexactFloat64(),
		Steps:   a.Fitness.Steps,
		Kcal:    a.Fitness.Kcal,
	}
}

// Contact handles POST /api/auth/contact: the shared contact starts a
// login, the code is delivered out of band.
func (h *AuthHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.usecase.Issue(r.Context(), req.Phone, req.TelegramID)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid phone")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

// Login handles POST /api/auth: exchanges phone+code for a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Login(r.Context(), req.Phone, req.Code)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, loginResponse{
			Token: res.Token,
			User:  accountToResponse(res.Account),
		})
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid code")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "code expired or unknown phone")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
