package http

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-user-hub/internal/logger"
	"github.com/MKhiriev/go-user-hub/internal/utils"
	"github.com/MKhiriev/go-user-hub/models"
)

// registerRequest is the body of POST /api/v1/auth/register.
type registerRequest struct {
	Username string        `json:"username"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Phone    string        `json:"phone"`
	FullName string        `json:"full_name"`
	Bio      string        `json:"bio"`
	Gender   models.Gender `json:"gender"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg(ErrInvalidJSONBody.Error())
		utils.WriteError(w, ErrInvalidJSONBody.Error(), http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.UserService.CreateUser(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		FullName: req.FullName,
		Bio:      req.Bio,
		Gender:   req.Gender,
	}, req.Password)
	if err != nil {
		log.Err(err).Msg("user registration failed")
		respondError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
	}, http.StatusCreated)
}

// token implements POST /api/v1/auth/token. It accepts the OAuth2
// password-grant form fields (username, password) and, as a convenience,
// the same pair as a JSON body.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	username, password, err := credentialsFromRequest(r)
	if err != nil {
		log.Err(err).Msg("could not read credentials")
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, username, password)
	if err != nil {
		log.Err(err).Msg("login failed")
		respondError(w, err)
		return
	}

	if err := h.services.AuthService.RequireActive(ctx, foundUser); err != nil {
		respondError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		respondError(w, err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
	}, http.StatusOK)
}

// credentialsFromRequest reads the username/password pair from either a
// form-encoded body (the OAuth2 password-grant shape) or a JSON object.
// The Content-Type check ignores media-type parameters such as charset.
func credentialsFromRequest(r *http.Request) (string, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			return "", "", ErrInvalidJSONBody
		}
		return creds.Username, creds.Password, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return r.PostFormValue("username"), r.PostFormValue("password"), nil
}
