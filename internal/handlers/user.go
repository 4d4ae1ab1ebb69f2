package handlers

import (
	"GophSign/internal/config"
	"GophSign/internal/middleware"
	"GophSign/internal/model"
	"GophSign/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultSessionTTL = 24 * time.Hour

// UserHandler — регистрация, вход и сессия.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User *model.User `json:"user"`
}

// Register регистрация пользователя
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "Dados incompletos")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, h.Logger, "Register", err, "Erro ao criar usuário")
		return
	}

	h.Logger.Infow("user registered", "user_id", user.ID)
	writeMessage(w, http.StatusCreated, "Usuário criado com sucesso")
}

// Login вход по email и паролю, выдаёт cookie сессии
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Login: invalid request body", "error", err)
		writeMessage(w, http.StatusBadRequest, "Dados incompletos")
		return
	}

	user, err := h.UserService.SignIn(r.Context(), service.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, h.Logger, "Login", err, msgInternal)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret, h.sessionTTL()); err != nil {
		h.Logger.Errorw("Login: failed to issue token", "user_id", user.ID, "error", err)
		writeMessage(w, http.StatusInternalServerError, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

// Logout сбрасывает cookie сессии
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	writeMessage(w, http.StatusOK, "Sessão encerrada")
}

// Session возвращает пользователя текущей сессии
func (h *UserHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	user, err := h.UserService.GetByID(r.Context(), userID)
	// токен пережил пользователя
	if errors.Is(err, service.ErrUserNotFound) {
		err = service.ErrUnauthenticated
	}
	if err != nil {
		writeError(w, h.Logger, "Session", err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *UserHandler) sessionTTL() time.Duration {
	if h.Config.SessionTTL > 0 {
		return h.Config.SessionTTL
	}
	return defaultSessionTTL
}
