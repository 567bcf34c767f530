package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/db"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// AuthPublicModule mounts public auth endpoints (/auth/signup, /auth/login)
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.userSignup)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private profile endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
		c.PUT("/auth/current_profile", ctl.updateCurrentProfile)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
}

func newAccountManager(secret string, store db.Store) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store}
}

func profileOf(u *model.User) packets.ProfileResponse {
	return packets.ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// POST /api/auth/signup
func (a *AccountManager) userSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	if existing, _ := a.store.GetUserByEmail(request.Email); existing != nil {
		log.Warn().Str("email", request.Email).Msg("signup email already registered")
		return nil, api.NewError(http.StatusConflict, "email already registered")
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		log.Error().Err(err).Msg("could not hash password")
		return nil, api.NewError(http.StatusInternalServerError, "something went wrong, please try again")
	}

	userID, err := a.store.CreateUser(request.Email, hashed, request.Name)
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("could not create user")
		return nil, api.NewError(http.StatusInternalServerError, "something went wrong, please try again")
	}

	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("could not generate JWT")
		return nil, api.NewError(http.StatusInternalServerError, "something went wrong, please try again")
	}

	log.Info().Int("user_id", userID).Msg("user signed up")
	return packets.TokenResponse{Token: token}, nil
}

// POST /api/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	user, err := a.store.GetUserByEmail(request.Email)
	if err != nil || user == nil || !middleware.CheckPassword(user.HashedPassword, request.Password) {
		log.Warn().Str("email", request.Email).Msg("login failed")
		return nil, api.NewError(http.StatusUnauthorized, middleware.ErrInvalidCredentials.Error())
	}

	token, err := middleware.GenerateJWT(user.ID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not generate JWT")
		return nil, api.NewError(http.StatusInternalServerError, "something went wrong, please try again")
	}

	return packets.TokenResponse{Token: token}, nil
}

// GET /api/auth/current_profile
func (a *AccountManager) getCurrentProfile(_ *gin.Context, user *model.User) (any, *api.APIError) {
	return profileOf(user), nil
}

// PUT /api/auth/current_profile
func (a *AccountManager) updateCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateCurrentProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	if request.Email != user.Email {
		if other, _ := a.store.GetUserByEmail(request.Email); other != nil {
			return nil, api.NewError(http.StatusConflict, "email already registered")
		}
	}

	if err := a.store.UpdateUserProfile(user.ID, request.Email, request.Name); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not update profile")
		return nil, api.NewError(http.StatusInternalServerError, "something went wrong, please try again")
	}

	updated, err := a.store.GetUserByID(user.ID)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not reload profile")
		return nil, api.NewError(http.StatusInternalServerError, "something went wrong, please try again")
	}
	return profileOf(updated), nil
}
