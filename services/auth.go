package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jakobos/10x-cards/dto"
	"github.com/jakobos/10x-cards/model"
	"github.com/jakobos/10x-cards/services/repositories"
	"github.com/jakobos/10x-cards/shared"
)

// AuthService owns user registration, login and the bearer-token guard.
// Identity here is deliberately minimal: the core workflow only needs a
// stable user id for ownership checks and rate-limit keys.
type AuthService struct {
	context.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService

	userRepo *repositories.UserRepository
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	svc.userRepo = repositories.NewUserRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *AuthService) Register(req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if _, err := svc.userRepo.GetUserByEmail(req.Email); err == nil {
		return nil, shared.NewConflictError("Email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	if _, err := svc.userRepo.GetUserByUsername(req.Username); err == nil {
		return nil, shared.NewConflictError("Username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, svc.sqlSvc.HandleError(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewInternalError("Failed to hash password")
	}

	user, err := svc.userRepo.CreateUser(&model.User{
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashed),
	})
	if err != nil {
		return nil, svc.sqlSvc.HandleError(err)
	}

	log.WithField("user_id", user.ID).Info("User registered")

	return &dto.RegisterResponse{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

func (svc *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := svc.userRepo.GetUserByEmail(req.Email)
	if err != nil {
		return nil, shared.NewUnauthorizedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, shared.NewUnauthorizedError("Invalid email or password")
	}

	tokenPair, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, shared.NewInternalError("Failed to generate token")
	}

	user.LastLogin = time.Now()
	if err := svc.userRepo.UpdateUser(user); err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("Failed to update last login")
	}

	return &dto.LoginResponse{
		UserID:    user.ID,
		TokenPair: *tokenPair,
	}, nil
}

// RequiredAuth verifies the bearer token and stores the user id in locals
// under shared.UserID.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		userID, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		if userID == "" {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid user ID in token")
		}

		c.Locals(shared.UserID, userID)
		return c.Next()
	}
}
