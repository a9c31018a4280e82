package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AuthHandler struct {
	accounts account.Repository
	secret   string
	ttl      time.Duration
}

func NewAuthHandler(accounts account.Repository, secret string, ttl time.Duration) *AuthHandler {
	return &AuthHandler{accounts: accounts, secret: secret, ttl: ttl}
}

// --------- Requests ---------

type RegisterClientRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`

	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Reason    string `json:"reason"`
}

// RegisterRequest needs the client fields for role=client only.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin client"`

	FirstName string `json:"first_name" binding:"required_if=Role client"`
	LastName  string `json:"last_name" binding:"required_if=Role client"`
	Phone     string `json:"phone" binding:"required_if=Role client"`
	Reason    string `json:"reason"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// RegisterClient is the public sign-up: a client login plus its record.
func (h *AuthHandler) RegisterClient(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	client := &models.Client{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     normalizeEmail(req.Email),
		Reason:    req.Reason,
	}

	h.create(c, req.Email, req.Password, models.RoleClient, client)
}

// Register lets an admin create another admin or a client account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	var client *models.Client
	if req.Role == models.RoleClient {
		client = &models.Client{
			FirstName: strings.TrimSpace(req.FirstName),
			LastName:  strings.TrimSpace(req.LastName),
			Phone:     strings.TrimSpace(req.Phone),
			Email:     normalizeEmail(req.Email),
			Reason:    req.Reason,
		}
	}

	h.create(c, req.Email, req.Password, req.Role, client)
}

func (h *AuthHandler) create(c *gin.Context, email, password, role string, client *models.Client) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao registrar.")
		return
	}

	user := &models.User{
		Email:        normalizeEmail(email),
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.accounts.Create(c.Request.Context(), user, client); err != nil {
		if errors.Is(err, account.ErrEmailTaken) {
			httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
			return
		}
		writeError(c, err)
		return
	}

	token, err := middleware.IssueToken(h.secret, h.ttl, user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"client": client,
		"token":  token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.accounts.FindByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		writeError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := middleware.IssueToken(h.secret, h.ttl, user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// --------- Bootstrap ---------

// EnsureAdmin creates the bootstrap admin when no account uses email yet.
func EnsureAdmin(ctx context.Context, accounts account.Repository, email, password string) error {
	email = normalizeEmail(email)

	_, err := accounts.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return fmt.Errorf("find admin: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	err = accounts.Create(ctx, &models.User{Email: email, PasswordHash: string(hashed), Role: models.RoleAdmin}, nil)
	if err != nil && !errors.Is(err, account.ErrEmailTaken) {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info().Str("email", email).Msg("bootstrap admin ready")
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
