package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/ovofarm/backoffice/internal/auth"
	"github.com/ovofarm/backoffice/internal/models"
	"github.com/ovofarm/backoffice/internal/service"
	"github.com/ovofarm/backoffice/internal/validation"
)

// RegisterAuthRoutes registers the public register/login routes.
func RegisterAuthRoutes(r gin.IRouter, authenticator auth.Authenticator, jwtManager *auth.JWTManager, v *validatorv10.Validate) {
	r.POST("/auth/register", func(c *gin.Context) {
		var req validation.RegisterRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		user, err := authenticator.Register(c.Request.Context(), req.Email, req.DisplayName, req.Password, models.ParseRole(req.Role))
		if err != nil {
			if err == auth.ErrWeakPassword {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_data", "field": "password", "msg": err.Error()})
				return
			}
			writeError(c, err)
			return
		}

		token, err := jwtManager.Generate(user)
		if err != nil {
			slog.Error("Token generation failed", "user_id", user.ID, "error", err)
			writeError(c, err)
			return
		}

		slog.Info("User registered", "user_id", user.ID, "email", user.Email, "role", user.Role)
		c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
	})

	r.POST("/auth/login", func(c *gin.Context) {
		var req validation.LoginRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}

		token, err := jwtManager.Generate(user)
		if err != nil {
			slog.Error("Token generation failed", "user_id", user.ID, "error", err)
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	})
}

// RegisterUserRoutes registers user lookup and the cascade delete.
func RegisterUserRoutes(r gin.IRouter, svc *service.UserService) {
	r.GET("/users", func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users})
	})

	r.GET("/users/:id", func(c *gin.Context) {
		user, err := svc.GetUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	})

	r.DELETE("/users/:id", func(c *gin.Context) {
		if err := svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
