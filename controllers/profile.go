package controllers

import (
	"errors"
	"net/http"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"SereneAI/middleware"
	svc "SereneAI/pkg/services"
	utils "SereneAI/pkg/utils"
)

// Profile serves GET (read) and PUT (update) for the caller's profile.
func Profile(app *App) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := middleware.CurrentUserID(c)
		ctx := c.Request.Context()

		user, err := app.Store.GetUserProfile(ctx, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}

		if c.Request.Method == http.MethodGet {
			c.JSON(http.StatusOK, user)
			return
		}

		// PUT
		var body struct {
			Email       string         `json:"email"`
			Username    string         `json:"username"`
			Password    string         `json:"password"`
			Preferences map[string]any `json:"preferences"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}

		var updates []firestore.Update

		newEmail := strings.TrimSpace(strings.ToLower(body.Email))
		if newEmail != "" && newEmail != user.Email {
			if _, err := app.Store.GetUserByEmail(ctx, newEmail); err == nil {
				c.JSON(http.StatusConflict, gin.H{"msg": "Email already exists"})
				return
			} else if !errors.Is(err, svc.ErrNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "store error"})
				return
			}
			updates = append(updates, firestore.Update{Path: "email", Value: newEmail})
		}

		newUsername := strings.TrimSpace(body.Username)
		if newUsername != "" && newUsername != user.Username {
			if _, err := app.Store.GetUserByUsername(ctx, newUsername); err == nil {
				c.JSON(http.StatusConflict, gin.H{"msg": "Username already exists"})
				return
			} else if !errors.Is(err, svc.ErrNotFound) {
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "store error"})
				return
			}
			updates = append(updates, firestore.Update{Path: "username", Value: newUsername})
		}

		if body.Password != "" {
			if !utils.HasLetter(body.Password) || !utils.HasNumber(body.Password) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "New password must contain at least one letter and one number"})
				return
			}
			if err := user.SetPassword(body.Password); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to set password"})
				return
			}
			updates = append(updates, firestore.Update{Path: "password_hash", Value: user.PasswordHash})
		}

		if body.Preferences != nil {
			updates = append(updates, firestore.Update{Path: "preferences", Value: body.Preferences})
		}

		if len(updates) == 0 {
			c.JSON(http.StatusOK, gin.H{"msg": "nothing to update"})
			return
		}
		if err := app.Store.UpdateUserProfile(ctx, uid, updates); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update profile"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "profile updated"})
	}
}
