package controllers

import (
	"net/http"
	"os"
	"time"

	"Ironsights/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// @Summary Exchanges the admin secret for a bearer token
// @Description The shared admin secret yields a short-lived JWT for the REST admin surface
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} object{token=string}
// @Failure 401 {object} object{error=string}
// @Router /admin/login [post]
func AdminLogin(c *gin.Context) {
	var req struct {
		Secret string `json:"secret" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Secret is required"})
		return
	}
	if !utils.VerifyAdminSecret(req.Secret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(12 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("ADMIN_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}
