package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/storely/storefront-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Phone     string `json:"phoneNumber"`
	Address   string `json:"address"`
	Zipcode   string `json:"zipcode"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// publicUser is the slice of the user record returned with tokens.
func publicUser(u models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"firstName": u.FirstName,
		"role":      u.Role,
	}
}

func tokenPair(u models.User) (gin.H, error) {
	access, err := IssueAccessToken(u)
	if err != nil {
		return nil, err
	}
	refresh, err := IssueRefreshToken(u)
	if err != nil {
		return nil, err
	}
	return gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         publicUser(u),
	}, nil
}

// -------- Handlers --------

// RegisterHandler creates a customer account and returns a token pair.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		err := db.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  string(hash),
			Phone:     req.Phone,
			Address:   req.Address,
			Zipcode:   req.Zipcode,
			City:      req.City,
			Country:   req.Country,
			Role:      models.RoleCustomer,
			IsActive:  true,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp, err := tokenPair(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// LoginHandler checks credentials and returns a token pair.
func LoginHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		resp, err := tokenPair(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// RefreshHandler mints a new access token from a refresh token.
func RefreshHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh Token Required"})
			return
		}
		if Blacklist.Has(req.Token) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Token is invalid"})
			return
		}

		userID, err := ParseRefreshToken(req.Token)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid Refresh Token"})
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "User not found"})
			return
		}

		access, err := IssueAccessToken(user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": access})
	}
}

// LogoutHandler revokes the presented access token until its natural expiry.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token != "" && token != header {
			Blacklist.Add(token, remainingTTL(token))
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// remainingTTL reads the exp claim without re-validating; an unparseable
// token just gets the full access TTL.
func remainingTTL(token string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return AccessTokenTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return AccessTokenTTL
	}
	return time.Until(exp.Time)
}
