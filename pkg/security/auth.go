package security

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/TaiHuynhPL/QLTBCNTT-sub000/internal/repository"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/models"
	"github.com/TaiHuynhPL/QLTBCNTT-sub000/pkg/roles"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecretOnce sync.Once
	jwtSecret     []byte
)

// jwtKey resolves the signing key on first use so importing the package never
// hard-fails; issuing or verifying a token without a configured secret does.
func jwtKey() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")

		if secret == "" {
			if err := godotenv.Load(); err != nil {
				log.Printf("Unable to load .env: %v", err)
			}
			secret = os.Getenv("JWT_SECRET")
		}

		if secret == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}

		jwtSecret = []byte(secret)
	})

	return jwtSecret
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.Select("id", "username", "password_hash", "role").From("users").Where(goqu.Ex{"username": username})

	if _, err := query.Executor().ScanStruct(&user); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID string, role string, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"role":     role,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// ActorFromContext reconstructs the authenticated caller from the claims the
// JWT middleware stored on the request context.
func ActorFromContext(c *gin.Context) (models.Actor, error) {
	rawID, idExists := c.Get("userID")
	rawRole, roleExists := c.Get("role")
	if !idExists || !roleExists {
		return models.Actor{}, fmt.Errorf("request is not authenticated")
	}

	idString, ok := rawID.(string)
	if !ok {
		return models.Actor{}, fmt.Errorf("userID claim is not a string")
	}
	userID, err := strconv.Atoi(idString)
	if err != nil {
		return models.Actor{}, fmt.Errorf("userID claim is not numeric: %w", err)
	}

	roleString, ok := rawRole.(string)
	if !ok {
		return models.Actor{}, fmt.Errorf("role claim is not a string")
	}
	role := roles.Role(roleString)
	if !role.IsValid() {
		return models.Actor{}, fmt.Errorf("unknown role: %s", roleString)
	}

	return models.Actor{UserID: userID, Role: role}, nil
}
