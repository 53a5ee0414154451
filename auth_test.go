// auth_test.go

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func probeRouter() *gin.Engine {
	r := gin.New()
	r.GET("/probe", AuthMiddleware, func(c *gin.Context) {
		c.JSON(200, gin.H{"userId": c.GetString("userId"), "role": c.GetString("userRole")})
	})
	r.GET("/admin-probe", AuthMiddleware, AdminMiddleware, func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, err := issueToken("64f000000000000000000001", "user")
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}

	w := performRequest(probeRouter(), "GET", "/probe", token, nil)
	if w.Code != 200 {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, "64f000000000000000000001") {
		t.Errorf("userId claim not propagated, body %s", body)
	}
	if !strings.Contains(body, `"role":"user"`) {
		t.Errorf("role claim not propagated, body %s", body)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	expired := func() string {
		claims := JWTClaims{
			UserID: "u1",
			Role:   "user",
			StandardClaims: jwt.StandardClaims{
				ExpiresAt: time.Now().Add(-time.Hour).Unix(),
			},
		}
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
		return s
	}()
	wrongKey := func() string {
		claims := JWTClaims{UserID: "u1", Role: "admin"}
		s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		return s
	}()

	tests := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", expired},
		{"wrong signing key", wrongKey},
	}
	r := probeRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, "GET", "/probe", tt.token, nil)
			if w.Code != 401 {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	r := probeRouter()

	userToken, _ := issueToken("64f000000000000000000001", "user")
	w := performRequest(r, "GET", "/admin-probe", userToken, nil)
	if w.Code != 403 {
		t.Errorf("user role: status = %d, want 403", w.Code)
	}

	adminToken, _ := issueToken("64f000000000000000000002", "admin")
	w = performRequest(r, "GET", "/admin-probe", adminToken, nil)
	if w.Code != 200 {
		t.Errorf("admin role: status = %d, want 200", w.Code)
	}
}

func TestIssueToken_RoundTrip(t *testing.T) {
	tokenStr, err := issueToken("abc123", "admin")
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(*jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil {
		t.Fatalf("ParseWithClaims() error = %v", err)
	}
	claims := token.Claims.(*JWTClaims)
	if claims.UserID != "abc123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "abc123")
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want %q", claims.Role, "admin")
	}
	if claims.ExpiresAt <= time.Now().Unix() {
		t.Error("token should expire in the future")
	}
}

