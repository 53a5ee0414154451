// auth.go

package main

import (
	"context"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type JWTClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

func issueToken(userID, role string) (string, error) {
	claims := JWTClaims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func AuthMiddleware(c *gin.Context) {
	tokenStr := c.GetHeader("Authorization")
	if len(tokenStr) < 8 || tokenStr[:7] != "Bearer " {
		c.AbortWithStatusJSON(401, gin.H{"message": "No token provided"})
		return
	}
	tokenStr = tokenStr[7:]
	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		c.AbortWithStatusJSON(401, gin.H{"message": "Invalid token"})
		return
	}
	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		c.AbortWithStatusJSON(401, gin.H{"message": "Invalid token"})
		return
	}
	c.Set("userId", claims.UserID)
	c.Set("userRole", claims.Role)
	c.Next()
}

func AdminMiddleware(c *gin.Context) {
	if c.GetString("userRole") != "admin" {
		c.AbortWithStatusJSON(403, gin.H{"message": "Access denied. Admins only."})
		return
	}
	c.Next()
}

// currentUser loads the authenticated user's document.
func currentUser(c *gin.Context) (User, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(401, gin.H{"message": "Invalid or missing user"})
		return User{}, false
	}
	var user User
	err = db.Collection("users").FindOne(context.Background(), bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(404, gin.H{"message": "User not found"})
		return User{}, false
	}
	if err != nil {
		log.Printf("load user error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return User{}, false
	}
	return user, true
}

// ----- Handlers -----

func signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Address  string `json:"address"`
		Contact  string `json:"contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(400, gin.H{"message": "Email and password are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bcrypt error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return
	}

	user := User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Address:    req.Address,
		Contact:    req.Contact,
		Role:       "user",
		DateJoined: time.Now(),
		Cart:       []CartItem{},
		Wishlist:   []primitive.ObjectID{},
	}
	res, err := db.Collection("users").InsertOne(context.Background(), user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(400, gin.H{"message": "Email already registered"})
			return
		}
		log.Printf("signup insert error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	c.JSON(201, user)
}

func login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(400, gin.H{"message": "Email and password are required"})
		return
	}
	var user User
	err := db.Collection("users").FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		c.JSON(401, gin.H{"message": "Invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(401, gin.H{"message": "Invalid email or password"})
		return
	}
	tokenStr, err := issueToken(user.ID.Hex(), user.Role)
	if err != nil {
		log.Printf("token sign error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return
	}
	c.JSON(200, gin.H{"user": user, "token": tokenStr})
}

func getUserByEmail(c *gin.Context) {
	email := c.Query("email")
	var user User
	err := db.Collection("users").FindOne(context.Background(), bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(404, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		log.Printf("get user error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return
	}
	c.JSON(200, user)
}

func updateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Contact string `json:"contact"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "Invalid input"})
		return
	}
	update := bson.M{"name": req.Name, "address": req.Address, "contact": req.Contact}
	err := db.Collection("users").FindOneAndUpdate(
		context.Background(),
		bson.M{"_id": user.ID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		log.Printf("update profile error: %v", err)
		c.JSON(500, gin.H{"message": "Update failed"})
		return
	}
	c.JSON(200, user)
}

func changePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.OldPassword == "" || req.NewPassword == "" {
		c.JSON(400, gin.H{"message": "Old and new passwords are required"})
		return
	}
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		c.JSON(401, gin.H{"message": "Old password is incorrect"})
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bcrypt error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return
	}
	_, err = db.Collection("users").UpdateOne(
		context.Background(),
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": string(hashed)}},
	)
	if err != nil {
		log.Printf("change password error: %v", err)
		c.JSON(500, gin.H{"message": "Server error"})
		return
	}
	c.JSON(200, gin.H{"message": "Password updated successfully"})
}
