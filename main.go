// main.go

package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	dbClient  *mongo.Client
	db        *mongo.Database
	jwtSecret []byte
	mailer    Mailer
	otpStore  *OTPStore
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	mongoUri := os.Getenv("MONGO_URI")
	if mongoUri == "" {
		log.Fatal("MONGO_URI not set")
	}
	jwtSecret = []byte(getEnv("JWT_SECRET", "SECRET"))

	log.Println("connecting to MongoDB...")
	client, err := mongo.NewClient(options.Client().ApplyURI(mongoUri))
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		log.Fatal(err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}
	dbClient = client
	db = client.Database("nextbuy")
	log.Println("MongoDB connection successful")

	// Mongoose declared users.email unique; here the index is created explicitly.
	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatal(err)
	}

	mailer = NewResendMailer(os.Getenv("RESEND_API_KEY"), getEnv("EMAIL_FROM", "NextBuy <noreply@nextbuy.example>"))
	otpStore = NewOTPStore()

	r := setupRouter()

	c := cron.New()
	c.AddFunc("@midnight", runPendingOrderReminderTask)
	c.Start()

	port := getEnv("PORT", "5000")
	log.Printf("server running on port %s", port)
	r.Run(":" + port)
}

func setupRouter() *gin.Engine {
	r := gin.Default()

	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ",")
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "NextBuy backend is running")
	})

	// Auth
	r.POST("/api/auth/signup", signup)
	r.POST("/api/auth/login", login)
	r.POST("/api/auth/send-otp", sendOTP)
	r.POST("/api/auth/verify-otp", verifyOTP)

	// User
	r.GET("/api/user/me", getUserByEmail)
	user := r.Group("/api/user", AuthMiddleware)
	{
		user.PUT("/profile", updateProfile)
		user.PUT("/change-password", changePassword)
	}

	// Products (reads are public, writes are admin-only)
	r.GET("/api/product", listProducts)
	r.GET("/api/product/:id", getProduct)
	admin := r.Group("/api", AuthMiddleware, AdminMiddleware)
	{
		admin.POST("/product", createProduct)
		admin.PUT("/product/:id", updateProduct)
		admin.DELETE("/product/:id", deleteProduct)
		admin.POST("/admin/product", createProduct)
	}

	// Cart
	cart := r.Group("/api/cart", AuthMiddleware)
	{
		cart.POST("/add", addToCart)
		cart.GET("", getCart)
		cart.PUT("/update", updateCart)
		cart.DELETE("/remove/:productId", removeCartItem)
		cart.DELETE("/clear", clearCart)
	}

	// Wishlist
	wishlist := r.Group("/api/wishlist", AuthMiddleware)
	{
		wishlist.POST("/add", addToWishlist)
		wishlist.GET("", getWishlist)
		wishlist.DELETE("/remove/:productId", removeFromWishlist)
		wishlist.DELETE("/clear", clearWishlist)
	}

	// Orders
	orders := r.Group("/api/orders", AuthMiddleware)
	{
		orders.POST("", createOrder)
		orders.GET("", getOrders)
		orders.GET("/all", getAllOrders)
		orders.PUT("/cancel/:orderId", cancelOrder)
		orders.PUT("/return/:id", returnOrder)
		orders.PUT("/:orderId/status", updateOrderStatus)
	}

	return r
}
