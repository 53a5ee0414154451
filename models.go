// models.go

package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Email      string               `bson:"email" json:"email"`
	Password   string               `bson:"password" json:"-"`
	Address    string               `bson:"address,omitempty" json:"address,omitempty"`
	Contact    string               `bson:"contact,omitempty" json:"contact,omitempty"`
	Role       string               `bson:"role" json:"role"`
	DateJoined time.Time            `bson:"dateJoined" json:"dateJoined"`
	Cart       []CartItem           `bson:"cart" json:"cart"`
	Wishlist   []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	OurPrice    float64            `bson:"ourPrice" json:"ourPrice"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Rating      float64            `bson:"rating,omitempty" json:"rating,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
}

type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// CartEntry is a cart item with its product reference resolved for display.
type CartEntry struct {
	Product  Product `json:"productId"`
	Quantity int     `json:"quantity"`
}

type GeoPoint struct {
	Lat float64 `bson:"lat,omitempty" json:"lat,omitempty"`
	Lng float64 `bson:"lng,omitempty" json:"lng,omitempty"`
}

type ShippingAddress struct {
	FullName     string   `bson:"fullName" json:"fullName"`
	PhoneNumber  string   `bson:"phoneNumber" json:"phoneNumber"`
	AddressLine1 string   `bson:"addressLine1" json:"addressLine1"`
	AddressLine2 string   `bson:"addressLine2,omitempty" json:"addressLine2,omitempty"`
	City         string   `bson:"city,omitempty" json:"city,omitempty"`
	State        string   `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode   string   `bson:"postalCode,omitempty" json:"postalCode,omitempty"`
	Country      string   `bson:"country" json:"country"`
	Location     GeoPoint `bson:"location,omitempty" json:"location,omitempty"`
}

// OrderItem is a snapshot of a product at order-creation time. Name and
// price are frozen; later product edits never change an existing order.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

// Order statuses. Cancelled and returned are terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusReturned   = "returned"
)

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
