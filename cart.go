// cart.go

package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// resolveCart joins the user's cart entries against the products collection.
// Entries whose product no longer exists are dropped from the result; the
// pruned slice is returned alongside so callers can persist it.
func resolveCart(items []CartItem) ([]CartEntry, []CartItem, error) {
	entries := []CartEntry{}
	valid := []CartItem{}
	if len(items) == 0 {
		return entries, valid, nil
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	cur, err := db.Collection("products").Find(context.Background(), bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, nil, err
	}
	var products []Product
	if err := cur.All(context.Background(), &products); err != nil {
		return nil, nil, err
	}
	byID := make(map[primitive.ObjectID]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			continue
		}
		entries = append(entries, CartEntry{Product: p, Quantity: it.Quantity})
		valid = append(valid, it)
	}
	return entries, valid, nil
}

func saveCart(userID primitive.ObjectID, items []CartItem) error {
	_, err := db.Collection("users").UpdateOne(
		context.Background(),
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"cart": items}},
	)
	return err
}

// ----- Handlers -----

func addToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		c.JSON(400, gin.H{"message": "Product ID is required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		c.JSON(400, gin.H{"message": "Invalid quantity"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid product ID format"})
		return
	}

	var product Product
	err = db.Collection("products").FindOne(context.Background(), bson.M{"_id": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(404, gin.H{"message": "Product not found"})
		return
	}
	if err != nil {
		log.Printf("add to cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to add to cart"})
		return
	}
	if product.Stock <= 0 {
		c.JSON(400, gin.H{"message": "Product is out of stock"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	found := false
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity += req.Quantity
			found = true
			break
		}
	}
	if !found {
		user.Cart = append(user.Cart, CartItem{ProductID: productID, Quantity: req.Quantity})
	}

	if err := saveCart(user.ID, user.Cart); err != nil {
		log.Printf("save cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to add to cart"})
		return
	}
	entries, _, err := resolveCart(user.Cart)
	if err != nil {
		log.Printf("resolve cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to add to cart"})
		return
	}
	c.JSON(200, gin.H{"message": "Product added to cart successfully", "cart": entries})
}

func getCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	entries, valid, err := resolveCart(user.Cart)
	if err != nil {
		log.Printf("fetch cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to fetch cart"})
		return
	}
	// Opportunistic cleanup: drop references to deleted products.
	if len(valid) != len(user.Cart) {
		if err := saveCart(user.ID, valid); err != nil {
			log.Printf("prune cart error: %v", err)
		}
	}
	c.JSON(200, entries)
}

func updateCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.Quantity < 1 {
		c.JSON(400, gin.H{"message": "Invalid product ID or quantity"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid product ID format"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	found := false
	for i := range user.Cart {
		if user.Cart[i].ProductID == productID {
			user.Cart[i].Quantity = req.Quantity
			found = true
			break
		}
	}
	if !found {
		c.JSON(404, gin.H{"message": "Item not found in cart"})
		return
	}

	if err := saveCart(user.ID, user.Cart); err != nil {
		log.Printf("update cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to update cart"})
		return
	}
	entries, _, err := resolveCart(user.Cart)
	if err != nil {
		log.Printf("resolve cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to update cart"})
		return
	}
	c.JSON(200, gin.H{"message": "Cart updated successfully", "cart": entries})
}

func removeCartItem(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(400, gin.H{"message": "Invalid product ID format"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	next := user.Cart[:0]
	for _, it := range user.Cart {
		if it.ProductID != productID {
			next = append(next, it)
		}
	}
	if len(next) == len(user.Cart) {
		c.JSON(404, gin.H{"message": "Item not found in cart"})
		return
	}
	user.Cart = next

	if err := saveCart(user.ID, user.Cart); err != nil {
		log.Printf("remove cart item error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to remove item from cart"})
		return
	}
	entries, _, err := resolveCart(user.Cart)
	if err != nil {
		log.Printf("resolve cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to remove item from cart"})
		return
	}
	c.JSON(200, gin.H{"message": "Product removed from cart successfully", "cart": entries})
}

func clearCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := saveCart(user.ID, []CartItem{}); err != nil {
		log.Printf("clear cart error: %v", err)
		c.JSON(500, gin.H{"message": "Failed to clear cart"})
		return
	}
	c.JSON(200, gin.H{"message": "Cart cleared successfully", "cart": []CartEntry{}})
}
