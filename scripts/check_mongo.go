//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Verifies database connectivity and prints collection counts so an operator
// can sanity-check the source before kicking off a pull.
func main() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Fatal("MONGO_URI environment variable not set")
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "leo"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Printf("✅ Connected to %s\n\n", dbName)

	db := client.Database(dbName)
	for _, name := range []string{"users", "events", "orders"} {
		count, err := db.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			log.Fatalf("Failed to count %s: %v", name, err)
		}
		fmt.Printf("%-8s %d documents\n", name, count)
	}
}
