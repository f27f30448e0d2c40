package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is the shared MongoDB connection, set by InitDB.
var Client *mongo.Client

var (
	UserCollection     *mongo.Collection
	SellerCollection   *mongo.Collection
	ProductCollection  *mongo.Collection
	OrderCollection    *mongo.Collection
	CartCollection     *mongo.Collection
	WishlistCollection *mongo.Collection
	BannerCollection   *mongo.Collection
	SectionCollection  *mongo.Collection
)

func databaseName() string {
	if name := os.Getenv("MONGODB_DATABASE"); name != "" {
		return name
	}
	return "shopora_db"
}

// InitDB connects to MongoDB and binds the collection handles.
func InitDB() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI not set in .env")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Client = client
	database := client.Database(databaseName())

	UserCollection = database.Collection("users")
	SellerCollection = database.Collection("sellers")
	ProductCollection = database.Collection("products")
	OrderCollection = database.Collection("orders")
	CartCollection = database.Collection("carts")
	WishlistCollection = database.Collection("wishlists")
	BannerCollection = database.Collection("banners")
	SectionCollection = database.Collection("homepage_sections")

	ensureIndexes(ctx)

	log.Println("Connected to MongoDB")
}

// ensureIndexes creates the indexes the handlers rely on: unique email,
// geo lookups for nearby sellers, and one cart/wishlist document per user.
func ensureIndexes(ctx context.Context) {
	_, err := UserCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("Failed to create users.email index:", err)
	}

	_, err = SellerCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "location", Value: "2dsphere"}},
	})
	if err != nil {
		log.Println("Failed to create sellers.location index:", err)
	}

	for name, col := range map[string]*mongo.Collection{
		"carts":     CartCollection,
		"wishlists": WishlistCollection,
	} {
		_, err = col.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			log.Printf("Failed to create %s.user_id index: %v", name, err)
		}
	}

	_, err = ProductCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	if err != nil {
		log.Println("Failed to create products.owner_id index:", err)
	}
}

// DisconnectDB closes the MongoDB connection.
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		log.Println("Failed to disconnect MongoDB:", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// OpenCollection returns a collection handle by name.
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(databaseName()).Collection(collectionName)
}
