package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	BookingsCollection      *mongo.Collection
	WaitlistCollection      *mongo.Collection
	TransactionsCollection  *mongo.Collection
	SiteSettingsCollection  *mongo.Collection
	NotificationsCollection *mongo.Collection
	Client                  *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("pulsefit")
	UserCollection = database.Collection("users")
	BookingsCollection = database.Collection("bookings")
	WaitlistCollection = database.Collection("waitlist")
	TransactionsCollection = database.Collection("transactions")
	SiteSettingsCollection = database.Collection("sitesettings")
	NotificationsCollection = database.Collection("notifications")

	ensureIndexes()
}

// ensureIndexes creates the indexes the booking invariants lean on. The
// partial unique index makes "one active booking per user per slot" hold
// even if two requests slip past the application-level check.
func ensureIndexes() {
	_, err := BookingsCollection.Indexes().CreateMany(context.TODO(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userid", Value: 1}, {Key: "date", Value: 1}, {Key: "timeslot", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "active"}),
		},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "timeslot", Value: 1}}},
	})
	if err != nil {
		log.Printf("booking index creation: %v", err)
	}

	_, err = WaitlistCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "userid", Value: 1}, {Key: "date", Value: 1}, {Key: "timeslot", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("waitlist index creation: %v", err)
	}

	_, err = UserCollection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("user index creation: %v", err)
	}
}
