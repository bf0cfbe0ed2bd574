package db

import (
	"context"
	"log"
	"time"

	"vocab-service/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	Client   *mongo.Client
	Database *mongo.Database
)

// InitMongo connects the package-level client and verifies the connection.
func InitMongo(cfg *config.MongoDBConfig) error {
	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.PoolSize)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Printf("Error connecting to MongoDB: %v", err)
		return err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := Client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Printf("Error pinging MongoDB: %v", err)
		return err
	}

	Database = Client.Database(cfg.Database)
	log.Printf("Successfully connected to MongoDB database: %s", cfg.Database)
	return nil
}

// CloseMongo disconnects the package-level client.
func CloseMongo() {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := Client.Disconnect(ctx); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}
}
