package main

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/config"
	"storefront/internal/database"
)

func openDatabase() (*mongo.Database, func(), error) {
	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		_ = client.Disconnect(context.Background())
	}
	return client.Database(config.AppEnv.DBName), closeFn, nil
}
