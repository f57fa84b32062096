package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// WebsiteInfoStore manages the single site settings document.
type WebsiteInfoStore struct {
	coll *mongo.Collection
}

func NewWebsiteInfoStore(db *mongo.Database) *WebsiteInfoStore {
	return &WebsiteInfoStore{coll: db.Collection(websiteInfoCollection)}
}

func (s *WebsiteInfoStore) Get(ctx context.Context) (models.WebsiteInfo, error) {
	var info models.WebsiteInfo
	if err := s.coll.FindOne(ctx, bson.M{}).Decode(&info); err != nil {
		return models.WebsiteInfo{}, translate(err)
	}
	return info, nil
}

func (s *WebsiteInfoStore) Save(ctx context.Context, info models.WebsiteInfo) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{},
		bson.M{"$set": bson.M{
			"title":        info.Title,
			"description":  info.Description,
			"keywords":     info.Keywords,
			"favicon":      info.Favicon,
			"logo":         info.Logo,
			"footerName":   info.FooterName,
			"contactEmail": info.ContactEmail,
			"phoneNumber":  info.PhoneNumber,
			"address":      info.Address,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save website info: %w", err)
	}
	return nil
}
