package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type WebsiteInfo struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Keywords     StringList         `bson:"keywords" json:"keywords"`
	Favicon      string             `bson:"favicon" json:"favicon"`
	Logo         string             `bson:"logo" json:"logo"`
	FooterName   string             `bson:"footerName" json:"footerName"`
	ContactEmail string             `bson:"contactEmail" json:"contactEmail"`
	PhoneNumber  string             `bson:"phoneNumber" json:"phoneNumber"`
	Address      string             `bson:"address" json:"address"`
}
