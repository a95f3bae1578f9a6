package fakes

import "go.mongodb.org/mongo-driver/bson/primitive"

func newID() string {
	return primitive.NewObjectID().Hex()
}
