package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID 生成 24 位 hex 的 ObjectID
func NewID() string { return primitive.NewObjectID().Hex() }

func ValidID(id string) bool { return primitive.IsValidObjectID(id) }
