package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Inquiry is a customer contact-form submission. It is immutable once
// created; there is no update or delete operation.
type Inquiry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName string             `bson:"productName" json:"productName" binding:"required" validate:"required"`
	Name        string             `bson:"name" json:"name" binding:"required" validate:"required"`
	Email       string             `bson:"email" json:"email" binding:"required" validate:"required"`
	Number      int64              `bson:"number" json:"number" binding:"required" validate:"required"`
	Message     string             `bson:"message" json:"message" binding:"required" validate:"required"`
}

func (i *Inquiry) Validate() error {
	return validate.Struct(i)
}
