package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackModel dibuat sekali dan tidak pernah dimutasi. Nilai rating
// juga diproyeksikan ke dokumen kelas (denormalisasi untuk tampilan);
// koleksi feedback tetap source of truth.
type FeedbackModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassID     string             `bson:"class_id" json:"class_id"`
	ClassTitle  string             `bson:"class_title,omitempty" json:"class_title,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Rating      float64            `bson:"rating" json:"rating"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

func (FeedbackModel) CollectionName() string { return "feedback" }
