package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status teacher request: state machine ketat, pending → accepted atau
// pending → rejected, dua-duanya terminal.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// TeacherRequestModel hidup terpisah dari UserModel; approval MENYEBABKAN
// mutasi user yang direferensikan, bukan meng-embed-nya.
type TeacherRequestModel struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name,omitempty" json:"name,omitempty"`
	Status      string             `bson:"status" json:"status"`
	RequestedAt time.Time          `bson:"requested_at" json:"requested_at"`
}

func (TeacherRequestModel) CollectionName() string { return "teacher_requests" }
