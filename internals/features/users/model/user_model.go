package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role seorang user dalam platform.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Status permintaan role pada record user. Kosong berarti tidak ada
// permintaan yang sedang berjalan.
const (
	StatusNone      = ""
	StatusRequested = "Requested"
	StatusAccepted  = "Accepted"
	StatusRejected  = "Rejected"
)

// UserModel, satu dokumen per email (unik).
type UserModel struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Role      string             `bson:"role" json:"role"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

func (UserModel) CollectionName() string { return "users" }

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
