package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentModel adalah ledger entry: sekali tertulis tidak pernah
// di-update atau dihapus. Email + ClassID sengaja lengkap di sini supaya
// efek enrollment-nya bisa di-replay kapan pun dari ledger saja.
type PaymentModel struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	ClassID       string             `bson:"class_id" json:"class_id"`
	ClassTitle    string             `bson:"class_title,omitempty" json:"class_title,omitempty"`
	Amount        float64            `bson:"amount" json:"amount"`
	TransactionID string             `bson:"transaction_id" json:"transaction_id"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
}

func (PaymentModel) CollectionName() string { return "payments" }
