package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"edumanage_backend/internals/databases/docstore"
	"edumanage_backend/internals/features/payments/model"
	"edumanage_backend/internals/helpers/errs"
)

// PaymentService hanya menulis dan membaca ledger. Efek samping
// enrollment diurus coordinator; service ini tidak menyentuh kelas.
type PaymentService struct {
	payments docstore.Collection
}

func NewPaymentService(store docstore.Store) *PaymentService {
	return &PaymentService{payments: store.Collection(docstore.ColPayments)}
}

// Record menulis satu ledger entry, immutable. Transaction id digenerate
// di sini, bukan diterima dari caller.
func (s *PaymentService) Record(ctx context.Context, email, classID, classTitle string, amount float64) (*model.PaymentModel, error) {
	p := &model.PaymentModel{
		Email:         email,
		ClassID:       classID,
		ClassTitle:    classTitle,
		Amount:        amount,
		TransactionID: uuid.NewString(),
		PaidAt:        time.Now(),
	}
	id, err := s.payments.InsertOne(ctx, p)
	if err != nil {
		return nil, errs.Unavailable("insert payment", err)
	}
	oid, _ := docstore.ParseID(id)
	p.ID = oid
	return p, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id string) (*model.PaymentModel, error) {
	if _, err := docstore.ParseID(id); err != nil {
		return nil, errs.Validation("malformed payment id %q", id)
	}
	var p model.PaymentModel
	err := s.payments.FindByID(ctx, id, &p)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, errs.NotFound("payment %s not found", id)
	}
	if err != nil {
		return nil, errs.Unavailable("find payment", err)
	}
	return &p, nil
}

func (s *PaymentService) ListByEmail(ctx context.Context, email string) ([]model.PaymentModel, error) {
	if email == "" {
		return nil, errs.Validation("email is required")
	}
	var out []model.PaymentModel
	if err := s.payments.Find(ctx, docstore.M{"email": email}, &out); err != nil {
		return nil, errs.Unavailable("list payments by email", err)
	}
	return out, nil
}

// ListAll dipakai jalur rekonsiliasi untuk replay seluruh ledger.
func (s *PaymentService) ListAll(ctx context.Context) ([]model.PaymentModel, error) {
	var out []model.PaymentModel
	if err := s.payments.Find(ctx, docstore.M{}, &out); err != nil {
		return nil, errs.Unavailable("list payments", err)
	}
	return out, nil
}
