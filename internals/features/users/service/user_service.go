package service

import (
	"context"
	"errors"
	"time"

	"edumanage_backend/internals/databases/docstore"
	"edumanage_backend/internals/features/users/dto"
	"edumanage_backend/internals/features/users/model"
	"edumanage_backend/internals/helpers/errs"
)

type UserService struct {
	users docstore.Collection
}

func NewUserService(store docstore.Store) *UserService {
	return &UserService{users: store.Collection(docstore.ColUsers)}
}

/* ======================= UPSERT ON LOGIN ======================= */

// UpsertLogin menyimpan user saat login.
//
// Aturannya asimetris dan memang harus begitu:
//   - belum ada record untuk email ini  → insert baru (first write wins)
//   - record ada dan statusnya Requested → hanya kolom status yang
//     di-overwrite dengan status dari payload (jalur re-submit request)
//   - selain itu → kembalikan record apa adanya; login TIDAK pernah
//     menimpa role yang sudah ditetapkan
//
// Pengecualian Requested ditulis sebagai conditional update dengan
// precondition status=Requested pada filternya, bukan upsert generik.
func (s *UserService) UpsertLogin(ctx context.Context, req *dto.LoginRequest) (*model.UserModel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var existing model.UserModel
	err := s.users.FindOne(ctx, docstore.M{"email": req.Email}, &existing)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		u := req.ToModel()
		id, insErr := s.users.InsertOne(ctx, u)
		if insErr != nil {
			return nil, errs.Unavailable("insert user", insErr)
		}
		oid, _ := docstore.ParseID(id)
		u.ID = oid
		return u, nil
	case err != nil:
		return nil, errs.Unavailable("find user by email", err)
	}

	if existing.Status == model.StatusRequested {
		matched, updErr := s.users.UpdateOne(ctx,
			docstore.M{"_id": existing.ID, "status": model.StatusRequested},
			docstore.M{"$set": docstore.M{"status": req.Status}},
		)
		if updErr != nil {
			return nil, errs.Unavailable("update user status", updErr)
		}
		if matched {
			existing.Status = req.Status
		}
		// !matched: status berubah di tengah jalan, record berjalan yg menang
		return &existing, nil
	}

	return &existing, nil
}

/* ======================= READS ======================= */

func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	if email == "" {
		return nil, errs.Validation("email is required")
	}
	var u model.UserModel
	err := s.users.FindOne(ctx, docstore.M{"email": email}, &u)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, errs.NotFound("user %s not found", email)
	}
	if err != nil {
		return nil, errs.Unavailable("find user by email", err)
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]model.UserModel, error) {
	var out []model.UserModel
	if err := s.users.Find(ctx, docstore.M{}, &out); err != nil {
		return nil, errs.Unavailable("list users", err)
	}
	return out, nil
}

/* ======================= ROLE MUTATIONS ======================= */

func (s *UserService) UpdateRoleByEmail(ctx context.Context, email string, req *dto.UpdateRoleRequest) error {
	if email == "" {
		return errs.Validation("email is required")
	}
	if err := req.Validate(); err != nil {
		return err
	}
	matched, err := s.users.UpdateOne(ctx,
		docstore.M{"email": email},
		docstore.M{"$set": docstore.M{
			"role":       req.Role,
			"status":     req.Status,
			"created_at": time.Now(),
		}},
	)
	if err != nil {
		return errs.Unavailable("update user role", err)
	}
	if !matched {
		return errs.NotFound("user %s not found", email)
	}
	return nil
}

// MakeAdmin set role admin tanpa precondition apa pun. Dibiarkan begitu
// mengikuti perilaku sistem aslinya; risiko tercatat di DESIGN.md.
func (s *UserService) MakeAdmin(ctx context.Context, userID string) error {
	oid, err := docstore.ParseID(userID)
	if err != nil {
		return errs.Validation("malformed user id %q", userID)
	}
	matched, err := s.users.UpdateOne(ctx,
		docstore.M{"_id": oid},
		docstore.M{"$set": docstore.M{"role": model.RoleAdmin}},
	)
	if err != nil {
		return errs.Unavailable("make admin", err)
	}
	if !matched {
		return errs.NotFound("user %s not found", userID)
	}
	return nil
}

// GrantTeacherRole dipakai coordinator saat approval teacher request.
// matched=false artinya user dengan email itu sudah tidak ada.
func (s *UserService) GrantTeacherRole(ctx context.Context, email string) (bool, error) {
	matched, err := s.users.UpdateOne(ctx,
		docstore.M{"email": email},
		docstore.M{"$set": docstore.M{
			"role":   model.RoleTeacher,
			"status": model.StatusAccepted,
		}},
	)
	if err != nil {
		return false, errs.Unavailable("grant teacher role", err)
	}
	return matched, nil
}

// MarkRejected menset status Rejected pada user yg requestnya ditolak.
func (s *UserService) MarkRejected(ctx context.Context, email string) (bool, error) {
	matched, err := s.users.UpdateOne(ctx,
		docstore.M{"email": email},
		docstore.M{"$set": docstore.M{"status": model.StatusRejected}},
	)
	if err != nil {
		return false, errs.Unavailable("mark user rejected", err)
	}
	return matched, nil
}
