package service

import (
	"context"
	"testing"

	"edumanage_backend/internals/databases/docstore"
	"edumanage_backend/internals/features/users/dto"
	"edumanage_backend/internals/features/users/model"
	"edumanage_backend/internals/helpers/errs"
)

func newService() *UserService {
	return NewUserService(docstore.NewMemoryStore())
}

func login(name, email, role, status string) *dto.LoginRequest {
	return &dto.LoginRequest{Name: name, Email: email, Role: role, Status: status}
}

func TestUpsertLoginFirstWriteCreates(t *testing.T) {
	s := newService()
	ctx := context.Background()

	u, err := s.UpsertLogin(ctx, login("Alya", "alya@x.com", model.RoleStudent, ""))
	if err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	if u.ID.IsZero() {
		t.Fatal("created user must carry its generated id")
	}
	if u.Role != model.RoleStudent || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", u)
	}

	got, err := s.GetByEmail(ctx, "alya@x.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID {
		t.Fatal("exactly one record per email")
	}
}

func TestUpsertLoginNeverOverwritesEstablishedRole(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if _, err := s.UpsertLogin(ctx, login("Bima", "bima@x.com", model.RoleTeacher, model.StatusAccepted)); err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	// login lagi dengan role berbeda: tidak boleh mengubah apa pun
	u, err := s.UpsertLogin(ctx, login("Bima", "bima@x.com", model.RoleStudent, ""))
	if err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	if u.Role != model.RoleTeacher || u.Status != model.StatusAccepted {
		t.Fatalf("established role was touched: %+v", u)
	}

	got, _ := s.GetByEmail(ctx, "bima@x.com")
	if got.Role != model.RoleTeacher || got.Status != model.StatusAccepted {
		t.Fatalf("stored record changed: %+v", got)
	}
}

func TestUpsertLoginRequestedStatusIsOverwritten(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if _, err := s.UpsertLogin(ctx, login("Citra", "citra@x.com", model.RoleStudent, model.StatusRequested)); err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	u, err := s.UpsertLogin(ctx, login("Citra", "citra@x.com", model.RoleStudent, model.StatusAccepted))
	if err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	if u.Status != model.StatusAccepted {
		t.Fatalf("status = %q, want overwrite on the Requested path", u.Status)
	}
	if u.Role != model.RoleStudent {
		t.Fatalf("role must survive the status overwrite: %+v", u)
	}

	got, _ := s.GetByEmail(ctx, "citra@x.com")
	if got.Status != model.StatusAccepted {
		t.Fatalf("stored status = %q, want Accepted", got.Status)
	}
}

func TestUpsertLoginRejectsBadPayload(t *testing.T) {
	s := newService()
	_, err := s.UpsertLogin(context.Background(), login("X", "not-an-email", model.RoleStudent, ""))
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.GetByEmail(context.Background(), "not-an-email"); !errs.IsValidation(err) && !errs.IsNotFound(err) {
		t.Fatalf("nothing may be written on validation failure, got %v", err)
	}
}

func TestMakeAdmin(t *testing.T) {
	s := newService()
	ctx := context.Background()

	u, err := s.UpsertLogin(ctx, login("Dewi", "dewi@x.com", model.RoleStudent, ""))
	if err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	if err := s.MakeAdmin(ctx, u.ID.Hex()); err != nil {
		t.Fatalf("MakeAdmin: %v", err)
	}
	got, _ := s.GetByEmail(ctx, "dewi@x.com")
	if got.Role != model.RoleAdmin {
		t.Fatalf("role = %q, want admin", got.Role)
	}

	if err := s.MakeAdmin(ctx, "zzz"); !errs.IsValidation(err) {
		t.Fatalf("malformed id must fail validation, got %v", err)
	}
	if err := s.MakeAdmin(ctx, "ffffffffffffffffffffffff"); !errs.IsNotFound(err) {
		t.Fatalf("unknown id must be not-found, got %v", err)
	}
}

func TestUpdateRoleByEmail(t *testing.T) {
	s := newService()
	ctx := context.Background()

	if _, err := s.UpsertLogin(ctx, login("Eka", "eka@x.com", model.RoleStudent, "")); err != nil {
		t.Fatalf("UpsertLogin: %v", err)
	}
	err := s.UpdateRoleByEmail(ctx, "eka@x.com", &dto.UpdateRoleRequest{Role: model.RoleTeacher, Status: model.StatusAccepted})
	if err != nil {
		t.Fatalf("UpdateRoleByEmail: %v", err)
	}
	got, _ := s.GetByEmail(ctx, "eka@x.com")
	if got.Role != model.RoleTeacher {
		t.Fatalf("role = %q, want teacher", got.Role)
	}

	err = s.UpdateRoleByEmail(ctx, "ghost@x.com", &dto.UpdateRoleRequest{Role: model.RoleTeacher})
	if !errs.IsNotFound(err) {
		t.Fatalf("unknown email must be not-found, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	s := newService()
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		if _, err := s.UpsertLogin(ctx, login("N", email, model.RoleStudent, "")); err != nil {
			t.Fatalf("UpsertLogin: %v", err)
		}
	}
	all, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
}
