// internals/consistency/coordinator.go
//
// Coordinator mengurutkan operasi multi-dokumen yang harus kelihatan
// atomik dari sisi caller, di atas store yang tidak punya transaksi
// lintas dokumen. Resepnya selalu sama: tulis dokumen sumber kebenaran
// dulu, baru turunan agregatnya, dan pastikan langkah turunan idempoten
// supaya aman di-replay oleh jalur rekonsiliasi.
package consistency

import (
	"context"
	"log"

	"edumanage_backend/internals/databases/docstore"
	classService "edumanage_backend/internals/features/classes/service"
	feedbackDTO "edumanage_backend/internals/features/feedback/dto"
	feedbackModel "edumanage_backend/internals/features/feedback/model"
	feedbackService "edumanage_backend/internals/features/feedback/service"
	paymentDTO "edumanage_backend/internals/features/payments/dto"
	paymentModel "edumanage_backend/internals/features/payments/model"
	paymentService "edumanage_backend/internals/features/payments/service"
	requestModel "edumanage_backend/internals/features/teacherreqs/model"
	requestService "edumanage_backend/internals/features/teacherreqs/service"
	userDTO "edumanage_backend/internals/features/users/dto"
	userModel "edumanage_backend/internals/features/users/model"
	userService "edumanage_backend/internals/features/users/service"
	"edumanage_backend/internals/helpers/errs"
)

type Coordinator struct {
	Users    *userService.UserService
	Requests *requestService.TeacherRequestService
	Classes  *classService.ClassService
	Payments *paymentService.PaymentService
	Feedback *feedbackService.FeedbackService
}

func NewCoordinator(store docstore.Store) *Coordinator {
	return &Coordinator{
		Users:    userService.NewUserService(store),
		Requests: requestService.NewTeacherRequestService(store),
		Classes:  classService.NewClassService(store),
		Payments: paymentService.NewPaymentService(store),
		Feedback: feedbackService.NewFeedbackService(store),
	}
}

/* ======================= PAYMENT → ENROLLMENT ======================= */

// ProcessPayment: validasi kelas → tulis ledger → apply enrollment.
//
// Ledger ditulis SEBELUM agregat kelas disentuh. Kalau proses mati di
// antaranya, sistem berhenti di "payment tercatat, enrollment belum" —
// kondisi yang bisa diperbaiki Reconcile dengan replay. Urutan
// sebaliknya akan meninggalkan enrollment tanpa bukti bayar, dan itu
// tidak bisa direkonstruksi.
//
// Return-nya identitas payment; caller yang butuh angka enrollment
// terbaru membaca ulang kelasnya.
func (c *Coordinator) ProcessPayment(ctx context.Context, req *paymentDTO.PaymentRequest) (*paymentModel.PaymentModel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cls, err := c.Classes.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err // belum ada yang ditulis
	}

	p, err := c.Payments.Record(ctx, req.Email, req.ClassID, cls.Title, req.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := c.Classes.EnrollStudent(ctx, req.ClassID, req.Email); err != nil {
		// ledger sudah durable; jendela ini yang ditambal Reconcile
		log.Printf("[CONSISTENCY] payment %s recorded but enrollment apply failed: %v", p.ID.Hex(), err)
		return p, errs.Inconsistency("payment %s recorded, enrollment pending repair", p.ID.Hex())
	}
	return p, nil
}

// ReplayEnrollment menerapkan ulang efek enrollment dari satu ledger
// entry. Aman dipanggil berapa kali pun: guard add-if-absent di
// EnrollStudent membuat replay kedua dan seterusnya jadi no-op.
func (c *Coordinator) ReplayEnrollment(ctx context.Context, paymentID string) error {
	p, err := c.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	_, err = c.Classes.EnrollStudent(ctx, p.ClassID, p.Email)
	return err
}

// Reconcile mereplay seluruh ledger dan mengembalikan jumlah enrollment
// yang benar-benar diperbaiki. Dipanggil dari luar jalur live (lihat
// main.go); payment untuk kelas yang sudah dihapus dicatat dan dilewati.
func (c *Coordinator) Reconcile(ctx context.Context) (int, error) {
	ledger, err := c.Payments.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for i := range ledger {
		p := &ledger[i]
		applied, err := c.Classes.EnrollStudent(ctx, p.ClassID, p.Email)
		switch {
		case errs.IsNotFound(err) || errs.IsValidation(err):
			log.Printf("[RECONCILE] payment %s references missing class %s, skipped", p.ID.Hex(), p.ClassID)
			continue
		case err != nil:
			return repaired, err
		case applied:
			log.Printf("[RECONCILE] payment %s replayed: %s enrolled into %s", p.ID.Hex(), p.Email, p.ClassID)
			repaired++
		}
	}
	return repaired, nil
}

/* ======================= TEACHER REQUESTS ======================= */

// SubmitTeacherRequest membuat request pending untuk user yang sudah
// terdaftar dan menandai status user jadi Requested.
func (c *Coordinator) SubmitTeacherRequest(ctx context.Context, email string) (*requestModel.TeacherRequestModel, error) {
	u, err := c.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	req, err := c.Requests.Submit(ctx, u.Email, u.Name)
	if err != nil {
		return nil, err
	}
	if err := c.Users.UpdateRoleByEmail(ctx, u.Email, &userDTO.UpdateRoleRequest{
		Role:   u.Role,
		Status: userModel.StatusRequested,
	}); err != nil {
		log.Printf("[CONSISTENCY] request %s submitted but user status flag failed: %v", req.ID.Hex(), err)
	}
	return req, nil
}

// ApproveTeacherRequest adalah operasi dua dokumen:
//
//  1. request pending → accepted lewat conditional update; precondition
//     gagal berarti request sudah resolved → Conflict, bukan re-apply.
//  2. user yang direferensikan di-grant role teacher.
//
// Kalau (1) sukses tapi user-nya sudah tidak ada, request terlanjur
// accepted tanpa role yang diberikan. Store tidak menjamin rollback,
// jadi kondisi itu TIDAK ditelan: dilog dan dikembalikan sebagai
// Inconsistency supaya jalur perbaikan tahu ada yang harus ditambal.
func (c *Coordinator) ApproveTeacherRequest(ctx context.Context, requestID string) error {
	req, err := c.Requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	matched, err := c.Requests.MarkAccepted(ctx, requestID)
	if err != nil {
		return err
	}
	if !matched {
		return errs.Conflict("teacher request %s already resolved", requestID)
	}

	granted, err := c.Users.GrantTeacherRole(ctx, req.Email)
	if err != nil {
		return err
	}
	if !granted {
		log.Printf("[CONSISTENCY] request %s accepted but user %s not found, role not granted", requestID, req.Email)
		return errs.Inconsistency("request %s accepted but user %s is gone", requestID, req.Email)
	}
	return nil
}

// RejectTeacherRequest: pending → rejected, lalu flag status user.
func (c *Coordinator) RejectTeacherRequest(ctx context.Context, requestID string) error {
	req, err := c.Requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	matched, err := c.Requests.MarkRejected(ctx, requestID)
	if err != nil {
		return err
	}
	if !matched {
		return errs.Conflict("teacher request %s already resolved", requestID)
	}

	if _, err := c.Users.MarkRejected(ctx, req.Email); err != nil {
		log.Printf("[CONSISTENCY] request %s rejected but user status flag failed: %v", requestID, err)
	}
	return nil
}

/* ======================= FEEDBACK ======================= */

// SubmitFeedback menulis feedback lalu mendorong nilai rating ke
// proyeksi di dokumen kelas. Push kedua best-effort dengan batas lemah
// yang sama seperti jalur payment; feedback-nya sendiri sudah durable.
func (c *Coordinator) SubmitFeedback(ctx context.Context, req *feedbackDTO.FeedbackRequest) (*feedbackModel.FeedbackModel, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cls, err := c.Classes.GetByID(ctx, req.ClassID)
	if err != nil {
		return nil, err
	}

	f := req.ToModel()
	f.ClassTitle = cls.Title
	f, err = c.Feedback.Insert(ctx, f)
	if err != nil {
		return nil, err
	}

	if err := c.Classes.PushRating(ctx, req.ClassID, req.Rating); err != nil {
		log.Printf("[CONSISTENCY] feedback %s stored but rating projection failed: %v", f.ID.Hex(), err)
	}
	return f, nil
}
