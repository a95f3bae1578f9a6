package approval

import (
	"context"
	"encoding/base64"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/services/core/fakes"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"
	"medibook-service/internal/pkg/utils"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApprovalUsecase(doctors *fakes.DoctorRepository, storage *fakes.Storage, events *fakes.EventPublisher) contracts.ApprovalUsecase {
	internalConfig := &config.InternalConfig{App: config.App{DoctorImageMaxUploadSizeInMB: 1}}
	return NewApprovalUsecase(doctors, storage, events, internalConfig, "doctors", zap.NewNop())
}

func registration(email string) *requests.RegisterDoctor {
	return &requests.RegisterDoctor{
		Name:       "Dr. Emily Larson",
		Email:      email,
		Password:   "s3cret-pass",
		Speciality: "Gynecologist",
		Degree:     "MBBS",
		Experience: "3 Years",
		About:      "Committed to preventive care.",
		Fees:       60,
		Address:    requests.Address{Line1: "27th Cross", Line2: "Richmond"},
	}
}

func TestApprovalUsecase_RegisterDoctor(t *testing.T) {
	ctx := context.Background()
	doctors := fakes.NewDoctorRepository()
	storage := fakes.NewStorage()
	uc := newApprovalUsecase(doctors, storage, fakes.NewEventPublisher())

	request := registration("emily@example.com")
	request.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	doctorID, err := uc.RegisterDoctor(ctx, request)
	require.NoError(t, err)

	doctor, err := doctors.FindByID(ctx, doctorID)
	require.NoError(t, err)
	assert.False(t, doctor.IsApproved)
	assert.True(t, doctor.Available)
	assert.NotEqual(t, "s3cret-pass", doctor.Password)
	assert.True(t, utils.CheckPasswordHash("s3cret-pass", doctor.Password))
	assert.True(t, strings.HasPrefix(doctor.Image, "http://storage.local/doctors/doctor_"))
	assert.True(t, strings.HasSuffix(doctor.Image, ".png"))
	assert.Len(t, storage.Objects, 1)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := uc.RegisterDoctor(ctx, registration("emily@example.com"))
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
	})

	t.Run("broken image", func(t *testing.T) {
		request := registration("broken@example.com")
		request.Image = "not-a-data-url"
		_, err := uc.RegisterDoctor(ctx, request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("oversized image", func(t *testing.T) {
		request := registration("huge@example.com")
		request.Image = "data:image/png;base64," + base64.StdEncoding.EncodeToString(make([]byte, 2*1024*1024))
		_, err := uc.RegisterDoctor(ctx, request)
		assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
	})

	t.Run("image is optional", func(t *testing.T) {
		doctorID, err := uc.RegisterDoctor(ctx, registration("plain@example.com"))
		require.NoError(t, err)
		doctor, _ := doctors.FindByID(ctx, doctorID)
		assert.Empty(t, doctor.Image)
	})
}

func TestApprovalUsecase_AddDoctor(t *testing.T) {
	ctx := context.Background()
	doctors := fakes.NewDoctorRepository()
	uc := newApprovalUsecase(doctors, fakes.NewStorage(), fakes.NewEventPublisher())

	doctorID, err := uc.AddDoctor(ctx, registration("added@example.com"))
	require.NoError(t, err)

	doctor, _ := doctors.FindByID(ctx, doctorID)
	assert.True(t, doctor.IsApproved)

	pending, err := uc.ListPendingDoctors(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestApprovalUsecase_ApproveRejectDelete(t *testing.T) {
	ctx := context.Background()
	doctors := fakes.NewDoctorRepository()
	events := fakes.NewEventPublisher()
	uc := newApprovalUsecase(doctors, fakes.NewStorage(), events)

	firstID, err := uc.RegisterDoctor(ctx, registration("first@example.com"))
	require.NoError(t, err)
	secondID, err := uc.RegisterDoctor(ctx, registration("second@example.com"))
	require.NoError(t, err)

	pending, err := uc.ListPendingDoctors(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, uc.ApproveDoctor(ctx, firstID))
	assert.Equal(t, []string{constvars.EventDoctorApproved}, events.Types())

	t.Run("approved doctors cannot be rejected", func(t *testing.T) {
		err := uc.RejectDoctor(ctx, firstID)
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
	})

	t.Run("reject removes a pending application", func(t *testing.T) {
		require.NoError(t, uc.RejectDoctor(ctx, secondID))
		doctor, _ := doctors.FindByID(ctx, secondID)
		assert.Nil(t, doctor)
	})

	t.Run("delete removes an approved doctor", func(t *testing.T) {
		require.NoError(t, uc.DeleteDoctor(ctx, firstID))
		doctor, _ := doctors.FindByID(ctx, firstID)
		assert.Nil(t, doctor)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		assert.True(t, exceptions.IsKind(uc.ApproveDoctor(ctx, "missing"), exceptions.KindNotFound))
		assert.True(t, exceptions.IsKind(uc.RejectDoctor(ctx, "missing"), exceptions.KindNotFound))
		assert.True(t, exceptions.IsKind(uc.DeleteDoctor(ctx, "missing"), exceptions.KindNotFound))
	})
}

func TestApprovalUsecase_RejectDoctor_LosesToConcurrentApproval(t *testing.T) {
	ctx := context.Background()
	doctors := fakes.NewDoctorRepository()
	uc := newApprovalUsecase(doctors, fakes.NewStorage(), fakes.NewEventPublisher())

	doctorID, err := uc.RegisterDoctor(ctx, registration("racing@example.com"))
	require.NoError(t, err)

	doctors.BeforeDeletePending = func() {
		_, err := doctors.SetApproved(ctx, doctorID)
		require.NoError(t, err)
	}

	err = uc.RejectDoctor(ctx, doctorID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))

	doctor, err := doctors.FindByID(ctx, doctorID)
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.True(t, doctor.IsApproved)
}
