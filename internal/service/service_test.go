package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/deppfellow/petcare-api/internal/lib/hash"
	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/repository"
	"github.com/deppfellow/petcare-api/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to   string
	link string
}

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (m *fakeMailer) SendVerificationEmail(_ context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, link: link})
	return nil
}

func newCustomerService(store *memory.Store, mailer Mailer) *CustomerService {
	s := NewCustomerService(store.Customers(), mailer, "https://verify.petcare.test/")
	n := 0
	s.newToken = func() string {
		n++
		return "tok-" + string(rune('0'+n))
	}
	return s
}

func customerRequest() *model.RegisterCustomerRequest {
	return &model.RegisterCustomerRequest{
		Name:           "Ana Pérez",
		Identification: "1002003001",
		Phone:          "3001234567",
		Email:          "ana@petcare.test",
		Username:       "ana",
		Password:       "s3creta",
		Pet:            "Toby",
		Singer:         "Shakira",
		Subject:        "Biología",
	}
}

func requireHTTPError(t *testing.T, err error, status int, message string) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	return httpErr
}

func TestCustomerService_Register(t *testing.T) {
	store := memory.NewStore()
	mailer := &fakeMailer{}
	svc := newCustomerService(store, mailer)

	res, err := svc.Register(context.Background(), customerRequest())
	require.NoError(t, err)
	assert.Equal(t, model.OK(model.MsgCustomerRegistered), res)

	customers := store.CustomerRows()
	require.Len(t, customers, 1)
	assert.Equal(t, hash.Digest("s3creta"), customers[0].PasswordDigest)
	assert.NotContains(t, customers[0].PasswordDigest, "s3creta")

	answers := store.SecurityAnswerRows()
	require.Len(t, answers, 1)
	assert.Equal(t, model.SecurityAnswers{
		Identification: "1002003001",
		PetDigest:      hash.Digest("Toby"),
		SingerDigest:   hash.Digest("Shakira"),
		SubjectDigest:  hash.Digest("Biología"),
	}, answers[0])

	tokens := store.TokenRows()
	require.Len(t, tokens, 1)
	assert.Equal(t, "tok-1", tokens[0].Token)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@petcare.test", mailer.sent[0].to)
	assert.Equal(t,
		"https://verify.petcare.test/verify-email?token=tok-1&correo=ana%40petcare.test",
		mailer.sent[0].link)
}

func TestCustomerService_RegisterDuplicate(t *testing.T) {
	store := memory.NewStore()
	mailer := &fakeMailer{}
	svc := newCustomerService(store, mailer)

	_, err := svc.Register(context.Background(), customerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), customerRequest())
	httpErr := requireHTTPError(t, err, http.StatusBadRequest, model.MsgCustomerExists)
	assert.Equal(t, "ALREADY_EXISTS", httpErr.Code)

	assert.Len(t, store.CustomerRows(), 1)
	assert.Len(t, store.SecurityAnswerRows(), 1)
	assert.Len(t, mailer.sent, 1)
}

func TestCustomerService_ReplacesTokenForSameEmail(t *testing.T) {
	store := memory.NewStore()
	svc := newCustomerService(store, &fakeMailer{})

	_, err := svc.Register(context.Background(), customerRequest())
	require.NoError(t, err)

	second := customerRequest()
	second.Identification = "1002003002"
	_, err = svc.Register(context.Background(), second)
	require.NoError(t, err)

	tokens := store.TokenRows()
	require.Len(t, tokens, 1)
	assert.Equal(t, "tok-2", tokens[0].Token)
	assert.Len(t, store.CustomerRows(), 2)
}

func TestCustomerService_StepFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		op       memory.Op
		mailErr  error
		status   int
		message  string
		wantCode string
	}{
		{"lookup", memory.OpLookupCustomer, nil, http.StatusInternalServerError, model.MsgCustomerLookupFailed, "STORE_ERROR"},
		{"customer insert", memory.OpCreateCustomer, nil, http.StatusInternalServerError, model.MsgCustomerFailed, "STORE_ERROR"},
		{"security answers", memory.OpSaveSecurityAnswers, nil, http.StatusInternalServerError, model.MsgSecurityAnswersFailed, "STORE_ERROR"},
		{"token", memory.OpUpsertToken, nil, http.StatusInternalServerError, model.MsgTokenFailed, "STORE_ERROR"},
		{"dispatch", "", boom, http.StatusInternalServerError, model.MsgVerificationMailFailed, "DISPATCH_ERROR"},
		{"commit", memory.OpCommit, nil, http.StatusInternalServerError, model.MsgCustomerFailed, "STORE_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewStore()
			if tt.op != "" {
				store.FailOn(tt.op, boom)
			}
			mailer := &fakeMailer{err: tt.mailErr}
			svc := newCustomerService(store, mailer)

			_, err := svc.Register(context.Background(), customerRequest())
			httpErr := requireHTTPError(t, err, tt.status, tt.message)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.ErrorIs(t, err, boom)

			assert.Empty(t, store.CustomerRows())
			assert.Empty(t, store.SecurityAnswerRows())
			assert.Empty(t, store.TokenRows())
		})
	}
}

func TestCustomerService_BeginFailureReportsLookup(t *testing.T) {
	svc := NewCustomerService(failingTxStore{err: errors.New("not connected")}, &fakeMailer{}, "https://x.test")

	_, err := svc.Register(context.Background(), customerRequest())
	requireHTTPError(t, err, http.StatusInternalServerError, model.MsgCustomerLookupFailed)
}

type failingTxStore struct{ err error }

func (s failingTxStore) WithinTx(context.Context, func(tx repository.CustomerTx) error) error {
	return s.err
}

func TestPetService_Register(t *testing.T) {
	store := memory.NewStore()
	svc := NewPetService(store.Pets())

	req := &model.RegisterPetRequest{
		OwnerName: "Ana",
		OwnerID:   "1002003001",
		Email:     "ana@petcare.test",
		Name:      "Toby",
		Weight:    decimal.RequireFromString("12.5"),
		Age:       4,
		Breed:     "Beagle",
	}

	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.OK(model.MsgPetRegistered), res)

	rows := store.PetRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Toby", rows[0].Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(rows[0].Weight))

	store.FailOn(memory.OpCreatePet, errors.New("db down"))
	_, err = svc.Register(context.Background(), req)
	requireHTTPError(t, err, http.StatusInternalServerError, model.MsgPetFailed)
	assert.Len(t, store.PetRows(), 1)
}

func TestReservationService_Create(t *testing.T) {
	store := memory.NewStore()
	svc := NewReservationService(store.Reservations())

	req := &model.CreateReservationRequest{
		Name:    "Ana",
		OwnerID: "1002003001",
		Phone:   "3001234567",
		Email:   "ana@petcare.test",
		Service: "Baño",
		Price:   decimal.RequireFromString("45000"),
		Date:    "2026-11-02",
	}

	res, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.OK(model.MsgReservationRegistered), res)

	rows := store.ReservationRows()
	require.Len(t, rows, 1)
	assert.True(t, decimal.RequireFromString("45000").Equal(rows[0].Price))

	store.FailOn(memory.OpCreateReservation, errors.New("db down"))
	_, err = svc.Create(context.Background(), req)
	requireHTTPError(t, err, http.StatusInternalServerError, model.MsgReservationFailed)
}

func TestCardService_Register(t *testing.T) {
	store := memory.NewStore()
	svc := NewCardService(store.Cards())

	req := &model.RegisterCardRequest{
		HolderName:     "Ana",
		Identification: "1002003001",
		Number:         "4111111111111111",
		CVV:            "123",
		Amount:         decimal.RequireFromString("150000"),
	}

	res, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.OK(model.MsgCardRegistered), res)
	assert.Len(t, store.CardRows(), 1)

	store.FailOn(memory.OpCreateCard, errors.New("db down"))
	_, err = svc.Register(context.Background(), req)
	requireHTTPError(t, err, http.StatusInternalServerError, model.MsgCardFailed)
	assert.Len(t, store.CardRows(), 1)
}

func TestVerificationLink(t *testing.T) {
	assert.Equal(t,
		"https://api.test/verify-email?token=a+b&correo=c%2Bd%40x.test",
		VerificationLink("https://api.test/", "a b", "c+d@x.test"))
}
