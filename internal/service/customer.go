package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/deppfellow/petcare-api/internal/errs"
	"github.com/deppfellow/petcare-api/internal/lib/hash"
	"github.com/deppfellow/petcare-api/internal/model"
	"github.com/deppfellow/petcare-api/internal/repository"
	"github.com/deppfellow/petcare-api/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StepKind classifies why a registration step failed.
type StepKind string

const (
	StepKindConflict StepKind = "conflict"
	StepKindStore    StepKind = "store"
	StepKindDispatch StepKind = "dispatch"
)

// StepError is a failed customer registration step. Message is what the
// client sees; Err is the underlying cause.
type StepError struct {
	Step    string
	Kind    StepKind
	Message string
	Err     error
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Step, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Step, e.Message, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// HTTPError maps the failure onto the API error taxonomy.
func (e *StepError) HTTPError() *errs.HTTPError {
	switch e.Kind {
	case StepKindConflict:
		return errs.NewConflictError(e.Message)
	case StepKindDispatch:
		return errs.NewDispatchError(e.Message, e)
	default:
		return errs.NewStoreError(e.Message, e)
	}
}

// registration is the state carried from one step to the next.
type registration struct {
	customer model.Customer
	answers  model.SecurityAnswers
	token    model.VerificationToken
	link     string
}

type step struct {
	name    string
	kind    StepKind
	message string
	run     func(ctx context.Context, tx repository.CustomerTx, r *registration) error
}

func (st step) fail(err error) *StepError {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr
	}
	return &StepError{Step: st.name, Kind: st.kind, Message: st.message, Err: err}
}

type CustomerService struct {
	store         CustomerStore
	mailer        Mailer
	verifyBaseURL string
	newToken      func() string
	steps         []step
}

func NewCustomerService(store CustomerStore, mailer Mailer, verifyBaseURL string) *CustomerService {
	s := &CustomerService{
		store:         store,
		mailer:        mailer,
		verifyBaseURL: strings.TrimRight(verifyBaseURL, "/"),
		newToken:      uuid.NewString,
	}
	s.steps = []step{
		{name: "lookup", kind: StepKindStore, message: model.MsgCustomerLookupFailed, run: s.lookup},
		{name: "customer", kind: StepKindStore, message: model.MsgCustomerFailed, run: s.createCustomer},
		{name: "security", kind: StepKindStore, message: model.MsgSecurityAnswersFailed, run: s.saveAnswers},
		{name: "token", kind: StepKindStore, message: model.MsgTokenFailed, run: s.saveToken},
		// Dispatch runs last inside the transaction so a failed send rolls
		// back everything written above.
		{name: "dispatch", kind: StepKindDispatch, message: model.MsgVerificationMailFailed, run: s.dispatch},
	}
	return s
}

// Register creates the customer, its security answers and a verification
// token, then emails the verification link. Either every step succeeds and
// the transaction commits, or nothing is stored.
func (s *CustomerService) Register(ctx context.Context, req *model.RegisterCustomerRequest) (model.Response, error) {
	reg := s.prepare(req)
	logger := zerolog.Ctx(ctx).With().
		Str("identification", reg.customer.Identification).
		Logger()

	var started bool
	err := s.store.WithinTx(ctx, func(tx repository.CustomerTx) error {
		started = true
		for _, st := range s.steps {
			if err := st.run(ctx, tx, reg); err != nil {
				return st.fail(err)
			}
			logger.Debug().Str("step", st.name).Msg("registration step completed")
		}
		return nil
	})
	if err != nil {
		var stepErr *StepError
		if !errors.As(err, &stepErr) {
			if started {
				stepErr = &StepError{Step: "commit", Kind: StepKindStore, Message: model.MsgCustomerFailed, Err: err}
			} else {
				stepErr = s.steps[0].fail(err)
			}
		}

		event := logger.Error()
		if stepErr.Kind == StepKindConflict {
			event = logger.Info()
		}
		event.
			Err(stepErr.Err).
			Str("step", stepErr.Step).
			Str("kind", string(stepErr.Kind)).
			Str("sql_code", string(sqlerr.ErrCode(stepErr.Err))).
			Msg("customer registration aborted")

		return model.Response{}, stepErr.HTTPError()
	}

	logger.Info().Msg("customer registered")
	return model.OK(model.MsgCustomerRegistered), nil
}

func (s *CustomerService) prepare(req *model.RegisterCustomerRequest) *registration {
	identification := req.Identification.String()
	email := req.Email.String()
	token := s.newToken()

	return &registration{
		customer: model.Customer{
			Name:           req.Name.String(),
			Identification: identification,
			Phone:          req.Phone.String(),
			Email:          email,
			Username:       req.Username.String(),
			PasswordDigest: hash.Digest(req.Password.String()),
		},
		answers: model.SecurityAnswers{
			Identification: identification,
			PetDigest:      hash.Digest(req.Pet.String()),
			SingerDigest:   hash.Digest(req.Singer.String()),
			SubjectDigest:  hash.Digest(req.Subject.String()),
		},
		token: model.VerificationToken{Email: email, Token: token},
		link:  VerificationLink(s.verifyBaseURL, token, email),
	}
}

func (s *CustomerService) lookup(ctx context.Context, tx repository.CustomerTx, r *registration) error {
	exists, err := tx.ExistsByIdentification(ctx, r.customer.Identification)
	if err != nil {
		return err
	}
	if exists {
		return &StepError{Step: "lookup", Kind: StepKindConflict, Message: model.MsgCustomerExists}
	}
	return nil
}

func (s *CustomerService) createCustomer(ctx context.Context, tx repository.CustomerTx, r *registration) error {
	id, err := tx.Create(ctx, r.customer)
	if err != nil {
		return err
	}
	r.customer.ID = id
	return nil
}

func (s *CustomerService) saveAnswers(ctx context.Context, tx repository.CustomerTx, r *registration) error {
	return tx.SaveSecurityAnswers(ctx, r.answers)
}

func (s *CustomerService) saveToken(ctx context.Context, tx repository.CustomerTx, r *registration) error {
	return tx.UpsertVerificationToken(ctx, r.token)
}

func (s *CustomerService) dispatch(ctx context.Context, _ repository.CustomerTx, r *registration) error {
	return s.mailer.SendVerificationEmail(ctx, r.customer.Email, r.link)
}

// VerificationLink builds the link mailed to a new customer.
func VerificationLink(baseURL, token, email string) string {
	return strings.TrimRight(baseURL, "/") +
		"/verify-email?token=" + url.QueryEscape(token) +
		"&correo=" + url.QueryEscape(email)
}
