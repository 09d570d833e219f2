package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core"
)

var (
	// errors
	ErrNotFound             = core.NewNotFoundError("user")
	ErrEmailExists          = errors.New("a user with this email already exists")
	ErrAuthenticationFailed = errors.New("invalid credentials")
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		mailSvc  core.EmailService
		validate *core.Validator
		conf     *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, validate *core.Validator, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		mailSvc:  mailSvc,
		validate: validate,
		conf:     conf,
	}
}

// Validator exposes the validator used by the service, so that callers may validate their own inputs alike.
func (svc *Service) Validator() *core.Validator { return svc.validate }

func (svc *Service) checkUniqueness(ctx context.Context, email string) error {
	_, err := svc.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	case errors.Cause(err) == ErrNotFound:
		return nil
	default:
		return errors.Wrap(err, "checking email uniqueness")
	}
}

// Create validates and registers a new User, then sends them a welcome email.
func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if err := svc.checkUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		ID:        uuid.New().String(),
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "creating user")
	}

	if svc.mailSvc != nil {
		svc.mailSvc.SendMessages(svc.welcomeMessage(usr))
	}
	return usr, nil
}

func (svc *Service) welcomeMessage(usr User) *core.EmailMessage {
	var appName, frontend string
	if svc.conf != nil {
		appName = svc.conf.AppName
		frontend = svc.conf.FrontendBaseURL
	}
	return &core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Welcome to " + appName,
		TextContent: fmt.Sprintf(
			"Hi %s,\n\nYour %s account is ready. Start logging your monthly usage at %s.\n",
			usr.Name, usr.Role, frontend,
		),
	}
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// Authenticate checks the credentials and records the login time.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrAuthenticationFailed
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrAuthenticationFailed
	}
	return svc.SetLastLogin(ctx, usr)
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	now := time.Now().UTC()
	usr.LastLogin = &now
	return svc.repo.UpdateUser(ctx, usr)
}

// SetPassword replaces the password of the user after checking it against the password policy.
func (svc *Service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := CheckPassword(svc.validate, pwd, usr); err != nil {
		return User{}, err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// SetRole changes the role of an existing user.
func (svc *Service) SetRole(ctx context.Context, usr User, role string) (User, error) {
	if !IsValidRole(role) {
		return User{}, core.NewValidationError(nil, core.FieldError{Field: "role", Error: "invalid role"})
	}
	usr.Role = role
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) Count(ctx context.Context) (int, error) {
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying users")
	}
	return len(users), nil
}

// CountByRole groups users by role, in AllRoles order. Roles nobody holds are left out.
func (svc *Service) CountByRole(ctx context.Context) ([]RoleCount, error) {
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	counts := make(map[string]int, len(AllRoles))
	for _, usr := range users {
		counts[usr.Role]++
	}
	res := make([]RoleCount, 0, len(counts))
	for _, role := range AllRoles {
		if n, ok := counts[role]; ok {
			res = append(res, RoleCount{Role: role, Count: n})
		}
	}
	return res, nil
}

// Delete removes a user account. Their records are kept.
func (svc *Service) Delete(ctx context.Context, actor User, id string) error {
	if _, err := svc.repo.GetUserByID(ctx, id); err != nil {
		return err
	}
	// Say No to Suicide! actor cannot delete themselves
	if actor.ID == id {
		return core.ErrSelfDeletion
	}
	if err := svc.repo.DeleteUser(ctx, id); err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return nil
}
