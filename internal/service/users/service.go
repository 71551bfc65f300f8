package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/agroboost/AgroBoost-RentalService/internal/domain"
	"github.com/agroboost/AgroBoost-RentalService/internal/infra/session"
	userRepo "github.com/agroboost/AgroBoost-RentalService/internal/infra/storage/user"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users/models"
)

// Options tune authentication
type Options struct {
	OTPTTL         time.Duration
	OTPMaxAttempts int
	OTPResend      time.Duration
	// LogOTP writes issued codes to the log (development only)
	LogOTP     bool
	BcryptCost int
}

// Service handles accounts, authentication and sessions
type Service struct {
	userRepo   UserRepository
	sessions   SessionStore
	tokens     *TokenIssuer
	codeSender CodeSender
	opts       Options
	now        func() time.Time
	logger     Logger
}

func NewService(
	userRepo UserRepository,
	sessions SessionStore,
	tokens *TokenIssuer,
	codeSender CodeSender,
	opts Options,
	logger Logger,
) *Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:   userRepo,
		sessions:   sessions,
		tokens:     tokens,
		codeSender: codeSender,
		opts:       opts,
		now:        time.Now,
		logger:     logger,
	}
}

// Register creates an unverified producteur or prestataire account and sends a verification code
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	s.logger.Info("Register: new %s account %s", req.Role, req.Email)

	role := domain.Role(req.Role)
	if role != domain.RoleProducteur && role != domain.RoleProvider {
		s.logger.Warn("Register: role %q not allowed for self registration", req.Role)
		return nil, fmt.Errorf("%w: role", ErrInvalidInput)
	}

	u, err := s.newUser(req, false)
	if err != nil {
		return nil, err
	}

	created, err := s.create(ctx, "Register", u)
	if err != nil {
		return nil, err
	}

	if err := s.issueOTP(ctx, session.OTPVerifyAccount, created); err != nil && !errors.Is(err, ErrOTPCooldown) {
		// the account exists, the user can ask for a new code
		s.logger.Error("Register: failed to issue code for user=%d: %v", created.ID, err)
	}

	s.logger.Info("Register: created user=%d", created.ID)
	resp := models.FromDomainUser(created)
	return &resp, nil
}

// Login checks credentials and opens a session
func (s *Service) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	s.logger.Info("Login: attempt for %s", email)

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email %s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !checkPassword(u.PasswordHash, password) {
		s.logger.Warn("Login: wrong password for user=%d", u.ID)
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		s.logger.Warn("Login: user=%d is disabled", u.ID)
		return nil, ErrInactive
	}
	if !u.IsVerified {
		s.logger.Warn("Login: user=%d is not verified", u.ID)
		return nil, ErrNotVerified
	}

	return s.openSession(ctx, u)
}

// VerifyOTP confirms an account with the emailed or pushed code and opens a session
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (*models.AuthResponse, error) {
	u, err := s.userByEmail(ctx, "VerifyOTP", email)
	if err != nil {
		return nil, err
	}

	if err := s.verifyOTP(ctx, session.OTPVerifyAccount, u.Email, code); err != nil {
		return nil, err
	}

	if !u.IsVerified {
		if err := s.userRepo.SetVerified(ctx, u.ID); err != nil {
			s.logger.Error("VerifyOTP: failed to mark user=%d verified: %v", u.ID, err)
			return nil, fmt.Errorf("%w: VerifyOTP - repository error: %v", ErrInternal, err)
		}
		u.IsVerified = true
	}

	s.logger.Info("VerifyOTP: user=%d verified", u.ID)
	return s.openSession(ctx, u)
}

// ResendOTP issues a new verification code, subject to the resend cooldown
func (s *Service) ResendOTP(ctx context.Context, email string) error {
	u, err := s.userByEmail(ctx, "ResendOTP", email)
	if err != nil {
		return err
	}
	if u.IsVerified {
		s.logger.Info("ResendOTP: user=%d already verified", u.ID)
		return nil
	}
	return s.issueOTP(ctx, session.OTPVerifyAccount, u)
}

// ForgotPassword sends a reset code. Unknown emails succeed silently.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.userByEmail(ctx, "ForgotPassword", email)
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidInput) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.issueOTP(ctx, session.OTPResetPassword, u)
}

// ResetPassword sets a new password with a reset code and revokes every session
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	u, err := s.userByEmail(ctx, "ResetPassword", email)
	if errors.Is(err, ErrUserNotFound) {
		return ErrInvalidOTP
	}
	if err != nil {
		return err
	}

	if err := s.verifyOTP(ctx, session.OTPResetPassword, u.Email, code); err != nil {
		return err
	}

	if err := s.setPassword(ctx, "ResetPassword", u.ID, newPassword); err != nil {
		return err
	}

	s.logger.Info("ResetPassword: password reset for user=%d", u.ID)
	return nil
}

// Logout revokes the session of the current token
func (s *Service) Logout(ctx context.Context, tokenID string) error {
	if err := s.sessions.ClearSession(ctx, tokenID); err != nil {
		s.logger.Error("Logout: failed to clear session: %v", err)
		return fmt.Errorf("%w: Logout - session store: %v", ErrInternal, err)
	}
	return nil
}

// Authenticate resolves a bearer token into the caller.
// The token must be validly signed, unexpired and still registered in the session store.
func (s *Service) Authenticate(ctx context.Context, token string) (domain.Actor, string, error) {
	actor, tokenID, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Actor{}, "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	sess, err := s.sessions.GetSession(ctx, tokenID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return domain.Actor{}, "", fmt.Errorf("%w: session revoked", ErrUnauthorized)
		}
		return domain.Actor{}, "", fmt.Errorf("%w: Authenticate - session store: %v", ErrInternal, err)
	}
	if sess.UserID != actor.UserID {
		return domain.Actor{}, "", fmt.Errorf("%w: session mismatch", ErrUnauthorized)
	}

	// role changes apply immediately through the session
	actor.Role = domain.Role(sess.Role)
	return actor, tokenID, nil
}

func (s *Service) openSession(ctx context.Context, u *domain.User) (*models.AuthResponse, error) {
	token, tokenID, expiresAt, err := s.tokens.Issue(u, s.now())
	if err != nil {
		s.logger.Error("openSession: user=%d: %v", u.ID, err)
		return nil, fmt.Errorf("%w: openSession - %v", ErrInternal, err)
	}

	err = s.sessions.SetSession(ctx, session.Session{
		TokenID:   tokenID,
		UserID:    u.ID,
		Role:      string(u.Role),
		ExpiresAt: expiresAt,
	})
	if err != nil {
		s.logger.Error("openSession: failed to store session for user=%d: %v", u.ID, err)
		return nil, fmt.Errorf("%w: openSession - session store: %v", ErrInternal, err)
	}

	s.logger.Info("openSession: user=%d logged in", u.ID)
	return &models.AuthResponse{Token: token, ExpiresAt: expiresAt, User: models.FromDomainUser(u)}, nil
}

func (s *Service) issueOTP(ctx context.Context, purpose session.OTPPurpose, u *domain.User) error {
	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("%w: issueOTP - generate: %v", ErrInternal, err)
	}

	if err := s.sessions.SaveOTP(ctx, purpose, u.Email, code, s.opts.OTPTTL, s.opts.OTPResend); err != nil {
		if errors.Is(err, session.ErrOTPCooldown) {
			s.logger.Warn("issueOTP: cooldown active for user=%d", u.ID)
			return ErrOTPCooldown
		}
		return fmt.Errorf("%w: issueOTP - session store: %v", ErrInternal, err)
	}

	if s.opts.LogOTP {
		s.logger.Info("issueOTP: %s code for %s is %s", purpose, u.Email, code)
	}

	if s.codeSender != nil && u.TelegramChatID != nil {
		message := fmt.Sprintf("Votre code AgroBoost est %s. Il expire dans %d minutes.", code, int(s.opts.OTPTTL.Minutes()))
		if err := s.codeSender.Notify(ctx, *u.TelegramChatID, "Code de vérification", message); err != nil {
			s.logger.Warn("issueOTP: telegram delivery failed for user=%d: %v", u.ID, err)
		}
	}
	return nil
}

func (s *Service) verifyOTP(ctx context.Context, purpose session.OTPPurpose, email, code string) error {
	err := s.sessions.VerifyOTP(ctx, purpose, email, code, s.opts.OTPMaxAttempts)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrOTPTooManyAttempts):
		s.logger.Warn("verifyOTP: too many attempts for %s", email)
		return ErrTooManyAttempts
	case errors.Is(err, session.ErrOTPInvalid), errors.Is(err, session.ErrOTPNotFound):
		s.logger.Warn("verifyOTP: rejected code for %s", email)
		return ErrInvalidOTP
	default:
		s.logger.Error("verifyOTP: session store error: %v", err)
		return fmt.Errorf("%w: verifyOTP - session store: %v", ErrInternal, err)
	}
}

func (s *Service) setPassword(ctx context.Context, method string, userID int64, password string) error {
	hash, err := hashPassword(password, s.opts.BcryptCost)
	if err != nil {
		return fmt.Errorf("%w: %s - hash: %v", ErrInternal, method, err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("%s: failed to update password for user=%d: %v", method, userID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	if err := s.sessions.ClearUserSessions(ctx, userID); err != nil {
		s.logger.Error("%s: failed to revoke sessions for user=%d: %v", method, userID, err)
		return fmt.Errorf("%w: %s - session store: %v", ErrInternal, method, err)
	}
	return nil
}

func (s *Service) newUser(req *models.RegisterRequest, verified bool) (*domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(req.Password, s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	return &domain.User{
		Email:        email,
		Phone:        req.Phone,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         domain.Role(req.Role),
		PasswordHash: hash,
		IsVerified:   verified,
		IsActive:     true,
		Address:      req.Address,
	}, nil
}

func (s *Service) create(ctx context.Context, method string, u *domain.User) (*domain.User, error) {
	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailTaken) {
			s.logger.Warn("%s: email %s already registered", method, u.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return created, nil
}

func (s *Service) userByEmail(ctx context.Context, method, email string) (*domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: unknown email %s", method, email)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error: %v", method, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return u, nil
}

func (s *Service) userByID(ctx context.Context, method string, id int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", method, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return u, nil
}
