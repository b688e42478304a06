package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/utils"
	"github.com/nfu-im/internship-service/internal/validator"
)

// Destination is a logical landing page identifier. Values are the
// redirect paths the frontend navigates to.
type Destination string

const (
	DestLogin            Destination = "/login"
	DestLoginConfirm     Destination = "/login-confirm"
	DestStudentHome      Destination = "/student_home"
	DestTAHome           Destination = "/ta_home"
	DestTeacherHome      Destination = "/teacher_home"
	DestClassTeacherHome Destination = "/class_teacher_home"
	DestDirectorHome     Destination = "/director_home"
	DestAdminHome        Destination = "/admin_home"
)

// Route maps a role and homeroom status to a landing destination. Pure
// mapping, no I/O; unknown roles fall back to the login page rather
// than erroring.
func Route(role models.UserRole, homeroom bool) Destination {
	switch role {
	case models.RoleStudent:
		return DestStudentHome
	case models.RoleTA:
		return DestTAHome
	case models.RoleTeacher:
		if homeroom {
			return DestClassTeacherHome
		}
		return DestTeacherHome
	case models.RoleDirector:
		if homeroom {
			return DestClassTeacherHome
		}
		return DestDirectorHome
	case models.RoleAdmin:
		return DestAdminHome
	default:
		return DestLogin
	}
}

type LoginOutcome string

const (
	OutcomeSingleMatch   LoginOutcome = "single_match"
	OutcomeMultipleMatch LoginOutcome = "multiple_match"
)

// LoginResult is what a successful credential check produces. On a
// multiple match Destination points at the role-confirmation page and
// the caller must follow up with ConfirmRole.
type LoginResult struct {
	Outcome     LoginOutcome      `json:"outcome"`
	Username    string            `json:"username"`
	Roles       []models.UserRole `json:"roles"`
	Destination Destination       `json:"redirect"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterStudentRequest struct {
	Username string `json:"username" validate:"required,student_username"`
	Password string `json:"password" validate:"required,student_password"`
	Email    string `json:"email" validate:"required,school_email"`
}

// confirmableRoles is the allow-list accepted at role confirmation.
// "ta" is absent: a ta account never participates in multi-role
// ambiguity in practice, so confirmation never needs to accept it.
var confirmableRoles = map[models.UserRole]bool{
	models.RoleStudent:  true,
	models.RoleTeacher:  true,
	models.RoleDirector: true,
	models.RoleAdmin:    true,
}

type AuthService interface {
	// Login resolves credentials against every account row sharing the
	// username and advances the session state machine.
	Login(ctx context.Context, sess *models.Session, username, password string) (*LoginResult, error)

	// ConfirmRole completes an ambiguous login with an explicit choice.
	ConfirmRole(ctx context.Context, sess *models.Session, requestedRole string) (Destination, error)

	// ResolveIndex recomputes the landing destination for an active
	// session, including a fresh homeroom lookup.
	ResolveIndex(ctx context.Context, sess *models.Session) (Destination, error)

	// Logout clears every session field unconditionally.
	Logout(sess *models.Session)

	// RegisterStudent creates a new student account.
	RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.User, error)
}

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Login(ctx context.Context, sess *models.Session, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrValidationFailed
	}

	accounts, err := s.repo.User().FindAllByUsername(ctx, username)
	if err != nil {
		s.logger.Error("login: account lookup failed", "username", username, "error", err)
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	if len(accounts) == 0 {
		return nil, ErrAccountNotFound
	}

	// Verify the password against each candidate row independently.
	// Several rows can match when the same person holds multiple roles
	// with identical passwords; that is expected, not an error.
	var matched []*models.User
	for _, account := range accounts {
		if utils.CheckPassword(account.PasswordHash, password) {
			matched = append(matched, account)
		}
	}

	if len(matched) == 0 {
		return nil, ErrBadCredentials
	}

	first := matched[0]
	sess.Username = first.Username
	sess.UserID = first.ID

	roles := make([]models.UserRole, len(matched))
	for i, account := range matched {
		roles[i] = account.Role
	}

	if len(matched) > 1 {
		// Ambiguous: defer the role decision to the user.
		sess.Role = ""
		sess.OriginalRole = ""
		sess.PendingRoles = roles
		s.logger.Info("login: ambiguous role, confirmation required",
			"username", first.Username, "roles", roles)
		return &LoginResult{
			Outcome:     OutcomeMultipleMatch,
			Username:    first.Username,
			Roles:       roles,
			Destination: DestLoginConfirm,
		}, nil
	}

	dest, err := s.routeFor(ctx, first.Role, first.ID)
	if err != nil {
		return nil, err
	}

	sess.Role = first.Role
	sess.OriginalRole = first.Role
	sess.PendingRoles = nil

	s.logger.Info("login: resolved", "username", first.Username, "role", first.Role, "redirect", dest)
	return &LoginResult{
		Outcome:     OutcomeSingleMatch,
		Username:    first.Username,
		Roles:       roles,
		Destination: dest,
	}, nil
}

func (s *authService) ConfirmRole(ctx context.Context, sess *models.Session, requestedRole string) (Destination, error) {
	if !sess.Authenticated() {
		return "", ErrNotAuthenticated
	}

	role, ok := models.ParseRole(requestedRole)
	if !ok || !confirmableRoles[role] {
		return "", ErrRoleNotAllowed
	}

	dest, err := s.routeFor(ctx, role, sess.UserID)
	if err != nil {
		return "", err
	}

	sess.Role = role
	sess.OriginalRole = role
	sess.PendingRoles = nil

	s.logger.Info("role confirmed", "username", sess.Username, "role", role, "redirect", dest)
	return dest, nil
}

func (s *authService) ResolveIndex(ctx context.Context, sess *models.Session) (Destination, error) {
	if sess.Role == "" {
		return DestLogin, nil
	}
	// Recompute from current role and a fresh homeroom read so that an
	// admin reassignment takes effect on the next index visit.
	return s.routeFor(ctx, sess.Role, sess.UserID)
}

func (s *authService) Logout(sess *models.Session) {
	sess.Clear()
}

func (s *authService) RegisterStudent(ctx context.Context, req *RegisterStudentRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrorsFrom(err)
	}

	exists, err := s.repo.User().ExistsByUsernameAndRole(ctx, req.Username, models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("account existence check: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.RoleStudent,
		Email:        req.Email,
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create student account: %w", err)
	}

	s.logger.Info("student registered", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// routeFor computes the landing destination, performing the homeroom
// lookup for teacher and director roles. Other roles never touch the
// class store.
func (s *authService) routeFor(ctx context.Context, role models.UserRole, userID uint) (Destination, error) {
	homeroom := false
	if role == models.RoleTeacher || role == models.RoleDirector {
		var err error
		homeroom, err = s.repo.Class().HasHomeroom(ctx, userID)
		if err != nil {
			s.logger.Error("homeroom lookup failed", "user_id", userID, "error", err)
			return "", fmt.Errorf("homeroom lookup: %w", err)
		}
	}
	return Route(role, homeroom), nil
}
