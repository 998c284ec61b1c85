package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/secondplate/restaurant-service/internal/auth"
	"github.com/secondplate/restaurant-service/internal/config"
	"github.com/secondplate/restaurant-service/internal/domain"
	"github.com/secondplate/restaurant-service/internal/events"
	"github.com/secondplate/restaurant-service/internal/repository"
	"github.com/secondplate/restaurant-service/internal/upload"
	apperrors "github.com/secondplate/restaurant-service/pkg/util"
)

const uniqueViolation = "23505"

// RestaurantSignupInput carries the multipart registration fields plus any
// staged image uploads.
type RestaurantSignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Phone    string
	Uploads  []upload.Request
}

// AuthService coordinates registration and login for both partitions.
type AuthService struct {
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	uploader    *upload.Orchestrator
	dispatcher  events.Dispatcher
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RestaurantRepo repository.RestaurantRepository
	Uploader       *upload.Orchestrator
	Dispatcher     events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		restaurants: deps.RestaurantRepo,
		uploader:    deps.Uploader,
		dispatcher:  deps.Dispatcher,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret),
		bcryptCost:  cfg.Auth.BcryptCost,
		logger:      logger,
	}
}

// SignupUser creates a new diner account.
func (s *AuthService) SignupUser(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicatePrincipal("user already exists, you can login")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapDuplicate(err, "user already exists, you can login")
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, domain.RoleUser,
		events.UserRegisteredPayload{Name: user.Name, Email: user.Email})
	return user, nil
}

// LoginUser authenticates a diner and issues a session token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(user.ID, user.Email, domain.RoleUser)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, user.ID, domain.RoleUser,
		events.LoginSucceededPayload{Email: user.Email})
	return user, token, exp, nil
}

// SignupRestaurant registers an operator account. Any staged image uploads
// run first through the orchestrator; if persisting the account then fails,
// the already-committed uploads are discarded so no unreferenced remote
// state survives.
func (s *AuthService) SignupRestaurant(ctx context.Context, input RestaurantSignupInput) (*domain.Restaurant, error) {
	if _, err := s.restaurants.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewDuplicatePrincipal("restaurant already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	assets, err := s.uploader.Run(ctx, input.Uploads)
	if err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Phone:        input.Phone,
		OpenTime:     "09:00",
		CloseTime:    "22:00",
		IsOpen:       true,
		MenuType:     domain.MenuTypeStandard,
	}
	if ref, ok := assets[domain.AssetKindLogo]; ok {
		restaurant.LogoImage = &ref
	}
	if ref, ok := assets[domain.AssetKindMap]; ok {
		restaurant.MapImage = &ref
	}

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		s.uploader.Discard(ctx, assets)
		return nil, mapDuplicate(err, "restaurant already exists")
	}

	s.publish(ctx, events.EventRestaurantRegistered, restaurant.ID, domain.RoleRestaurant,
		events.RestaurantRegisteredPayload{
			Name:     restaurant.Name,
			Email:    restaurant.Email,
			HasLogo:  restaurant.LogoImage != nil,
			HasMap:   restaurant.MapImage != nil,
			MenuType: string(restaurant.MenuType),
		})
	return restaurant, nil
}

// LoginRestaurant authenticates an operator and issues a restaurant token.
func (s *AuthService) LoginRestaurant(ctx context.Context, email, password string) (*domain.Restaurant, string, time.Time, error) {
	restaurant, err := s.restaurants.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !auth.VerifyPassword(restaurant.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(restaurant.ID, restaurant.Email, domain.RoleRestaurant)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, restaurant.ID, domain.RoleRestaurant,
		events.LoginSucceededPayload{Email: restaurant.Email})
	return restaurant, token, exp, nil
}

// FederatedLogin resolves a provider-asserted identity against the partition
// named by role, creating the account on first login. The created record
// gets an unguessable password hash so password login stays closed until the
// owner sets one.
func (s *AuthService) FederatedLogin(ctx context.Context, role domain.RoleTag, profile *auth.FederatedProfile) (string, string, time.Time, error) {
	var subjectID, name string

	switch role {
	case domain.RoleUser:
		user, err := s.users.GetByEmail(ctx, profile.Email)
		if errors.Is(err, pgx.ErrNoRows) {
			user, err = s.createFederatedUser(ctx, profile)
		}
		if err != nil {
			return "", "", time.Time{}, err
		}
		subjectID, name = user.ID, user.Name
	case domain.RoleRestaurant:
		restaurant, err := s.restaurants.GetByEmail(ctx, profile.Email)
		if errors.Is(err, pgx.ErrNoRows) {
			restaurant, err = s.createFederatedRestaurant(ctx, profile)
		}
		if err != nil {
			return "", "", time.Time{}, err
		}
		subjectID, name = restaurant.ID, restaurant.Name
	default:
		return "", "", time.Time{}, apperrors.NewValidationError("unknown role", nil)
	}

	token, exp, err := s.tokenMgr.Issue(subjectID, profile.Email, role)
	if err != nil {
		return "", "", time.Time{}, err
	}

	s.publish(ctx, events.EventLoginSucceeded, subjectID, role,
		events.LoginSucceededPayload{Email: profile.Email, Federated: true})
	return name, token, exp, nil
}

func (s *AuthService) createFederatedUser(ctx context.Context, profile *auth.FederatedProfile) (*domain.User, error) {
	hash, err := auth.HashPassword(uuid.NewString(), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Name: profile.Name, Email: profile.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventUserRegistered, user.ID, domain.RoleUser,
		events.UserRegisteredPayload{Name: user.Name, Email: user.Email})
	return user, nil
}

func (s *AuthService) createFederatedRestaurant(ctx context.Context, profile *auth.FederatedProfile) (*domain.Restaurant, error) {
	hash, err := auth.HashPassword(uuid.NewString(), s.bcryptCost)
	if err != nil {
		return nil, err
	}
	restaurant := &domain.Restaurant{
		Name:         profile.Name,
		Email:        profile.Email,
		PasswordHash: hash,
		OpenTime:     "09:00",
		CloseTime:    "22:00",
		IsOpen:       true,
		MenuType:     domain.MenuTypeStandard,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	s.publish(ctx, events.EventRestaurantRegistered, restaurant.ID, domain.RoleRestaurant,
		events.RestaurantRegisteredPayload{Name: restaurant.Name, Email: restaurant.Email, MenuType: string(restaurant.MenuType)})
	return restaurant, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, principalID string, role domain.RoleTag, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		PrincipalID: principalID,
		Role:        role,
		Timestamp:   time.Now(),
		Payload:     payload,
	})
}

// mapDuplicate converts a unique-index violation into the duplicate error so
// a concurrent insert between the pre-check and the write still reads as 409.
func mapDuplicate(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.NewDuplicatePrincipal(message)
	}
	return err
}
