package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/nft-maker-one/twitter-clone/internal/apperrors"
	"github.com/nft-maker-one/twitter-clone/internal/models"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)
	walletPattern   = regexp.MustCompile(`^0x[0-9a-f]{40}$`)
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserWithStats(ctx context.Context, id, viewerID uint) (*models.UserWithStats, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByWallet(ctx context.Context, address string) (*models.User, error)
	FindOrCreateByWallet(ctx context.Context, address string) (*models.User, bool, error)
	FindOrCreateByFirebase(ctx context.Context, firebaseUID, email, name string) (*models.User, error)
	ValidateCredential(ctx context.Context, login, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, fields map[string]any) (*models.User, error)
	SearchUsers(ctx context.Context, query string, page models.Page) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository over gorm
type PostgresUserRepository struct {
	db      *gorm.DB
	follows FollowRepository
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB, follows FollowRepository) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, follows: follows}
}

// NormalizeWallet lower-cases an address and checks its shape.
func NormalizeWallet(address string) (string, error) {
	a := strings.ToLower(strings.TrimSpace(address))
	if !walletPattern.MatchString(a) {
		return "", apperrors.Validation("wallet address must be 0x followed by 40 hex characters")
	}
	return a, nil
}

const maxPasswordBytes = 72

// CreateUser registers a local account with a bcrypt password hash.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, apperrors.Validation("username must be 3-30 letters, digits or underscores")
	}
	if len(password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}
	// bcrypt only hashes the first 72 bytes and rejects longer input.
	if len(password) > maxPasswordBytes {
		return nil, apperrors.Validation("password must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	hashStr := string(hash)

	user := &models.User{Username: username, PasswordHash: &hashStr}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		user.Email = &email
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if err = apperrors.FromStore(err); errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.Conflict("username or email already taken")
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, storeErr(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// GetUserWithStats loads a user with follower and following counts derived
// from the follow edges. viewerID 0 means anonymous.
func (r *PostgresUserRepository) GetUserWithStats(ctx context.Context, id, viewerID uint) (*models.UserWithStats, error) {
	user, err := r.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out := &models.UserWithStats{User: *user}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := r.follows.GetFollowersCount(gctx, id)
		out.FollowersCount = n
		return err
	})
	g.Go(func() error {
		n, err := r.follows.GetFollowingCount(gctx, id)
		out.FollowingCount = n
		return err
	})
	if viewerID != 0 && viewerID != id {
		g.Go(func() error {
			ok, err := r.follows.IsFollowing(gctx, viewerID, id)
			out.IsFollowing = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUserByUsername retrieves a user by exact username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, storeErr(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// GetUserByWallet retrieves a user by wallet address (case-insensitive)
func (r *PostgresUserRepository) GetUserByWallet(ctx context.Context, address string) (*models.User, error) {
	a, err := NormalizeWallet(address)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := r.db.WithContext(ctx).Where("wallet_address = ?", a).First(&user).Error; err != nil {
		return nil, storeErr(err, apperrors.ErrUserNotFound)
	}
	return &user, nil
}

// FindOrCreateByWallet returns the user owning address, creating one on the
// first wallet login. The bool reports whether a user was created.
func (r *PostgresUserRepository) FindOrCreateByWallet(ctx context.Context, address string) (*models.User, bool, error) {
	a, err := NormalizeWallet(address)
	if err != nil {
		return nil, false, err
	}
	user, err := r.GetUserByWallet(ctx, a)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	hex := a[2:]
	for _, n := range []int{8, 12, 16, 20, 24} {
		user = &models.User{Username: "user_" + hex[:n], WalletAddress: &a}
		err = r.db.WithContext(ctx).Create(user).Error
		if err == nil {
			return user, true, nil
		}
		if !errors.Is(apperrors.FromStore(err), apperrors.ErrConflict) {
			return nil, false, apperrors.FromStore(err)
		}
		// Either the generated username is taken or a concurrent login
		// created the wallet row first.
		if existing, lookupErr := r.GetUserByWallet(ctx, a); lookupErr == nil {
			return existing, false, nil
		}
	}
	return nil, false, apperrors.Conflict("could not allocate a username for wallet")
}

// FindOrCreateByFirebase resolves a verified Firebase identity: by UID, then
// by email (linking the UID), otherwise a new account is created.
func (r *PostgresUserRepository) FindOrCreateByFirebase(ctx context.Context, firebaseUID, email, name string) (*models.User, error) {
	db := r.db.WithContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := db.Where("firebase_uid = ?", firebaseUID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.FromStore(err)
	}

	if email != "" {
		err = db.Where("email = ?", email).First(&user).Error
		if err == nil {
			if err := db.Model(&user).Update("firebase_uid", firebaseUID).Error; err != nil {
				return nil, apperrors.FromStore(err)
			}
			user.FirebaseUID = &firebaseUID
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.FromStore(err)
		}
	}

	base := usernameFrom(name, email)
	newUser := &models.User{Username: base, FirebaseUID: &firebaseUID}
	if email != "" {
		newUser.Email = &email
	}
	for attempt := 0; attempt < 3; attempt++ {
		err = db.Create(newUser).Error
		if err == nil {
			return newUser, nil
		}
		if !errors.Is(apperrors.FromStore(err), apperrors.ErrConflict) {
			return nil, apperrors.FromStore(err)
		}
		newUser.ID = 0
		newUser.Username = base + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	}
	return nil, apperrors.Conflict("could not allocate a username")
}

// usernameFrom derives a valid username candidate from a display name or email.
func usernameFrom(name, email string) string {
	src := name
	if src == "" {
		src, _, _ = strings.Cut(email, "@")
	}
	var b strings.Builder
	for _, r := range strings.ToLower(src) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > 20 {
		s = s[:20]
	}
	if len(s) < 3 {
		s = "user" + s
	}
	return s
}

// ValidateCredential checks a username-or-email and password pair. Unknown
// users and wrong passwords fail the same way.
func (r *PostgresUserRepository) ValidateCredential(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, strings.ToLower(login)).
		First(&user).Error
	if err != nil {
		return nil, storeErr(err, apperrors.ErrInvalidCredentials)
	}
	if user.PasswordHash == nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// UpdateProfile applies the allow-listed profile fields from fields; every
// other key is ignored.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	updates := make(map[string]any)
	for _, key := range models.ProfileFields {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case nil:
			updates[key] = ""
		case string:
			if len([]rune(val)) > 255 {
				return nil, apperrors.Validation(key + " must be at most 255 characters")
			}
			updates[key] = strings.TrimSpace(val)
		default:
			return nil, apperrors.Validation(key + " must be a string")
		}
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, apperrors.FromStore(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apperrors.ErrUserNotFound
		}
	}
	return r.GetUserByID(ctx, id)
}

// SearchUsers matches usernames containing query, case-insensitively
func (r *PostgresUserRepository) SearchUsers(ctx context.Context, query string, page models.Page) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ?"+likeEscapeClause, containsPattern(strings.TrimSpace(query))).
		Order("username ASC").
		Limit(page.Limit).Offset(page.Offset).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.FromStore(err)
	}
	return users, nil
}
