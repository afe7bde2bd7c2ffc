// Package profile implements the profile editor: it loads the authenticated
// user's record into buffered form state and persists merged edits on save.
package profile

import (
	"context"
	"errors"

	"github.com/golden-burguer/appcore/internal/app/domain/user"
	"github.com/golden-burguer/appcore/internal/app/storage"
	"github.com/golden-burguer/appcore/pkg/logger"
)

// ErrNoUserLoaded is returned by Save when no user record was loaded first.
var ErrNoUserLoaded = errors.New("profile: no user loaded")

// Edits holds the buffered editable fields of the profile form. Identifier,
// email and password are not editable and never appear here.
type Edits struct {
	FullName        string  `json:"full_name"`
	Phone           string  `json:"phone"`
	Gender          string  `json:"gender"`
	BirthDate       string  `json:"birth_date"`
	Street          string  `json:"street"`
	Number          string  `json:"number"`
	City            string  `json:"city"`
	Region          string  `json:"region"`
	Commune         string  `json:"commune"`
	ProfileImageRef *string `json:"profile_image_ref,omitempty"`
}

// State is the editor's observable state. Loading is false once Load has run
// to completion, whether or not a user was found.
type State struct {
	Loading bool
	User    *user.User
	Edits   Edits
}

// Service loads and saves the authenticated user's profile.
type Service struct {
	users    storage.UserStore
	sessions storage.SessionStore
	log      *logger.Logger
}

// New constructs a profile service.
func New(users storage.UserStore, sessions storage.SessionStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("profile")
	}
	return &Service{users: users, sessions: sessions, log: log}
}

// Load resolves the session email to a user record and buffers its editable
// fields. Every path ends with Loading=false: no session, no matching user
// and store failures all produce a completed state with default edits.
func (s *Service) Load(ctx context.Context) State {
	done := State{Loading: false}

	email, ok, err := s.sessions.AuthenticatedEmail(ctx)
	if err != nil {
		s.log.Warnf("read session: %v", err)
		return done
	}
	if !ok || email == "" {
		return done
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warnf("load user %q: %v", email, err)
		}
		return done
	}

	done.User = &u
	done.Edits = Edits{
		FullName:        u.FullName,
		Phone:           u.Phone,
		Gender:          u.Gender,
		BirthDate:       u.BirthDate,
		Street:          u.Street,
		Number:          u.Number,
		City:            u.City,
		Region:          u.Region,
		Commune:         u.Commune,
		ProfileImageRef: u.ProfileImageRef,
	}
	return done
}

// Save merges the edits into the loaded record, preserving identifier, email
// and password, and updates the store keyed by identifier.
func (s *Service) Save(ctx context.Context, loaded *user.User, edits Edits) (user.User, error) {
	if loaded == nil {
		return user.User{}, ErrNoUserLoaded
	}

	merged := *loaded
	merged.FullName = edits.FullName
	merged.Phone = edits.Phone
	merged.Gender = edits.Gender
	merged.BirthDate = edits.BirthDate
	merged.Street = edits.Street
	merged.Number = edits.Number
	merged.City = edits.City
	merged.Region = edits.Region
	merged.Commune = edits.Commune
	merged.ProfileImageRef = edits.ProfileImageRef

	if err := s.users.UpdateUser(ctx, merged); err != nil {
		return user.User{}, err
	}
	s.log.Infof("user %d profile updated", merged.ID)
	return merged, nil
}
