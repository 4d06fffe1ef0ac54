package api

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/terraincognita07/habitboard/internal/security"
	"github.com/terraincognita07/habitboard/internal/services"
	"github.com/terraincognita07/habitboard/internal/store"
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	people        *services.PersonService
	announcements *services.AnnouncementService
	stats         *services.StatsService
	auth          *security.AdminAuth
	logger        *log.Logger
	loginLimiter  *attemptLimiter
	now           func() time.Time
}

// HandlerOptions configures optional behavior. A nil Auth leaves every
// endpoint open.
type HandlerOptions struct {
	Auth   *security.AdminAuth
	Logger *log.Logger
}

func NewHandler(backend store.Backend, options HandlerOptions) (*Handler, error) {
	if backend.People == nil {
		return nil, errors.New("person store is required")
	}
	if backend.Announcements == nil {
		return nil, errors.New("announcement store is required")
	}

	logger := options.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Handler{
		people:        services.NewPersonService(backend.People),
		announcements: services.NewAnnouncementService(backend.Announcements),
		stats:         services.NewStatsService(backend.People),
		auth:          options.Auth,
		logger:        logger,
		loginLimiter:  newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:           time.Now,
	}, nil
}
