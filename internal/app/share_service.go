package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yourusername/shareconnect-go/internal/domain"
	"github.com/yourusername/shareconnect-go/pkg/logger"
	"go.uber.org/zap"
)

// Notifier reports dispatch outcomes to the user
type Notifier interface {
	NotifySent(link, profileName string)
	NotifyFailed(link, profileName, reason string)
}

// ShareOutcome is the result of one share
type ShareOutcome struct {
	Profile domain.ServerProfile
	Result  domain.DispatchResult
	History *domain.HistoryItem
}

// ShareService resolves the target profile, dispatches a link and records
// the outcome in the history
type ShareService struct {
	profiles *ProfileManager
	router   *DispatchRouter
	history  domain.HistoryRepository
	notifier Notifier
	logs     *logger.LoggerAdapter

	notifications sync.WaitGroup
}

// NewShareService creates a new share service. notifier may be nil.
func NewShareService(
	profiles *ProfileManager,
	router *DispatchRouter,
	history domain.HistoryRepository,
	notifier Notifier,
	logs *logger.LoggerAdapter,
) *ShareService {
	if logs == nil {
		logs = logger.NewLoggerAdapter(nil, nil)
	}
	return &ShareService{
		profiles: profiles,
		router:   router,
		history:  history,
		notifier: notifier,
		logs:     logs,
	}
}

// Share sends link to the profile with profileID, or to the default profile
// when profileID is empty. A failed dispatch is not an error: it is reported
// in the outcome and recorded in the history like a successful one.
func (s *ShareService) Share(ctx context.Context, link, profileID string) (*ShareOutcome, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return nil, domain.ErrEmptyURL
	}

	profile, err := s.resolveProfile(profileID)
	if err != nil {
		return nil, err
	}

	s.logs.LogDispatchEvent("dispatch_started",
		zap.String("profile_id", profile.ID),
		zap.String("profile_name", profile.Name),
		zap.String("service_type", string(profile.ServiceType)),
		zap.String("url", link))

	result := <-s.router.Go(ctx, *profile, link)

	if result.OK {
		s.logs.LogDispatchEvent("dispatch_succeeded",
			zap.String("profile_id", profile.ID),
			zap.String("url", link),
			zap.Int("status_code", result.StatusCode))
	} else {
		s.logs.LogDispatchEvent("dispatch_failed",
			zap.String("profile_id", profile.ID),
			zap.String("url", link),
			zap.String("error", result.Message))
	}

	item := domain.NewHistoryItem(link, *profile, result)
	if err := s.history.Insert(item); err != nil {
		s.logs.LogError("Failed to record history",
			zap.String("url", link),
			zap.Error(err))
		return nil, fmt.Errorf("failed to record history: %w", err)
	}
	s.logs.LogDispatchEvent("history_recorded",
		zap.Uint("history_id", item.ID),
		zap.String("service_provider", item.ServiceProvider),
		zap.String("media_type", string(item.MediaType)))

	if s.notifier != nil {
		s.notify(link, profile.Name, result)
	}

	return &ShareOutcome{Profile: *profile, Result: result, History: item}, nil
}

// notify reports the outcome in the background so a slow notifier never
// holds up the caller
func (s *ShareService) notify(link, profileName string, result domain.DispatchResult) {
	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logs.LogError("Notifier panicked",
					zap.String("url", link),
					zap.Any("panic", r))
			}
		}()

		if result.OK {
			s.notifier.NotifySent(link, profileName)
		} else {
			s.notifier.NotifyFailed(link, profileName, result.Message)
		}
	}()
}

// Wait blocks until every pending notification has been delivered
func (s *ShareService) Wait() {
	s.notifications.Wait()
}

func (s *ShareService) resolveProfile(profileID string) (*domain.ServerProfile, error) {
	if profileID != "" {
		return s.profiles.Get(profileID)
	}

	profile, err := s.profiles.GetDefault()
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNoProfile
	}
	return profile, nil
}

// CompatibleProfiles returns the profiles whose back-end accepts link
func (s *ShareService) CompatibleProfiles(link string) ([]domain.ServerProfile, error) {
	profiles, err := s.profiles.List()
	if err != nil {
		return nil, err
	}
	return domain.FilterCompatibleProfiles(profiles, link), nil
}
