package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"accessibleos/internal/cache"
	"accessibleos/internal/errors"
	"accessibleos/internal/mapper"
	"accessibleos/internal/model"
	"accessibleos/internal/repository"
)

// Settings are read on every page load, so reads go through the cache.
const settingsCacheTTL = 5 * time.Minute

var settingsAllowedUpdates = map[string]bool{
	"voiceOverEnabled":          true,
	"voiceOverSpeed":            true,
	"keyboardNavigationEnabled": true,
	"highContrastMode":          true,
	"fontSizeMultiplier":        true,
	"screenReaderEnabled":       true,
	"motionReduced":             true,
	"colorBlindMode":            true,
	"customCss":                 true,
}

// AccessibilityService owns the single-row-per-user accessibility settings
// with partial-update semantics.
type AccessibilityService interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*model.AccessibilitySettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, updates map[string]any) (*model.AccessibilitySettings, error)
}

type accessibilityService struct {
	repo  repository.SettingsRepository
	cache *cache.Client
}

// NewAccessibilityService builds an AccessibilityService with repository and cache.
func NewAccessibilityService(repo repository.SettingsRepository, cache *cache.Client) AccessibilityService {
	return &accessibilityService{repo: repo, cache: cache}
}

func settingsCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("settings:%s", userID)
}

// GetSettings returns the user's settings row, or nil when none exists yet.
func (s *accessibilityService) GetSettings(ctx context.Context, userID uuid.UUID) (*model.AccessibilitySettings, error) {
	if data, _ := s.cache.Get(ctx, settingsCacheKey(userID)); data != nil {
		var cached model.AccessibilitySettings
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	settings, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}
	if settings == nil {
		return nil, nil
	}

	if payload, err := json.Marshal(settings); err == nil {
		_ = s.cache.Set(ctx, settingsCacheKey(userID), payload, settingsCacheTTL)
	}
	return settings, nil
}

// UpdateSettings applies an allow-listed partial update. A missing row is
// created by merging the update over the documented defaults; an update with
// no applicable keys returns the existing row unchanged.
func (s *accessibilityService) UpdateSettings(ctx context.Context, userID uuid.UUID, updates map[string]any) (*model.AccessibilitySettings, error) {
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find settings: %w", err)
	}

	if existing == nil {
		settings, err := mergeOverDefaults(userID, updates)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, settings); err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		_ = s.cache.Delete(ctx, settingsCacheKey(userID))
		return settings, nil
	}

	columns := mapper.Columns(updates, settingsAllowedUpdates)
	if len(columns) == 0 {
		return existing, nil
	}

	rows, err := s.repo.UpdateColumns(ctx, userID, columns)
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrSettingsNotFound
	}

	_ = s.cache.Delete(ctx, settingsCacheKey(userID))
	settings, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload settings: %w", err)
	}
	return settings, nil
}

// mergeOverDefaults builds a settings row from the documented defaults plus
// the provided updates.
func mergeOverDefaults(userID uuid.UUID, updates map[string]any) (*model.AccessibilitySettings, error) {
	settings := model.DefaultAccessibilitySettings(userID)
	for key, value := range updates {
		if !settingsAllowedUpdates[key] || value == nil {
			continue
		}
		switch key {
		case "voiceOverEnabled":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.VoiceOverEnabled = b
		case "keyboardNavigationEnabled":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.KeyboardNavigationEnabled = b
		case "highContrastMode":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.HighContrastMode = b
		case "screenReaderEnabled":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.ScreenReaderEnabled = b
		case "motionReduced":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.MotionReduced = b
		case "voiceOverSpeed":
			f, ok := toFloat(value)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.VoiceOverSpeed = f
		case "fontSizeMultiplier":
			f, ok := toFloat(value)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.FontSizeMultiplier = f
		case "colorBlindMode":
			raw, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			mode := model.ColorBlindMode(raw)
			settings.ColorBlindMode = &mode
		case "customCss":
			raw, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s", errors.ErrInvalidFieldValue, key)
			}
			settings.CustomCSS = &raw
		}
	}
	return settings, nil
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
