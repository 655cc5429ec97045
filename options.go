package chatbridge

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config carries SDK initialization settings. Build it with NewConfig so the
// boolean toggles start from their documented defaults; every field is sent
// to the host, defaults included.
type Config struct {
	AppID  string `validate:"required"`
	AppKey string `validate:"required"`
	Domain string `validate:"required"`

	// All toggles default to enabled.
	TeamMemberInfoVisible      bool
	CameraCaptureEnabled       bool
	GallerySelectionEnabled    bool
	ResponseExpectationEnabled bool
	ShowNotificationBanner     bool
	NotificationSoundEnabled   bool
	ErrorLogsEnabled           bool
}

// NewConfig returns a Config with every optional toggle at its default.
func NewConfig(appID, appKey, domain string) Config {
	return Config{
		AppID:                      appID,
		AppKey:                     appKey,
		Domain:                     domain,
		TeamMemberInfoVisible:      true,
		CameraCaptureEnabled:       true,
		GallerySelectionEnabled:    true,
		ResponseExpectationEnabled: true,
		ShowNotificationBanner:     true,
		NotificationSoundEnabled:   true,
		ErrorLogsEnabled:           true,
	}
}

func (c Config) args() map[string]any {
	return map[string]any{
		"appId":                      c.AppID,
		"appKey":                     c.AppKey,
		"domain":                     c.Domain,
		"teamMemberInfoVisible":      c.TeamMemberInfoVisible,
		"cameraCaptureEnabled":       c.CameraCaptureEnabled,
		"gallerySelectionEnabled":    c.GallerySelectionEnabled,
		"responseExpectationEnabled": c.ResponseExpectationEnabled,
		"showNotificationBanner":     c.ShowNotificationBanner,
		"notificationSoundEnabled":   c.NotificationSoundEnabled,
		"errorLogsEnabled":           c.ErrorLogsEnabled,
	}
}

// NotificationConfig shapes how the host renders push notifications.
type NotificationConfig struct {
	Priority                        Priority
	Importance                      Importance
	NotificationSoundEnabled        bool
	NotificationInterceptionEnabled bool
	LargeIcon                       string
	SmallIcon                       string
}

// NewNotificationConfig returns a NotificationConfig with defaults applied.
func NewNotificationConfig() NotificationConfig {
	return NotificationConfig{NotificationSoundEnabled: true}
}

func (c NotificationConfig) args() map[string]any {
	return map[string]any{
		"priority":                        c.Priority.wireValue(),
		"importance":                      c.Importance.wireValue(),
		"notificationSoundEnabled":        c.NotificationSoundEnabled,
		"notificationInterceptionEnabled": c.NotificationInterceptionEnabled,
		"largeIcon":                       c.LargeIcon,
		"smallIcon":                       c.SmallIcon,
	}
}

// ConversationOptions filters the conversation list. A nil or empty options
// value shows everything via the bare request variant.
type ConversationOptions struct {
	Tags              []string
	FilteredViewTitle string
}

func (o *ConversationOptions) isEmpty() bool {
	return o == nil || (len(o.Tags) == 0 && o.FilteredViewTitle == "")
}

func (o *ConversationOptions) args() map[string]any {
	return map[string]any{
		"tags":              o.Tags,
		"filteredViewTitle": o.FilteredViewTitle,
	}
}

// FAQOptions filters the FAQ screens. FilterType is mandatory as soon as any
// of the four filter criteria is set; ShowFAQ rejects the options before
// anything is sent otherwise.
type FAQOptions struct {
	FAQTitle       string
	ContactUsTitle string
	FAQTags        []string
	ContactUsTags  []string
	FilterType     FilterType `validate:"required_with=FAQTitle ContactUsTitle FAQTags ContactUsTags"`

	ShowFAQCategoriesAsGrid   bool
	ShowContactUsOnAppBar     bool
	ShowContactUsOnFAQScreens bool
}

// NewFAQOptions returns FAQOptions with display toggles at their defaults.
func NewFAQOptions() *FAQOptions {
	return &FAQOptions{
		ShowFAQCategoriesAsGrid:   true,
		ShowContactUsOnFAQScreens: true,
	}
}

// hasFilterCriteria reports whether any field selecting the options-variant
// request is set.
func (o *FAQOptions) hasFilterCriteria() bool {
	if o == nil {
		return false
	}
	return o.FAQTitle != "" || o.ContactUsTitle != "" || len(o.FAQTags) > 0 || len(o.ContactUsTags) > 0
}

func (o *FAQOptions) validateOptions() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("faq options: filter type is required when filter criteria are set: %w", err)
	}
	return nil
}

func (o *FAQOptions) args() map[string]any {
	return map[string]any{
		"faqTitle":                  o.FAQTitle,
		"contactUsTitle":            o.ContactUsTitle,
		"faqTags":                   o.FAQTags,
		"contactUsTags":             o.ContactUsTags,
		"filterType":                string(o.FilterType),
		"showFaqCategoriesAsGrid":   o.ShowFAQCategoriesAsGrid,
		"showContactUsOnAppBar":     o.ShowContactUsOnAppBar,
		"showContactUsOnFaqScreens": o.ShowContactUsOnFAQScreens,
	}
}
