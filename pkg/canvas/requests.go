package canvas

import (
	"fmt"
	"time"
)

// ModuleItemTypes are the item types Canvas accepts for module items.
var ModuleItemTypes = []string{
	"File", "Page", "Discussion", "Assignment", "Quiz",
	"SubHeader", "ExternalUrl", "ExternalTool",
}

// CourseWorkflowStates are the workflow states a course update may set.
var CourseWorkflowStates = []string{"unpublished", "available", "completed", "deleted"}

// ValidateModuleItemType checks a module item type against ModuleItemTypes.
func ValidateModuleItemType(itemType string) error {
	for _, valid := range ModuleItemTypes {
		if itemType == valid {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidModuleItem, itemType)
}

// ValidateCourseWorkflowState checks a workflow state against CourseWorkflowStates.
func ValidateCourseWorkflowState(state string) error {
	for _, valid := range CourseWorkflowStates {
		if state == valid {
			return nil
		}
	}

	return fmt.Errorf("%w: %q", ErrInvalidWorkflowState, state)
}

// CourseCreateRequest shapes POST /accounts/{id}/courses.
type CourseCreateRequest struct {
	// Name is the course name shown to users.
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`
	// CourseCode is the short course identifier.
	CourseCode *string `json:"course_code,omitempty" yaml:"course_code,omitempty"`
	// StartAt and EndAt bound course participation.
	StartAt *time.Time `json:"start_at,omitempty" yaml:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"   yaml:"end_at,omitempty"`
	// License sets the content license (e.g., "private", "public_domain").
	License *string `json:"license,omitempty" yaml:"license,omitempty"`
	// IsPublic makes the course visible to unauthenticated users.
	IsPublic *bool `json:"is_public,omitempty" yaml:"is_public,omitempty"`
	// SyllabusBody is the HTML syllabus content.
	SyllabusBody *string `json:"syllabus_body,omitempty" yaml:"syllabus_body,omitempty"`
	// TimeZone overrides the account's default course time zone.
	TimeZone *string `json:"time_zone,omitempty" yaml:"time_zone,omitempty"`
	// DefaultView selects the course home page type.
	DefaultView *string `json:"default_view,omitempty" yaml:"default_view,omitempty"`
	// Offer publishes the course immediately on creation.
	Offer *bool `json:"offer,omitempty" yaml:"offer,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *CourseCreateRequest) APIProperty() string { return "course" }

// Strategy implements FormEncoder.
func (r *CourseCreateRequest) Strategy() FormStrategy { return FormNested }

// CourseUpdateRequest shapes PUT /courses/{id}.
type CourseUpdateRequest struct {
	Name         *string    `json:"name,omitempty"          yaml:"name,omitempty"`
	CourseCode   *string    `json:"course_code,omitempty"   yaml:"course_code,omitempty"`
	StartAt      *time.Time `json:"start_at,omitempty"      yaml:"start_at,omitempty"`
	EndAt        *time.Time `json:"end_at,omitempty"        yaml:"end_at,omitempty"`
	IsPublic     *bool      `json:"is_public,omitempty"     yaml:"is_public,omitempty"`
	SyllabusBody *string    `json:"syllabus_body,omitempty" yaml:"syllabus_body,omitempty"`
	// Event transitions the course workflow ("offer", "claim", "conclude",
	// "delete", "undelete").
	Event *string `json:"event,omitempty" yaml:"event,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *CourseUpdateRequest) APIProperty() string { return "course" }

// Strategy implements FormEncoder.
func (r *CourseUpdateRequest) Strategy() FormStrategy { return FormNested }

// UserCreateRequest shapes POST /accounts/{id}/users.
type UserCreateRequest struct {
	Name             *string `json:"name,omitempty"              yaml:"name,omitempty"`
	ShortName        *string `json:"short_name,omitempty"        yaml:"short_name,omitempty"`
	SortableName     *string `json:"sortable_name,omitempty"     yaml:"sortable_name,omitempty"`
	TimeZone         *string `json:"time_zone,omitempty"         yaml:"time_zone,omitempty"`
	Locale           *string `json:"locale,omitempty"            yaml:"locale,omitempty"`
	TermsOfUse       *bool   `json:"terms_of_use,omitempty"      yaml:"terms_of_use,omitempty"`
	SkipRegistration *bool   `json:"skip_registration,omitempty" yaml:"skip_registration,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *UserCreateRequest) APIProperty() string { return "user" }

// Strategy implements FormEncoder.
func (r *UserCreateRequest) Strategy() FormStrategy { return FormNested }

// EnrollmentCreateRequest shapes POST /courses/{id}/enrollments.
type EnrollmentCreateRequest struct {
	UserID          *int    `json:"user_id,omitempty"           yaml:"user_id,omitempty"`
	Type            *string `json:"type,omitempty"              yaml:"type,omitempty"`
	EnrollmentState *string `json:"enrollment_state,omitempty"  yaml:"enrollment_state,omitempty"`
	CourseSectionID *int    `json:"course_section_id,omitempty" yaml:"course_section_id,omitempty"`
	Notify          *bool   `json:"notify,omitempty"            yaml:"notify,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *EnrollmentCreateRequest) APIProperty() string { return "enrollment" }

// Strategy implements FormEncoder.
func (r *EnrollmentCreateRequest) Strategy() FormStrategy { return FormNested }

// OutcomeCreateRequest shapes POST on an outcome group.
type OutcomeCreateRequest struct {
	Title             *string  `json:"title,omitempty"              yaml:"title,omitempty"`
	DisplayName       *string  `json:"display_name,omitempty"       yaml:"display_name,omitempty"`
	Description       *string  `json:"description,omitempty"        yaml:"description,omitempty"`
	VendorGUID        *string  `json:"vendor_guid,omitempty"        yaml:"vendor_guid,omitempty"`
	MasteryPoints     *float64 `json:"mastery_points,omitempty"     yaml:"mastery_points,omitempty"`
	CalculationMethod *string  `json:"calculation_method,omitempty" yaml:"calculation_method,omitempty"`
	CalculationInt    *int     `json:"calculation_int,omitempty"    yaml:"calculation_int,omitempty"`
	// Ratings define the mastery scale; each entry serializes as a repeated
	// outcome[ratings][] element.
	Ratings []OutcomeRating `json:"ratings,omitempty" yaml:"ratings,omitempty"`
}

// OutcomeRating is one point on an outcome's mastery scale.
type OutcomeRating struct {
	Description string  `json:"description" yaml:"description"`
	Points      float64 `json:"points"      yaml:"points"`
}

// APIProperty implements FormEncoder.
func (r *OutcomeCreateRequest) APIProperty() string { return "outcome" }

// Strategy implements FormEncoder.
func (r *OutcomeCreateRequest) Strategy() FormStrategy { return FormNested }

// AnnouncementCreateRequest shapes POST /courses/{id}/discussion_topics with
// is_announcement pinned on.
type AnnouncementCreateRequest struct {
	Title          *string    `json:"title,omitempty"           yaml:"title,omitempty"`
	Message        *string    `json:"message,omitempty"         yaml:"message,omitempty"`
	IsAnnouncement bool       `json:"is_announcement"           yaml:"is_announcement"`
	Published      *bool      `json:"published,omitempty"       yaml:"published,omitempty"`
	DelayedPostAt  *time.Time `json:"delayed_post_at,omitempty" yaml:"delayed_post_at,omitempty"`
	LockAt         *time.Time `json:"lock_at,omitempty"         yaml:"lock_at,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *AnnouncementCreateRequest) APIProperty() string { return "discussion_topic" }

// Strategy implements FormEncoder.
func (r *AnnouncementCreateRequest) Strategy() FormStrategy { return FormNested }

// ModuleCreateRequest shapes POST /courses/{id}/modules.
type ModuleCreateRequest struct {
	Name                      *string    `json:"name,omitempty"                        yaml:"name,omitempty"`
	Position                  *int       `json:"position,omitempty"                    yaml:"position,omitempty"`
	UnlockAt                  *time.Time `json:"unlock_at,omitempty"                   yaml:"unlock_at,omitempty"`
	RequireSequentialProgress *bool      `json:"require_sequential_progress,omitempty" yaml:"require_sequential_progress,omitempty"`
	PrerequisiteModuleIDs     []int      `json:"prerequisite_module_ids,omitempty"     yaml:"prerequisite_module_ids,omitempty"`
	PublishFinalGrade         *bool      `json:"publish_final_grade,omitempty"         yaml:"publish_final_grade,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *ModuleCreateRequest) APIProperty() string { return "module" }

// Strategy implements FormEncoder.
func (r *ModuleCreateRequest) Strategy() FormStrategy { return FormNested }

// ModuleItemCreateRequest shapes POST /courses/{id}/modules/{id}/items.
type ModuleItemCreateRequest struct {
	Title       *string `json:"title,omitempty"        yaml:"title,omitempty"`
	Type        *string `json:"type,omitempty"         yaml:"type,omitempty"`
	ContentID   *int    `json:"content_id,omitempty"   yaml:"content_id,omitempty"`
	Position    *int    `json:"position,omitempty"     yaml:"position,omitempty"`
	Indent      *int    `json:"indent,omitempty"       yaml:"indent,omitempty"`
	PageURL     *string `json:"page_url,omitempty"     yaml:"page_url,omitempty"`
	ExternalURL *string `json:"external_url,omitempty" yaml:"external_url,omitempty"`
	NewTab      *bool   `json:"new_tab,omitempty"      yaml:"new_tab,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *ModuleItemCreateRequest) APIProperty() string { return "module_item" }

// Strategy implements FormEncoder.
func (r *ModuleItemCreateRequest) Strategy() FormStrategy { return FormNested }

// Validate rejects unknown module item types before any network call.
func (r *ModuleItemCreateRequest) Validate() error {
	if r.Type == nil {
		return nil
	}

	return ValidateModuleItemType(*r.Type)
}

// ConferenceCreateRequest shapes POST /courses/{id}/conferences.
type ConferenceCreateRequest struct {
	Title          *string  `json:"title,omitempty"           yaml:"title,omitempty"`
	ConferenceType *string  `json:"conference_type,omitempty" yaml:"conference_type,omitempty"`
	Description    *string  `json:"description,omitempty"     yaml:"description,omitempty"`
	Duration       *float64 `json:"duration,omitempty"        yaml:"duration,omitempty"`
	LongRunning    *bool    `json:"long_running,omitempty"    yaml:"long_running,omitempty"`
	Users          []int    `json:"users,omitempty"           yaml:"users,omitempty"`
	// Settings carries provider-specific options, nested one level deep on
	// the wire (web_conference[settings][key]).
	Settings map[string]interface{} `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *ConferenceCreateRequest) APIProperty() string { return "web_conference" }

// Strategy implements FormEncoder.
func (r *ConferenceCreateRequest) Strategy() FormStrategy { return FormNested }

// DeveloperKeyCreateRequest shapes POST /accounts/{id}/developer_keys.
type DeveloperKeyCreateRequest struct {
	Name         *string  `json:"name,omitempty"          yaml:"name,omitempty"`
	Email        *string  `json:"email,omitempty"         yaml:"email,omitempty"`
	RedirectURI  *string  `json:"redirect_uri,omitempty"  yaml:"redirect_uri,omitempty"`
	RedirectURIs []string `json:"redirect_uris,omitempty" yaml:"redirect_uris,omitempty"`
	IconURL      *string  `json:"icon_url,omitempty"      yaml:"icon_url,omitempty"`
	Notes        *string  `json:"notes,omitempty"         yaml:"notes,omitempty"`
	Scopes       []string `json:"scopes,omitempty"        yaml:"scopes,omitempty"`
	Visible      *bool    `json:"visible,omitempty"       yaml:"visible,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *DeveloperKeyCreateRequest) APIProperty() string { return "developer_key" }

// Strategy implements FormEncoder.
func (r *DeveloperKeyCreateRequest) Strategy() FormStrategy { return FormNested }

// BookmarkCreateRequest shapes POST /users/self/bookmarks.
type BookmarkCreateRequest struct {
	Name     *string                `json:"name,omitempty"     yaml:"name,omitempty"`
	URL      *string                `json:"url,omitempty"      yaml:"url,omitempty"`
	Position *int                   `json:"position,omitempty" yaml:"position,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"     yaml:"data,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *BookmarkCreateRequest) APIProperty() string { return "bookmark" }

// Strategy implements FormEncoder.
func (r *BookmarkCreateRequest) Strategy() FormStrategy { return FormNested }

// ConversationCreateRequest shapes POST /conversations. The conversations
// endpoints take bare flat keys (recipients[], body) instead of the nested
// property convention; this is the one documented per-DTO override.
type ConversationCreateRequest struct {
	Recipients        []string `json:"recipients,omitempty"         yaml:"recipients,omitempty"`
	Subject           *string  `json:"subject,omitempty"            yaml:"subject,omitempty"`
	Body              *string  `json:"body,omitempty"               yaml:"body,omitempty"`
	GroupConversation *bool    `json:"group_conversation,omitempty" yaml:"group_conversation,omitempty"`
	ContextCode       *string  `json:"context_code,omitempty"       yaml:"context_code,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *ConversationCreateRequest) APIProperty() string { return "conversation" }

// Strategy implements FormEncoder.
func (r *ConversationCreateRequest) Strategy() FormStrategy { return FormFlat }

// ConversationAddMessageRequest shapes POST /conversations/{id}/add_message.
// Flat-key convention, same as ConversationCreateRequest.
type ConversationAddMessageRequest struct {
	Body             *string  `json:"body,omitempty"               yaml:"body,omitempty"`
	Recipients       []string `json:"recipients,omitempty"         yaml:"recipients,omitempty"`
	IncludedMessages []int    `json:"included_messages,omitempty"  yaml:"included_messages,omitempty"`
	AttachmentIDs    []int    `json:"attachment_ids,omitempty"     yaml:"attachment_ids,omitempty"`
	MediaCommentID   *string  `json:"media_comment_id,omitempty"   yaml:"media_comment_id,omitempty"`
	MediaCommentType *string  `json:"media_comment_type,omitempty" yaml:"media_comment_type,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *ConversationAddMessageRequest) APIProperty() string { return "conversation" }

// Strategy implements FormEncoder.
func (r *ConversationAddMessageRequest) Strategy() FormStrategy { return FormFlat }

// ContentMigrationCreateRequest shapes POST /courses/{id}/content_migrations.
type ContentMigrationCreateRequest struct {
	MigrationType *string `json:"migration_type,omitempty" yaml:"migration_type,omitempty"`
	// Settings carries migration options, including source identifiers.
	Settings map[string]interface{} `json:"settings,omitempty" yaml:"settings,omitempty"`
	// DateShiftOptions remaps event dates; DaySubstitutions maps source
	// weekday ordinals to target ordinals and flattens to
	// content_migration[date_shift_options][day_substitutions][N] entries.
	DateShiftOptions *DateShiftOptions `json:"date_shift_options,omitempty" yaml:"date_shift_options,omitempty"`
}

// DateShiftOptions controls date remapping during a content migration.
type DateShiftOptions struct {
	ShiftDates       *bool          `json:"shift_dates,omitempty"       yaml:"shift_dates,omitempty"`
	OldStartDate     *string        `json:"old_start_date,omitempty"    yaml:"old_start_date,omitempty"`
	OldEndDate       *string        `json:"old_end_date,omitempty"      yaml:"old_end_date,omitempty"`
	NewStartDate     *string        `json:"new_start_date,omitempty"    yaml:"new_start_date,omitempty"`
	NewEndDate       *string        `json:"new_end_date,omitempty"      yaml:"new_end_date,omitempty"`
	DaySubstitutions map[string]int `json:"day_substitutions,omitempty" yaml:"day_substitutions,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *ContentMigrationCreateRequest) APIProperty() string { return "content_migration" }

// Strategy implements FormEncoder.
func (r *ContentMigrationCreateRequest) Strategy() FormStrategy { return FormNested }

// SubmissionCommentRequest shapes PUT .../submissions/{user_id} comment fields.
type SubmissionCommentRequest struct {
	TextComment      *string `json:"text_comment,omitempty"       yaml:"text_comment,omitempty"`
	GroupComment     *bool   `json:"group_comment,omitempty"      yaml:"group_comment,omitempty"`
	MediaCommentID   *string `json:"media_comment_id,omitempty"   yaml:"media_comment_id,omitempty"`
	MediaCommentType *string `json:"media_comment_type,omitempty" yaml:"media_comment_type,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *SubmissionCommentRequest) APIProperty() string { return "comment" }

// Strategy implements FormEncoder.
func (r *SubmissionCommentRequest) Strategy() FormStrategy { return FormNested }

// QuizSubmissionCompleteRequest shapes POST .../quiz_submissions/{id}/complete.
type QuizSubmissionCompleteRequest struct {
	Attempt         *int    `json:"attempt,omitempty"          yaml:"attempt,omitempty"`
	ValidationToken *string `json:"validation_token,omitempty" yaml:"validation_token,omitempty"`
	AccessCode      *string `json:"access_code,omitempty"      yaml:"access_code,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *QuizSubmissionCompleteRequest) APIProperty() string { return "quiz_submission" }

// Strategy implements FormEncoder.
func (r *QuizSubmissionCompleteRequest) Strategy() FormStrategy { return FormNested }

// FeatureFlagUpdateRequest shapes PUT .../features/flags/{feature}.
type FeatureFlagUpdateRequest struct {
	State *string `json:"state,omitempty" yaml:"state,omitempty"`
}

// APIProperty implements FormEncoder.
func (r *FeatureFlagUpdateRequest) APIProperty() string { return "feature_flag" }

// Strategy implements FormEncoder.
func (r *FeatureFlagUpdateRequest) Strategy() FormStrategy { return FormNested }
