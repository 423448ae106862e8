package canvas

import "time"

// Account represents a Canvas account.
type Account struct {
	ID                  int     `json:"id"                          yaml:"id"`
	Name                string  `json:"name"                        yaml:"name"`
	UUID                string  `json:"uuid,omitempty"              yaml:"uuid,omitempty"`
	ParentAccountID     *int    `json:"parent_account_id"           yaml:"parent_account_id"`
	RootAccountID       *int    `json:"root_account_id"             yaml:"root_account_id"`
	WorkflowState       string  `json:"workflow_state,omitempty"    yaml:"workflow_state,omitempty"`
	DefaultTimeZone     string  `json:"default_time_zone,omitempty" yaml:"default_time_zone,omitempty"`
	DefaultStorageQuota *int    `json:"default_storage_quota_mb"    yaml:"default_storage_quota_mb"`
	SisAccountID        *string `json:"sis_account_id,omitempty"    yaml:"sis_account_id,omitempty"`
	IntegrationID       *string `json:"integration_id,omitempty"    yaml:"integration_id,omitempty"`
}

// Course represents a Canvas course.
type Course struct {
	ID                          int        `json:"id"                                       yaml:"id"`
	Name                        string     `json:"name"                                     yaml:"name"`
	CourseCode                  string     `json:"course_code,omitempty"                    yaml:"course_code,omitempty"`
	AccountID                   int        `json:"account_id,omitempty"                     yaml:"account_id,omitempty"`
	RootAccountID               int        `json:"root_account_id,omitempty"                yaml:"root_account_id,omitempty"`
	WorkflowState               string     `json:"workflow_state,omitempty"                 yaml:"workflow_state,omitempty"`
	UUID                        string     `json:"uuid,omitempty"                           yaml:"uuid,omitempty"`
	StartAt                     *time.Time `json:"start_at"                                 yaml:"start_at"`
	EndAt                       *time.Time `json:"end_at"                                   yaml:"end_at"`
	CreatedAt                   *time.Time `json:"created_at"                               yaml:"created_at"`
	EnrollmentTermID            int        `json:"enrollment_term_id,omitempty"             yaml:"enrollment_term_id,omitempty"`
	TotalStudents               int        `json:"total_students,omitempty"                 yaml:"total_students,omitempty"`
	SisCourseID                 *string    `json:"sis_course_id,omitempty"                  yaml:"sis_course_id,omitempty"`
	IsPublic                    *bool      `json:"is_public"                                yaml:"is_public"`
	SyllabusBody                *string    `json:"syllabus_body,omitempty"                  yaml:"syllabus_body,omitempty"`
	License                     string     `json:"license,omitempty"                        yaml:"license,omitempty"`
	TimeZone                    string     `json:"time_zone,omitempty"                      yaml:"time_zone,omitempty"`
	DefaultView                 string     `json:"default_view,omitempty"                   yaml:"default_view,omitempty"`
	ApplyAssignmentGroupWeights bool       `json:"apply_assignment_group_weights,omitempty" yaml:"apply_assignment_group_weights,omitempty"`
}

// User represents a Canvas user.
type User struct {
	ID            int        `json:"id"                       yaml:"id"`
	Name          string     `json:"name"                     yaml:"name"`
	SortableName  string     `json:"sortable_name,omitempty"  yaml:"sortable_name,omitempty"`
	ShortName     string     `json:"short_name,omitempty"     yaml:"short_name,omitempty"`
	LoginID       string     `json:"login_id,omitempty"       yaml:"login_id,omitempty"`
	SisUserID     *string    `json:"sis_user_id,omitempty"    yaml:"sis_user_id,omitempty"`
	IntegrationID *string    `json:"integration_id,omitempty" yaml:"integration_id,omitempty"`
	Email         string     `json:"email,omitempty"          yaml:"email,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"     yaml:"avatar_url,omitempty"`
	Locale        *string    `json:"locale,omitempty"         yaml:"locale,omitempty"`
	TimeZone      string     `json:"time_zone,omitempty"      yaml:"time_zone,omitempty"`
	CreatedAt     *time.Time `json:"created_at"               yaml:"created_at"`
}

// Enrollment represents a user's enrollment in a course.
type Enrollment struct {
	ID              int        `json:"id"                          yaml:"id"`
	CourseID        int        `json:"course_id"                   yaml:"course_id"`
	UserID          int        `json:"user_id"                     yaml:"user_id"`
	Type            string     `json:"type"                        yaml:"type"`
	Role            string     `json:"role,omitempty"              yaml:"role,omitempty"`
	EnrollmentState string     `json:"enrollment_state,omitempty"  yaml:"enrollment_state,omitempty"`
	CourseSectionID int        `json:"course_section_id,omitempty" yaml:"course_section_id,omitempty"`
	StartAt         *time.Time `json:"start_at"                    yaml:"start_at"`
	EndAt           *time.Time `json:"end_at"                      yaml:"end_at"`
	User            *User      `json:"user,omitempty"              yaml:"user,omitempty"`
}

// Outcome represents a learning outcome.
type Outcome struct {
	ID                int      `json:"id"                           yaml:"id"`
	Title             string   `json:"title"                        yaml:"title"`
	DisplayName       string   `json:"display_name,omitempty"       yaml:"display_name,omitempty"`
	Description       string   `json:"description,omitempty"        yaml:"description,omitempty"`
	VendorGUID        *string  `json:"vendor_guid,omitempty"        yaml:"vendor_guid,omitempty"`
	ContextType       string   `json:"context_type,omitempty"       yaml:"context_type,omitempty"`
	ContextID         int      `json:"context_id,omitempty"         yaml:"context_id,omitempty"`
	PointsPossible    *float64 `json:"points_possible,omitempty"    yaml:"points_possible,omitempty"`
	MasteryPoints     *float64 `json:"mastery_points,omitempty"     yaml:"mastery_points,omitempty"`
	CalculationMethod string   `json:"calculation_method,omitempty" yaml:"calculation_method,omitempty"`
	CalculationInt    *int     `json:"calculation_int,omitempty"    yaml:"calculation_int,omitempty"`
	Assessed          bool     `json:"assessed,omitempty"           yaml:"assessed,omitempty"`
}

// Announcement represents a course announcement (a discussion topic flagged
// as an announcement on the wire).
type Announcement struct {
	ID            int        `json:"id"                     yaml:"id"`
	Title         string     `json:"title"                  yaml:"title"`
	Message       string     `json:"message,omitempty"      yaml:"message,omitempty"`
	ContextCode   string     `json:"context_code,omitempty" yaml:"context_code,omitempty"`
	PostedAt      *time.Time `json:"posted_at"              yaml:"posted_at"`
	DelayedPostAt *time.Time `json:"delayed_post_at"        yaml:"delayed_post_at"`
	LockAt        *time.Time `json:"lock_at"                yaml:"lock_at"`
	Published     bool       `json:"published,omitempty"    yaml:"published,omitempty"`
	AuthorName    string     `json:"user_name,omitempty"    yaml:"user_name,omitempty"`
	HTMLURL       string     `json:"html_url,omitempty"     yaml:"html_url,omitempty"`
}

// FeatureFlag represents the state of one feature for one context.
type FeatureFlag struct {
	ContextType string `json:"context_type,omitempty" yaml:"context_type,omitempty"`
	ContextID   int    `json:"context_id,omitempty"   yaml:"context_id,omitempty"`
	Feature     string `json:"feature"                yaml:"feature"`
	State       string `json:"state"                  yaml:"state"`
	Locked      bool   `json:"locked,omitempty"       yaml:"locked,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"       yaml:"hidden,omitempty"`
}

// Feature describes a feature that can be flagged on or off.
type Feature struct {
	Feature     string       `json:"feature"                yaml:"feature"`
	DisplayName string       `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	AppliesTo   string       `json:"applies_to,omitempty"   yaml:"applies_to,omitempty"`
	Beta        bool         `json:"beta,omitempty"         yaml:"beta,omitempty"`
	FeatureFlag *FeatureFlag `json:"feature_flag,omitempty" yaml:"feature_flag,omitempty"`
}

// Module represents a course module.
type Module struct {
	ID                        int        `json:"id"                                    yaml:"id"`
	Name                      string     `json:"name"                                  yaml:"name"`
	Position                  int        `json:"position,omitempty"                    yaml:"position,omitempty"`
	WorkflowState             string     `json:"workflow_state,omitempty"              yaml:"workflow_state,omitempty"`
	UnlockAt                  *time.Time `json:"unlock_at"                             yaml:"unlock_at"`
	RequireSequentialProgress bool       `json:"require_sequential_progress,omitempty" yaml:"require_sequential_progress,omitempty"`
	PrerequisiteModuleIDs     []int      `json:"prerequisite_module_ids,omitempty"     yaml:"prerequisite_module_ids,omitempty"`
	ItemsCount                int        `json:"items_count,omitempty"                 yaml:"items_count,omitempty"`
	PublishFinalGrade         bool       `json:"publish_final_grade,omitempty"         yaml:"publish_final_grade,omitempty"`
	Published                 *bool      `json:"published,omitempty"                   yaml:"published,omitempty"`
}

// ModuleItem represents one item of a course module.
type ModuleItem struct {
	ID          int    `json:"id"                     yaml:"id"`
	ModuleID    int    `json:"module_id,omitempty"    yaml:"module_id,omitempty"`
	Position    int    `json:"position,omitempty"     yaml:"position,omitempty"`
	Title       string `json:"title"                  yaml:"title"`
	Indent      int    `json:"indent,omitempty"       yaml:"indent,omitempty"`
	Type        string `json:"type"                   yaml:"type"`
	ContentID   int    `json:"content_id,omitempty"   yaml:"content_id,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"     yaml:"html_url,omitempty"`
	PageURL     string `json:"page_url,omitempty"     yaml:"page_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty" yaml:"external_url,omitempty"`
	Published   *bool  `json:"published,omitempty"    yaml:"published,omitempty"`
}

// Tab represents a navigation tab on a course or account.
type Tab struct {
	ID         string `json:"id"                   yaml:"id"`
	Label      string `json:"label"                yaml:"label"`
	HTMLURL    string `json:"html_url,omitempty"   yaml:"html_url,omitempty"`
	Type       string `json:"type,omitempty"       yaml:"type,omitempty"`
	Hidden     bool   `json:"hidden,omitempty"     yaml:"hidden,omitempty"`
	Position   int    `json:"position,omitempty"   yaml:"position,omitempty"`
	Visibility string `json:"visibility,omitempty" yaml:"visibility,omitempty"`
}

// Conference represents a web conference.
type Conference struct {
	ID             int        `json:"id"                     yaml:"id"`
	Title          string     `json:"title"                  yaml:"title"`
	ConferenceType string     `json:"conference_type"        yaml:"conference_type"`
	Description    string     `json:"description,omitempty"  yaml:"description,omitempty"`
	Duration       *float64   `json:"duration,omitempty"     yaml:"duration,omitempty"`
	StartedAt      *time.Time `json:"started_at"             yaml:"started_at"`
	EndedAt        *time.Time `json:"ended_at"               yaml:"ended_at"`
	URL            string     `json:"url,omitempty"          yaml:"url,omitempty"`
	JoinURL        string     `json:"join_url,omitempty"     yaml:"join_url,omitempty"`
	ContextType    string     `json:"context_type,omitempty" yaml:"context_type,omitempty"`
	ContextID      int        `json:"context_id,omitempty"   yaml:"context_id,omitempty"`
	Users          []int      `json:"users,omitempty"        yaml:"users,omitempty"`
	LongRunning    int        `json:"long_running,omitempty" yaml:"long_running,omitempty"`
}

// DeveloperKey represents an API developer key.
type DeveloperKey struct {
	ID           int        `json:"id"                      yaml:"id"`
	Name         string     `json:"name,omitempty"          yaml:"name,omitempty"`
	Email        string     `json:"email,omitempty"         yaml:"email,omitempty"`
	APIKey       string     `json:"api_key,omitempty"       yaml:"api_key,omitempty"`
	RedirectURI  string     `json:"redirect_uri,omitempty"  yaml:"redirect_uri,omitempty"`
	RedirectURIs []string   `json:"redirect_uris,omitempty" yaml:"redirect_uris,omitempty"`
	IconURL      *string    `json:"icon_url,omitempty"      yaml:"icon_url,omitempty"`
	Notes        *string    `json:"notes,omitempty"         yaml:"notes,omitempty"`
	Scopes       []string   `json:"scopes,omitempty"        yaml:"scopes,omitempty"`
	Visible      bool       `json:"visible,omitempty"       yaml:"visible,omitempty"`
	CreatedAt    *time.Time `json:"created_at"              yaml:"created_at"`
}

// Bookmark represents a user bookmark.
type Bookmark struct {
	ID       int                    `json:"id"                 yaml:"id"`
	Name     string                 `json:"name"               yaml:"name"`
	URL      string                 `json:"url"                yaml:"url"`
	Position int                    `json:"position,omitempty" yaml:"position,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"     yaml:"data,omitempty"`
}

// Conversation represents a conversation thread.
type Conversation struct {
	ID            int                   `json:"id"                       yaml:"id"`
	Subject       string                `json:"subject,omitempty"        yaml:"subject,omitempty"`
	WorkflowState string                `json:"workflow_state,omitempty" yaml:"workflow_state,omitempty"`
	LastMessage   string                `json:"last_message,omitempty"   yaml:"last_message,omitempty"`
	LastMessageAt *time.Time            `json:"last_message_at"          yaml:"last_message_at"`
	MessageCount  int                   `json:"message_count,omitempty"  yaml:"message_count,omitempty"`
	Starred       bool                  `json:"starred,omitempty"        yaml:"starred,omitempty"`
	Private       bool                  `json:"private,omitempty"        yaml:"private,omitempty"`
	Audience      []int                 `json:"audience,omitempty"       yaml:"audience,omitempty"`
	Participants  []User                `json:"participants,omitempty"   yaml:"participants,omitempty"`
	Messages      []ConversationMessage `json:"messages,omitempty"       yaml:"messages,omitempty"`
	ContextName   string                `json:"context_name,omitempty"   yaml:"context_name,omitempty"`
}

// ConversationMessage is one message of a conversation.
type ConversationMessage struct {
	ID        int        `json:"id"                  yaml:"id"`
	AuthorID  int        `json:"author_id,omitempty" yaml:"author_id,omitempty"`
	Body      string     `json:"body"                yaml:"body"`
	CreatedAt *time.Time `json:"created_at"          yaml:"created_at"`
	Generated bool       `json:"generated,omitempty" yaml:"generated,omitempty"`
}

// ContentMigration represents a content migration job.
type ContentMigration struct {
	ID                 int        `json:"id"                             yaml:"id"`
	MigrationType      string     `json:"migration_type"                 yaml:"migration_type"`
	MigrationTypeTitle string     `json:"migration_type_title,omitempty" yaml:"migration_type_title,omitempty"`
	WorkflowState      string     `json:"workflow_state,omitempty"       yaml:"workflow_state,omitempty"`
	StartedAt          *time.Time `json:"started_at"                     yaml:"started_at"`
	FinishedAt         *time.Time `json:"finished_at"                    yaml:"finished_at"`
	ProgressURL        string     `json:"progress_url,omitempty"         yaml:"progress_url,omitempty"`
	UserID             int        `json:"user_id,omitempty"              yaml:"user_id,omitempty"`
	MigrationIssuesURL string     `json:"migration_issues_url,omitempty" yaml:"migration_issues_url,omitempty"`
}

// QuizSubmission represents one user's submission attempt on a quiz.
type QuizSubmission struct {
	ID               int        `json:"id"                          yaml:"id"`
	QuizID           int        `json:"quiz_id"                     yaml:"quiz_id"`
	UserID           int        `json:"user_id,omitempty"           yaml:"user_id,omitempty"`
	SubmissionID     int        `json:"submission_id,omitempty"     yaml:"submission_id,omitempty"`
	Attempt          int        `json:"attempt,omitempty"           yaml:"attempt,omitempty"`
	Score            *float64   `json:"score"                       yaml:"score"`
	KeptScore        *float64   `json:"kept_score"                  yaml:"kept_score"`
	StartedAt        *time.Time `json:"started_at"                  yaml:"started_at"`
	FinishedAt       *time.Time `json:"finished_at"                 yaml:"finished_at"`
	EndAt            *time.Time `json:"end_at"                      yaml:"end_at"`
	WorkflowState    string     `json:"workflow_state,omitempty"    yaml:"workflow_state,omitempty"`
	TimeSpent        int        `json:"time_spent,omitempty"        yaml:"time_spent,omitempty"`
	ExtraAttempts    int        `json:"extra_attempts,omitempty"    yaml:"extra_attempts,omitempty"`
	ExtraTime        int        `json:"extra_time,omitempty"        yaml:"extra_time,omitempty"`
	ManuallyUnlocked bool       `json:"manually_unlocked,omitempty" yaml:"manually_unlocked,omitempty"`
	ValidationToken  string     `json:"validation_token,omitempty"  yaml:"validation_token,omitempty"`
}

// Submission represents a user's submission for an assignment.
type Submission struct {
	ID                 int                 `json:"id"                            yaml:"id"`
	AssignmentID       int                 `json:"assignment_id"                 yaml:"assignment_id"`
	UserID             int                 `json:"user_id"                       yaml:"user_id"`
	Attempt            int                 `json:"attempt,omitempty"             yaml:"attempt,omitempty"`
	Body               *string             `json:"body,omitempty"                yaml:"body,omitempty"`
	Grade              *string             `json:"grade"                         yaml:"grade"`
	Score              *float64            `json:"score"                         yaml:"score"`
	SubmittedAt        *time.Time          `json:"submitted_at"                  yaml:"submitted_at"`
	GradedAt           *time.Time          `json:"graded_at"                     yaml:"graded_at"`
	WorkflowState      string              `json:"workflow_state,omitempty"      yaml:"workflow_state,omitempty"`
	Late               bool                `json:"late,omitempty"                yaml:"late,omitempty"`
	Missing            bool                `json:"missing,omitempty"             yaml:"missing,omitempty"`
	Excused            *bool               `json:"excused"                       yaml:"excused"`
	SubmissionComments []SubmissionComment `json:"submission_comments,omitempty" yaml:"submission_comments,omitempty"`
}

// SubmissionComment is one comment attached to a submission.
type SubmissionComment struct {
	ID           int                    `json:"id"                      yaml:"id"`
	AuthorID     int                    `json:"author_id,omitempty"     yaml:"author_id,omitempty"`
	AuthorName   string                 `json:"author_name,omitempty"   yaml:"author_name,omitempty"`
	Comment      string                 `json:"comment"                 yaml:"comment"`
	CreatedAt    *time.Time             `json:"created_at"              yaml:"created_at"`
	EditedAt     *time.Time             `json:"edited_at"               yaml:"edited_at"`
	MediaComment map[string]interface{} `json:"media_comment,omitempty" yaml:"media_comment,omitempty"`
}
