package portal

import "github.com/jrsteele09/school-portal/sessions"

type Announcement struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	AuthorID  int    `json:"author_id,omitempty"`
	Author    string `json:"author,omitempty"`
	CreatedAt Time   `json:"created_at"`
}

// AnnouncementPage is one page of the feed, newest first.
type AnnouncementPage struct {
	Announcements []Announcement `json:"announcements"`
	Total         int            `json:"total"`
	Page          int            `json:"page"`
	PerPage       int            `json:"per_page"`
	Pages         int            `json:"pages"`
}

type AnnouncementInput struct {
	Title   string `json:"title" validate:"required,notblank"`
	Content string `json:"content" validate:"required,notblank"`
}

// AnnouncementUpdate changes only the fields that are set.
type AnnouncementUpdate struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Content *string `json:"content,omitempty" validate:"omitempty,notblank"`
}

type Homework struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Subject      string `json:"subject,omitempty"`
	DueDate      Time   `json:"due_date"`
	GroupID      int    `json:"group_id"`
	GroupName    string `json:"group_name,omitempty"`
	AuthorID     int    `json:"author_id"`
	Author       string `json:"author,omitempty"`
	AttachmentID *int   `json:"attachment_id,omitempty"`
	IsCompleted  bool   `json:"is_completed"`
	CreatedAt    Time   `json:"created_at"`
}

// HomeworkStatus filters a student's or parent's homework list.
type HomeworkStatus string

const (
	HomeworkAll       HomeworkStatus = "all"
	HomeworkPending   HomeworkStatus = "pending"
	HomeworkCompleted HomeworkStatus = "completed"
	HomeworkOverdue   HomeworkStatus = "overdue"
)

// HomeworkFilter narrows List. Zero values are not sent.
type HomeworkFilter struct {
	Status  HomeworkStatus
	GroupID int
	ChildID int
}

type HomeworkInput struct {
	Title        string `json:"title" validate:"required,notblank"`
	Description  string `json:"description" validate:"required"`
	DueDate      Time   `json:"due_date"`
	GroupID      int    `json:"group_id" validate:"required,gt=0"`
	Subject      string `json:"subject,omitempty"`
	AttachmentID *int   `json:"attachment_id,omitempty"`
}

type HomeworkUpdate struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,notblank"`
	Description  *string `json:"description,omitempty"`
	DueDate      *Time   `json:"due_date,omitempty"`
	Subject      *string `json:"subject,omitempty"`
	AttachmentID *int    `json:"attachment_id,omitempty"`
}

// Completion is the answer to toggling a homework's done flag.
type Completion struct {
	Message     string   `json:"message"`
	IsCompleted bool     `json:"is_completed"`
	Homework    Homework `json:"homework"`
}

// Note is a grade.
type Note struct {
	ID        int     `json:"id"`
	Subject   string  `json:"subject"`
	Value     float64 `json:"value"`
	MaxValue  float64 `json:"max_value"`
	Comment   string  `json:"comment,omitempty"`
	StudentID int     `json:"student_id"`
	Student   string  `json:"student,omitempty"`
	TeacherID int     `json:"teacher_id,omitempty"`
	Teacher   string  `json:"teacher,omitempty"`
	CreatedAt Time    `json:"created_at"`
}

type NoteInput struct {
	StudentID int      `json:"student_id" validate:"required,gt=0"`
	Subject   string   `json:"subject" validate:"required,notblank"`
	Value     float64  `json:"value" validate:"gte=0"`
	MaxValue  *float64 `json:"max_value,omitempty" validate:"omitempty,gt=0"`
	Comment   string   `json:"comment,omitempty"`
}

type NoteUpdate struct {
	Subject  *string  `json:"subject,omitempty" validate:"omitempty,notblank"`
	Value    *float64 `json:"value,omitempty" validate:"omitempty,gte=0"`
	MaxValue *float64 `json:"max_value,omitempty" validate:"omitempty,gt=0"`
	Comment  *string  `json:"comment,omitempty"`
}

// Student is the short form the grades page lists.
type Student struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Groups   []string `json:"groups"`
}

type Message struct {
	ID           int      `json:"id"`
	Subject      string   `json:"subject"`
	Content      string   `json:"content"`
	SenderID     int      `json:"sender_id,omitempty"`
	Sender       string   `json:"sender,omitempty"`
	Recipients   []string `json:"recipients,omitempty"`
	AttachmentID *int     `json:"attachment_id,omitempty"`
	IsRead       bool     `json:"is_read"`
	CreatedAt    Time     `json:"created_at"`
}

type MessageInput struct {
	Subject      string `json:"subject" validate:"required,notblank"`
	Content      string `json:"content" validate:"required"`
	Recipients   []int  `json:"recipients" validate:"required,min=1,dive,gt=0"`
	AttachmentID *int   `json:"attachment_id,omitempty"`
}

type CalendarEvent struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartTime   Time   `json:"start_time"`
	EndTime     Time   `json:"end_time"`
	GroupID     int    `json:"group_id"`
	GroupName   string `json:"group_name,omitempty"`
}

type Group struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Members []sessions.User `json:"members,omitempty"`
}

type GroupInput struct {
	Name string `json:"name" validate:"required,notblank"`
	Type string `json:"type" validate:"required,notblank"`
}

// UserInput creates or updates a user from the admin screen. Password is
// required on creation only.
type UserInput struct {
	Username string            `json:"username" validate:"required,notblank"`
	Email    string            `json:"email" validate:"required,email"`
	Role     sessions.RoleType `json:"role" validate:"required,role"`
	Password string            `json:"password,omitempty"`
}

// GroupMembershipChange adds and removes group ids for a user in one call.
type GroupMembershipChange struct {
	AddGroups    []int `json:"add_groups" validate:"dive,gt=0"`
	RemoveGroups []int `json:"remove_groups" validate:"dive,gt=0"`
}

// ProfileUpdate changes the current user's email and/or password. A new
// password requires the current one.
type ProfileUpdate struct {
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Password        string `json:"password,omitempty"`
	CurrentPassword string `json:"current_password,omitempty" validate:"required_with=Password"`
}
