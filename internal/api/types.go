// Package api defines the JSON wire types of the DevLog REST API. They are
// shared by the server handlers and the terminal client.
package api

import "time"

const (
	// BasePath prefixes every resource route.
	BasePath = "/api"
	// NoChallenge marks an entry outside any challenge.
	NoChallenge = "none"
)

// Categories is the fixed set of topic tags shared by challenges and entries.
var Categories = []string{
	"Frontend",
	"Backend",
	"Fullstack",
	"DevOps",
	"DSA",
	"System Design",
	"Cloud",
	"Other",
	"Java",
	"JavaScript",
	"React",
	"Database",
	"AI/ML",
}

type Message struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the profile returned by auth endpoints. Token is only set by
// register and login.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar"`
	Token  string `json:"token,omitempty"`
}

type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	User      User   `json:"user"`
}

type Challenge struct {
	ID           string    `json:"_id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Duration     int       `json:"duration"`
	StartDate    time.Time `json:"startDate"`
	Status       string    `json:"status"`
	DaysElapsed  int       `json:"daysElapsed"`
	EntriesCount int       `json:"entriesCount"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ChallengeInput is the body of create and update. Omitted fields are left
// to defaults (create) or kept (update).
type ChallengeInput struct {
	Name        *string    `json:"name,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Description *string    `json:"description,omitempty"`
	Duration    *int       `json:"duration,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

type TimeSpent struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Entry struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userId"`
	Date        time.Time `json:"date"`
	Topic       string    `json:"topic"`
	Category    string    `json:"category"`
	Content     string    `json:"content"`
	KeyTakeaway string    `json:"keyTakeaway"`
	Doubts      string    `json:"doubts,omitempty"`
	TimeSpent   TimeSpent `json:"timeSpent"`
	ChallengeID string    `json:"challengeId"`
	DayNumber   int       `json:"dayNumber"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type EntryInput struct {
	Date        *time.Time `json:"date,omitempty"`
	Topic       *string    `json:"topic,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Content     *string    `json:"content,omitempty"`
	KeyTakeaway *string    `json:"keyTakeaway,omitempty"`
	Doubts      *string    `json:"doubts,omitempty"`
	TimeSpent   *TimeSpent `json:"timeSpent,omitempty"`
	ChallengeID *string    `json:"challengeId,omitempty"`
	DayNumber   *int       `json:"dayNumber,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

type Stats struct {
	CurrentStreak       int        `json:"currentStreak"`
	LongestStreak       int        `json:"longestStreak"`
	TotalEntriesCreated int        `json:"totalEntriesCreated"`
	TotalHoursLearned   float64    `json:"totalHoursLearned"`
	TopicsCount         int        `json:"topicsCount"`
	LastEntryDate       *time.Time `json:"lastEntryDate,omitempty"`
}

type DeleteChallengeResult struct {
	Message        string `json:"message"`
	EntriesRemoved int64  `json:"entriesRemoved"`
}

type TakeawayRequest struct {
	Content string `json:"content"`
}

type TakeawayResponse struct {
	Takeaway string `json:"takeaway"`
}

type SuggestionsRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type DeepDiveRequest struct {
	Topic string `json:"topic"`
}

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type DeepDiveResponse struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

type PortfolioUser struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Portfolio struct {
	User    PortfolioUser `json:"user"`
	Stats   Stats         `json:"stats"`
	Entries []Entry       `json:"entries"`
}
