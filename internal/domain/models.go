package domain

import "time"

// User is a platform account, registered on first sign-in by email.
type User struct {
	ID               int64     `json:"userId"`
	Name             string    `json:"userName"`
	Email            string    `json:"userEmail"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// Subject is a quiz category (a programming language on this platform).
type Subject struct {
	ID   int64  `json:"subjectId"`
	Name string `json:"subjectName"`
}

// Question is a four-option multiple-choice quiz question.
// SubjectName is denormalized onto the row so question lookups need no join.
type Question struct {
	ID            int64  `json:"questionId"`
	SubjectID     int64  `json:"subjectId"`
	SubjectName   string `json:"subjectName"`
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
	Level         int    `json:"questionLevel"` // 1 (easiest) .. 5 (hardest)
}

// ScoreRow is the per-user-per-subject running total. At most one row exists
// per (UserID, SubjectID) pair.
type ScoreRow struct {
	ScoreID            int64 `json:"scoreId"`
	UserID             int64 `json:"userId"`
	SubjectID          int64 `json:"subjectId"`
	SubjectScore       int   `json:"subjectScore"`
	ExercisesCompleted int   `json:"exercisesCompleted"`
}

// UserSubjectScore is a score row joined with its subject name, as returned
// by the per-user listing.
type UserSubjectScore struct {
	UserID             int64  `json:"userId"`
	SubjectID          int64  `json:"subjectId"`
	SubjectName        string `json:"subjectName"`
	SubjectScore       int    `json:"subjectScore"`
	ExercisesCompleted int    `json:"exercisesCompleted"`
}

// LeaderboardEntry is one ranked row of a subject leaderboard.
type LeaderboardEntry struct {
	UserID             int64 `json:"userId"`
	SubjectScore       int   `json:"subjectScore"`
	ExercisesCompleted int   `json:"exercisesCompleted"`
}

// Leaderboard captures the ordered top scores for a subject.
type Leaderboard struct {
	SubjectName string             `json:"subjectName"`
	Entries     []LeaderboardEntry `json:"entries"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// SubjectUserCount is a per-subject count of users holding a score row.
type SubjectUserCount struct {
	SubjectName string `json:"subject"`
	UserCount   int    `json:"userCount"`
}

// SubjectQuestionCount is a per-subject count of quiz questions.
type SubjectQuestionCount struct {
	SubjectName    string `json:"subject"`
	TotalQuestions int    `json:"totalQuestions"`
}

// LevelBuckets maps a difficulty name to the question levels it draws from.
// The overlap between buckets is deliberate: medium and hard both reuse
// level-3 questions so thin subjects still fill a round.
func LevelBuckets(level string) ([]int, error) {
	switch level {
	case "easy":
		return []int{1, 2, 3}, nil
	case "medium":
		return []int{3, 4}, nil
	case "hard":
		return []int{3, 4, 5}, nil
	default:
		return nil, ErrInvalidLevel
	}
}
