package course

import (
	"fmt"
	"strings"
)

// Difficulty is the learner level a course was generated for.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// ParseDifficulty maps a case-insensitive name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Beginner, Intermediate, Advanced:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want beginner, intermediate or advanced)", s)
}

// Label returns the capitalized display name.
func (d Difficulty) Label() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Next cycles to the following level, wrapping around.
func (d Difficulty) Next() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Beginner
}

// Introduction is the opening block of a generated course.
type Introduction struct {
	Topic              string   `json:"topic,omitempty"`
	Introduction       string   `json:"introduction"`
	Overview           string   `json:"overview"`
	LearningObjectives []string `json:"learning_objectives"`
	Prerequisites      []string `json:"prerequisites"`
	WordCount          int      `json:"word_count,omitempty"`
}

// SubtopicContent is the generated body for one subtopic.
type SubtopicContent struct {
	Subtopic  string   `json:"subtopic"`
	Content   string   `json:"content"`
	Sources   []string `json:"sources"`
	Read      bool     `json:"read"`
	WordCount int      `json:"word_count,omitempty"`
}

// Course is a course document as served by the backend. A course that is
// still being generated only carries its summary fields and ContentLoaded=false.
type Course struct {
	ID                   string            `json:"_id"`
	Topic                string            `json:"topic"`
	Difficulty           Difficulty        `json:"difficulty"`
	Language             string            `json:"language,omitempty"`
	EstimatedReadingTime int               `json:"estimated_reading_time"`
	SubTopics            []string          `json:"sub_topics"`
	Introduction         *Introduction     `json:"introduction,omitempty"`
	SubtopicContents     []SubtopicContent `json:"subtopic_contents"`
	TotalWordCount       int               `json:"total_word_count,omitempty"`
	CourseDesigned       bool              `json:"course_designed,omitempty"`
	ContentLoaded        bool              `json:"content_loaded"`
}

// ReadCount returns how many subtopics the server reports as read.
func (c *Course) ReadCount() int {
	n := 0
	for _, sc := range c.SubtopicContents {
		if sc.Read {
			n++
		}
	}
	return n
}
