package course

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxSubtopics is the most subtopics a single generation request may carry.
const MaxSubtopics = 8

// DefaultLanguage is the content language the generation form submits.
const DefaultLanguage = "english"

var (
	ErrEmptySubtopic     = errors.New("subtopic is empty")
	ErrDuplicateSubtopic = errors.New("subtopic already added")
	ErrTooManySubtopics  = fmt.Errorf("at most %d subtopics allowed", MaxSubtopics)
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// GenerateRequest is the body of a course generation request.
type GenerateRequest struct {
	Topic      string     `json:"topic" validate:"required"`
	SubTopics  []string   `json:"sub_topics" validate:"min=1,max=8,unique,dive,required"`
	Difficulty Difficulty `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	Language   string     `json:"language" validate:"required"`
}

// NewGenerateRequest returns a request with the form defaults applied.
func NewGenerateRequest(topic string, subTopics []string) GenerateRequest {
	return GenerateRequest{
		Topic:      topic,
		SubTopics:  subTopics,
		Difficulty: Beginner,
		Language:   DefaultLanguage,
	}
}

// Normalize trims whitespace from the topic and every subtopic and fills
// empty difficulty and language with their defaults.
func (r *GenerateRequest) Normalize() {
	r.Topic = strings.TrimSpace(r.Topic)
	for i, s := range r.SubTopics {
		r.SubTopics[i] = strings.TrimSpace(s)
	}
	if r.Difficulty == "" {
		r.Difficulty = Beginner
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
}

// Validate checks the request against the generation form rules.
func (r GenerateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return describe(verrs)
		}
		return err
	}
	return nil
}

func describe(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch {
		case fe.StructField() == "Topic":
			msgs = append(msgs, "topic is required")
		case fe.StructField() == "SubTopics" && fe.Tag() == "min":
			msgs = append(msgs, "add at least one subtopic")
		case fe.StructField() == "SubTopics" && fe.Tag() == "max":
			msgs = append(msgs, ErrTooManySubtopics.Error())
		case fe.StructField() == "SubTopics" && fe.Tag() == "unique":
			msgs = append(msgs, "subtopics must be unique")
		case strings.HasPrefix(fe.StructField(), "SubTopics["):
			msgs = append(msgs, "subtopics must not be empty")
		case fe.StructField() == "Difficulty":
			msgs = append(msgs, fmt.Sprintf("invalid difficulty %q", fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// AddSubtopic appends a trimmed subtopic to list, rejecting empty entries,
// duplicates, and lists already at MaxSubtopics.
func AddSubtopic(list []string, s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return list, ErrEmptySubtopic
	}
	if slices.Contains(list, s) {
		return list, ErrDuplicateSubtopic
	}
	if len(list) >= MaxSubtopics {
		return list, ErrTooManySubtopics
	}
	return append(list, s), nil
}

// RemoveSubtopic returns list without s.
func RemoveSubtopic(list []string, s string) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
