package courseview

import (
	"regexp"
	"strings"

	"github.com/Deepakpottavatri06/CourseGen/internal/course"
)

// Kind distinguishes fixed course sections from generated subtopic pages.
type Kind string

const (
	KindMain     Kind = "main"
	KindSubtopic Kind = "subtopic"
)

// Fixed slugs of the three main sections.
const (
	IntroductionID       = "introduction"
	LearningObjectivesID = "learning-objectives"
	PrerequisitesID      = "prerequisites"
)

// IntroPayload is the content of the introduction section.
type IntroPayload struct {
	Introduction string
	Overview     string
}

// Section is one displayable page of a flattened course. Which payload
// field is set depends on the section: Intro for the introduction, Items
// for objectives and prerequisites, Body and Sources for subtopics.
type Section struct {
	ID      string
	Title   string
	Kind    Kind
	Intro   *IntroPayload
	Items   []string
	Body    string
	Sources []string
	Read    bool
}

var whitespace = regexp.MustCompile(`\s+`)

// SubtopicSlug derives the section id of a subtopic from its title.
// Titles differing only by case or whitespace map to the same slug.
func SubtopicSlug(title string) string {
	return "subtopic-" + strings.ToLower(whitespace.ReplaceAllString(title, "-"))
}

// Flatten orders a loaded course into introduction, learning objectives,
// prerequisites, then one section per subtopic content entry.
func Flatten(c *course.Course) []Section {
	if c == nil {
		return nil
	}

	intro := c.Introduction
	if intro == nil {
		intro = &course.Introduction{}
	}

	sections := make([]Section, 0, 3+len(c.SubtopicContents))
	sections = append(sections,
		Section{
			ID:    IntroductionID,
			Title: "Introduction",
			Kind:  KindMain,
			Intro: &IntroPayload{Introduction: intro.Introduction, Overview: intro.Overview},
		},
		Section{
			ID:    LearningObjectivesID,
			Title: "Learning Objectives",
			Kind:  KindMain,
			Items: intro.LearningObjectives,
		},
		Section{
			ID:    PrerequisitesID,
			Title: "Prerequisites",
			Kind:  KindMain,
			Items: intro.Prerequisites,
		},
	)

	for _, sc := range c.SubtopicContents {
		sections = append(sections, Section{
			ID:      SubtopicSlug(sc.Subtopic),
			Title:   sc.Subtopic,
			Kind:    KindSubtopic,
			Body:    sc.Content,
			Sources: sc.Sources,
			Read:    sc.Read,
		})
	}
	return sections
}

// DuplicateSlugs returns every section id used more than once, in order of
// first repetition.
func DuplicateSlugs(sections []Section) []string {
	seen := make(map[string]int, len(sections))
	var dups []string
	for _, s := range sections {
		seen[s.ID]++
		if seen[s.ID] == 2 {
			dups = append(dups, s.ID)
		}
	}
	return dups
}
