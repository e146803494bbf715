package story

import (
	"errors"
	"strings"
	"time"

	"echoclime/pkg/session"
)

type ServiceStory interface {
	GetAll() []*Story
	GetByID(id string) (*Story, error)
	GetByCategory(category string) []*Story
	Publish(story *Story, author *session.User) error
}

type StoryService struct {
	Repo Repository
}

func NewService(repo Repository) *StoryService {
	return &StoryService{Repo: repo}
}

func (s *StoryService) GetAll() []*Story {
	return s.Repo.GetAll()
}

func (s *StoryService) GetByID(id string) (*Story, error) {
	return s.Repo.GetByID(id)
}

func (s *StoryService) GetByCategory(category string) []*Story {
	return s.Repo.GetByCategory(category)
}

// Publish stores a new story attributed to the current session user, with
// counters zeroed and the publication time stamped server-side.
func (s *StoryService) Publish(story *Story, author *session.User) error {
	if author == nil {
		return errors.New("missing author")
	}
	if strings.TrimSpace(story.Title) == "" {
		return errors.New("missing title")
	}
	if !validCategory(story.Category) {
		return errors.New("invalid category")
	}

	story.Author = author.Name
	story.Views = 0
	story.Featured = false
	story.Published = time.Now()

	return s.Repo.Create(story)
}

func validCategory(category string) bool {
	for _, c := range strings.Split(Categories, "|") {
		if c == category {
			return true
		}
	}
	return false
}
