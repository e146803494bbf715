package story

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the fixed editorial set the dashboard filters by. It also
// constrains the category route pattern.
const Categories = "ice|urban|marine|energy|forests|water|transport|agriculture|weather"

// Story is one impact story shown on the dashboard: a long-form climate
// narrative with a category, a region and a running view counter.
type Story struct {
	MongoID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID        string             `json:"id" bson:"-"`
	Title     string             `json:"title"`
	Excerpt   string             `json:"excerpt"`
	Body      string             `json:"body,omitempty" bson:"body,omitempty"`
	Category  string             `json:"category"`
	Region    string             `json:"region"`
	Author    string             `json:"author"`
	ReadTime  string             `json:"readTime" bson:"read_time"`
	Views     int                `json:"views"`
	Featured  bool               `json:"featured"`
	Published time.Time          `json:"published"`
}

type Repository interface {
	Create(story *Story) error
	GetByID(id string) (*Story, error)
	GetAll() []*Story
	GetByCategory(category string) []*Story
}
