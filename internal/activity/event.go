package activity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCreated       Kind = "Created"
	KindUpdated       Kind = "Updated"
	KindDeleted       Kind = "Deleted"
	KindStatusChanged Kind = "StatusChanged"
	KindOther         Kind = "Other"
)

var Kinds = []Kind{KindCreated, KindUpdated, KindDeleted, KindStatusChanged}

func ParseKind(s string) (Kind, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	s = strings.ReplaceAll(s, " ", "")
	for _, k := range Kinds {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return KindOther, false
}

// Color is the display tone of a kind in the activity feed.
func (k Kind) Color() string {
	switch k {
	case KindCreated:
		return "green"
	case KindUpdated:
		return "blue"
	case KindDeleted:
		return "red"
	case KindStatusChanged:
		return "yellow"
	}
	return "gray"
}

type Entity string

const (
	EntityStudent Entity = "Student"
	EntityProduct Entity = "Product"
	EntityOrder   Entity = "Order"
	EntityUniform Entity = "Uniform"
)

var Entities = []Entity{EntityStudent, EntityProduct, EntityOrder, EntityUniform}

func ParseEntity(s string) (Entity, bool) {
	s = strings.TrimSpace(s)
	for _, e := range Entities {
		if strings.EqualFold(string(e), s) || strings.EqualFold(string(e)+"s", s) {
			return e, true
		}
	}
	return "", false
}

type Event struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Entity      Entity    `json:"entity"`
	EntityID    int64     `json:"entityId"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

func NewEvent(kind Kind, entity Entity, entityID int64, description string) Event {
	return Event{
		ID:          uuid.New().String(),
		Kind:        kind,
		Entity:      entity,
		EntityID:    entityID,
		Description: description,
		At:          time.Now(),
	}
}

// Classify maps a legacy free-text description to a kind. "status changed" wins over
// the generic update keyword.
func Classify(description string) Kind {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "status changed"):
		return KindStatusChanged
	case strings.Contains(d, "delet"):
		return KindDeleted
	case strings.Contains(d, "creat"):
		return KindCreated
	case strings.Contains(d, "updat"):
		return KindUpdated
	}
	return KindOther
}
