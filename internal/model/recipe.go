package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	pgvector "github.com/pgvector/pgvector-go"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is the durable detail record, keyed by a stable slug id. The
// SearchIngredients column holds the normalized comma-separated ingredient
// names shared with the vector index payload; everything else is
// presentation detail consumed downstream of ranking.
type Recipe struct {
	ID                  string           `gorm:"primaryKey;size:255" json:"id"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	Name                string           `gorm:"size:255;not null" json:"name"`
	Description         string           `gorm:"type:text" json:"description"`
	SearchIngredients   string           `gorm:"type:text;not null" json:"search_ingredients"`
	DetailedIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"detailed_ingredients"`
	Seasonings          pq.StringArray   `gorm:"type:text[]" json:"seasonings"`
	Steps               JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	CookTime            string           `gorm:"size:100" json:"cook_time"`
}

// RecipePoint is one row of the vector index: the recipe embedding plus the
// compact payload the ranking engine scores against. One point per recipe.
type RecipePoint struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipeID          string          `gorm:"size:255;not null;index" json:"recipe_id"`
	Name              string          `gorm:"size:255;not null" json:"name"`
	SearchIngredients string          `gorm:"type:text;not null" json:"search_ingredients"`
	Embedding         pgvector.Vector `gorm:"type:vector(768)" json:"-"`
}
