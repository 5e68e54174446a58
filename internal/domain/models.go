// Package domain defines the persistence models for users, recipes, and
// ratings. These types are mapped with GORM and form the core data layer
// of the recipe-sharing application.
//
// Deletions are hard deletes on purpose: ratings must disappear with their
// recipe through the FK cascade, and the (recipe_id, user_id) uniqueness
// index must never be satisfied by a tombstoned row.
package domain

import "time"

// User represents a registered account. The password is stored only as an
// argon2id hash and is never serialized into API responses.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: display name shown next to published recipes.
//   - Email: login identifier; uniqueness is enforced by the database.
//   - PasswordHash: PHC-encoded argon2id hash (json:"-").
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID           string    `json:"id"       gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(64);not null"`
	Email        string    `json:"email"    gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-"        gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Recipe represents a published recipe owned by a user. The owner is fixed
// at creation; only the owner may mutate or delete the record.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - UserID: identifier of the owning user; immutable, indexed.
//   - Title: recipe name.
//   - ImageURL: optional image reference, either an external URL or an
//     internally managed "/uploads/..." handle; empty when absent.
//   - Ingredients / Steps: free text.
//   - CookTime / Difficulty: categorical filter columns.
//   - Username: owner display name, populated by joins only (not a column).
//   - Owner: FK association, cascade-deletes recipes with their user.
type Recipe struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID      string    `json:"user_id"     gorm:"type:char(36);not null;index:idx_user_recipes"`
	Title       string    `json:"title"       gorm:"type:varchar(255);not null"`
	ImageURL    string    `json:"imageUrl"    gorm:"type:varchar(512);not null;default:''"`
	Ingredients string    `json:"ingredients" gorm:"type:text;not null"`
	Steps       string    `json:"steps"       gorm:"type:text;not null"`
	CookTime    string    `json:"cook_time"   gorm:"type:varchar(32);not null"`
	Difficulty  string    `json:"difficulty"  gorm:"type:varchar(32);not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Username carries the owner's display name on read queries that join
	// the users table. It is excluded from migrations and never written.
	Username string `json:"username,omitempty" gorm:"->;-:migration"`

	// Owner is the publishing user. Recipes are cascade-deleted if their
	// owner is removed.
	Owner User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// Rating represents a single 1–5 score a user gave a recipe they do not
// own. A user can rate a given recipe at most once (enforced by the unique
// index), and rows are immutable once written.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - RecipeID: rated recipe (unique per user).
//   - UserID: rating author (unique per recipe).
//   - Value: integer score, DB-checked to the 1..5 range.
//   - Recipe: FK association, ensures ratings cascade with their recipe.
type Rating struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	RecipeID  string    `json:"recipe_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_rating_recipe_user"`
	UserID    string    `json:"user_id"   gorm:"type:char(36);not null;index;uniqueIndex:ux_rating_recipe_user"`
	Value     int       `json:"value"     gorm:"not null;check:value >= 1 AND value <= 5"`
	CreatedAt time.Time `json:"created_at"`

	// Recipe is the rated subject. Ratings are cascade-deleted if the
	// underlying recipe is removed.
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Rating.
func (Rating) TableName() string { return "ratings" }
