package models

// Film mapea la tabla `film`. Los productos del catálogo son la misma tabla
// expuesta con otra forma de respuesta.
type Film struct {
	FilmID          int      `json:"film_id" gorm:"column:film_id;primaryKey;autoIncrement"`
	Title           string   `json:"title" gorm:"column:title;not null"`
	Description     *string  `json:"description" gorm:"column:description"`
	ReleaseYear     *int     `json:"release_year" gorm:"column:release_year"`
	LanguageID      int      `json:"-" gorm:"column:language_id"`
	RentalDuration  *int     `json:"-" gorm:"column:rental_duration"`
	RentalRate      float64  `json:"rental_rate" gorm:"column:rental_rate;type:numeric(4,2)"`
	Length          *int     `json:"length" gorm:"column:length"`
	ReplacementCost *float64 `json:"-" gorm:"column:replacement_cost;type:numeric(5,2)"`
	Rating          *string  `json:"rating" gorm:"column:rating"`
}

func (Film) TableName() string { return "film" }
