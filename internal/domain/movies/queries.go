package movies

import (
	"gorm.io/gorm"
)

// Filters mirrors the query parameters of the movie list endpoint. Zero
// values mean "not filtered".
type Filters struct {
	Query       string
	Genre       string
	Director    string
	MainLead    string
	ReleaseYear int
	IsPremium   *bool
}

func FilteredQuery(db *gorm.DB, f Filters) *gorm.DB {
	q := db.Model(&Movie{})

	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if f.Genre != "" {
		q = q.Where("genre ILIKE ?", f.Genre)
	}
	if f.Director != "" {
		q = q.Where("director = ?", f.Director)
	}
	if f.MainLead != "" {
		q = q.Where("main_lead = ?", f.MainLead)
	}
	if f.ReleaseYear != 0 {
		q = q.Where("release_year = ?", f.ReleaseYear)
	}
	if f.IsPremium != nil {
		q = q.Where("is_premium = ?", *f.IsPremium)
	}

	return q
}

// Paginate clamps page/perPage to sane values and returns the normalized pair
// alongside the scoped query.
func Paginate(q *gorm.DB, page, perPage int) (*gorm.DB, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return q.Offset((page - 1) * perPage).Limit(perPage), page, perPage
}
