package movies

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"movie-explorer-api/database"
	"movie-explorer-api/internal/domain/access"
	"movie-explorer-api/internal/domain/movies"
	"movie-explorer-api/internal/domain/subscriptions"
	"movie-explorer-api/internal/domain/users"
	"movie-explorer-api/internal/infra/fcm"

	"github.com/gin-gonic/gin"
)

type MovieInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Genre       string  `json:"genre" binding:"required"`
	Director    string  `json:"director" binding:"required"`
	MainLead    string  `json:"main_lead" binding:"required"`
	Rating      float64 `json:"rating"`
	Duration    int     `json:"duration" binding:"required"`
	ReleaseYear int     `json:"release_year" binding:"required"`
	IsPremium   bool    `json:"is_premium"`
	BannerURL   *string `json:"banner_url"`
	PosterURL   *string `json:"poster_url"`
}

func ListMovies(c *gin.Context) {
	filters := movies.Filters{
		Query:    c.Query("query"),
		Genre:    c.Query("genre"),
		Director: c.Query("director"),
		MainLead: c.Query("main_lead"),
	}
	if year := c.Query("release_year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid release_year"})
			return
		}
		filters.ReleaseYear = y
	}
	if premium := c.Query("is_premium"); premium != "" {
		p, err := strconv.ParseBool(premium)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_premium"})
			return
		}
		filters.IsPremium = &p
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	q := movies.FilteredQuery(database.DB, filters)

	var totalCount int64
	if err := q.Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load movies"})
		return
	}

	paged, page, perPage := movies.Paginate(q, page, perPage)

	var list []movies.Movie
	if err := paged.Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load movies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movies":       list,
		"total_pages":  int(math.Ceil(float64(totalCount) / float64(perPage))),
		"current_page": page,
		"per_page":     perPage,
		"total_count":  totalCount,
	})
}

func GetMovie(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id"})
		return
	}

	var movie movies.Movie
	if err := database.DB.First(&movie, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}

	now := time.Now()
	viewer, sub := identityFromContext(c)

	decision := access.CanView(now, viewer, sub, movie)
	if sub != nil {
		// access.CanView may have lazily downgraded an expired premium;
		// PersistExpiry is conditional, so this is a no-op otherwise.
		_ = subscriptions.PersistExpiry(database.DB, sub.ID, now)
	}

	if !decision.Allowed {
		switch decision.Reason {
		case access.ReasonUnauthenticated:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Please sign in to access this premium movie", "reason": decision.Reason})
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": "Please purchase a premium subscription to access this movie", "reason": decision.Reason})
		}
		return
	}

	c.JSON(http.StatusOK, movie)
}

func CreateMovie(c *gin.Context) {
	var input MovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	movie := movieFromInput(input)
	if err := movie.Validate(time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Create(&movie).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create movie"})
		return
	}

	go notifyNewMovie(movie)

	c.JSON(http.StatusCreated, movie)
}

func UpdateMovie(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id"})
		return
	}

	var movie movies.Movie
	if err := database.DB.First(&movie, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}

	var input MovieInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := movieFromInput(input)
	updated.ID = movie.ID
	updated.CreatedAt = movie.CreatedAt
	if err := updated.Validate(time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.DB.Save(&updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update movie"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteMovie(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id"})
		return
	}

	res := database.DB.Delete(&movies.Movie{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete movie"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Movie not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

func movieFromInput(input MovieInput) movies.Movie {
	return movies.Movie{
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Director:    input.Director,
		MainLead:    input.MainLead,
		Rating:      input.Rating,
		Duration:    input.Duration,
		ReleaseYear: input.ReleaseYear,
		IsPremium:   input.IsPremium,
		BannerURL:   input.BannerURL,
		PosterURL:   input.PosterURL,
	}
}

// identityFromContext resolves the optional viewer and their subscription so
// the access decision itself never touches request state.
func identityFromContext(c *gin.Context) (*users.User, *subscriptions.Subscription) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		return nil, nil
	}

	var viewer users.User
	if err := database.DB.First(&viewer, userID).Error; err != nil {
		return nil, nil
	}

	sub, err := subscriptions.ForUser(database.DB, viewer.ID)
	if err != nil {
		return &viewer, nil
	}
	return &viewer, &sub
}

func notifyNewMovie(movie movies.Movie) {
	var tokens []string
	if err := database.DB.Model(&users.User{}).
		Where("notifications_enabled = ? AND device_token IS NOT NULL", true).
		Pluck("device_token", &tokens).Error; err != nil {
		return
	}
	fcm.NotifyNewMovie(movie.Title, movie.ID, tokens)
}
