package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reforma-dev/reforma/internal/types"
	"gorm.io/gorm"
)

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func newPagination(total int64, page, limit int) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))

	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// paginationParams reads 1-based page and limit query parameters with the
// defaults the API has always used.
func paginationParams(ctx *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	return page, limit
}

// parseDate parses a YYYY-MM-DD request field. An empty string means the
// field was provided without a value and clears the date.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	parsed, err := time.Parse(types.DateLayout, value)

	if err != nil {
		return nil, fmt.Errorf("formato de data inválido (use YYYY-MM-DD): %s", value)
	}

	return &parsed, nil
}

// searchClause builds a case-insensitive substring match over the given
// columns, OR-combined. Lowercasing both sides keeps the behavior identical
// on Postgres and on the SQLite test database.
func searchClause(query *gorm.DB, search string, columns ...string) *gorm.DB {
	pattern := "%" + strings.ToLower(search) + "%"

	var clauses []string
	var args []interface{}

	for _, column := range columns {
		clauses = append(clauses, "LOWER("+column+") LIKE ?")
		args = append(args, pattern)
	}

	return query.Where(strings.Join(clauses, " OR "), args...)
}
