package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/company-task-api/internal/utils"
)

// Paginate applies offset/limit when both page and page_size are set.
func Paginate(params utils.SearchParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !params.Paginated() {
			return db
		}
		return db.Offset(params.Offset()).Limit(params.PageSize)
	}
}

// OrderBy sorts by column. The column must already be validated against
// the entity's sortable fields.
func OrderBy(params utils.SearchParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.OrderBy == "" {
			return db
		}
		return db.Order(clause.OrderByColumn{
			Column: clause.Column{Name: params.OrderBy},
			Desc:   params.Descending,
		})
	}
}

// likeEscaper makes LIKE wildcards in a search value match literally. '!' is
// the escape character because a backslash literal is read differently by
// MySQL and PostgreSQL.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Contains narrows to rows whose column contains value as a literal substring,
// ignoring case. column is interpolated as-is and must be a trusted identifier.
func Contains(column string, value *string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil || *value == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(*value)) + "%"
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", column), pattern)
	}
}

// Equals narrows to rows whose column equals value. A nil value adds no condition.
func Equals[T any](column string, value *T) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: *value})
	}
}
