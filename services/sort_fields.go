package services

import (
	"cmp"
	"strings"

	"github.com/rpupo63/unified-blog-backend/models"
	"github.com/rpupo63/unified-blog-backend/sorting"
)

// Sortable fields per entity. numberOfLikes is derived from the like set and
// is not sortable.
var (
	PostSortFields = sorting.NewRegistry("blog post",
		sorting.Field[models.BlogPost]{Name: "title", Column: "title", Compare: func(a, b *models.BlogPost) int { return strings.Compare(a.Title, b.Title) }},
		sorting.Field[models.BlogPost]{Name: "slug", Column: "slug", Compare: func(a, b *models.BlogPost) int { return strings.Compare(a.Slug, b.Slug) }},
		sorting.Field[models.BlogPost]{Name: "authorName", Column: "author_name", Compare: func(a, b *models.BlogPost) int { return strings.Compare(a.AuthorName, b.AuthorName) }},
		sorting.Field[models.BlogPost]{Name: "viewCount", Column: "view_count", Compare: func(a, b *models.BlogPost) int { return cmp.Compare(a.ViewCount, b.ViewCount) }},
		sorting.Field[models.BlogPost]{Name: "published", Column: "published", Compare: func(a, b *models.BlogPost) int { return compareBool(a.Published, b.Published) }},
		sorting.Field[models.BlogPost]{Name: "featured", Column: "featured", Compare: func(a, b *models.BlogPost) int { return compareBool(a.Featured, b.Featured) }},
		sorting.Field[models.BlogPost]{Name: "createdDate", Column: "date_added", Compare: func(a, b *models.BlogPost) int { return a.DateAdded.Compare(b.DateAdded) }},
		sorting.Field[models.BlogPost]{Name: "updatedDate", Column: "date_edited", Compare: func(a, b *models.BlogPost) int { return a.DateEdited.Compare(b.DateEdited) }},
	)

	CommentSortFields = sorting.NewRegistry("comment",
		sorting.Field[models.Comment]{Name: "createdDate", Column: "date_added", Compare: func(a, b *models.Comment) int { return a.DateAdded.Compare(b.DateAdded) }},
		sorting.Field[models.Comment]{Name: "updatedDate", Column: "date_edited", Compare: func(a, b *models.Comment) int { return a.DateEdited.Compare(b.DateEdited) }},
		sorting.Field[models.Comment]{Name: "authorName", Column: "author_name", Compare: func(a, b *models.Comment) int { return strings.Compare(a.AuthorName, b.AuthorName) }},
	)

	CategorySortFields = sorting.NewRegistry("category",
		sorting.Field[models.Category]{Name: "name", Column: "name", Compare: func(a, b *models.Category) int { return strings.Compare(a.Name, b.Name) }},
		sorting.Field[models.Category]{Name: "slug", Column: "slug", Compare: func(a, b *models.Category) int { return strings.Compare(a.Slug, b.Slug) }},
	)

	TagSortFields = sorting.NewRegistry("tag",
		sorting.Field[models.Tag]{Name: "name", Column: "name", Compare: func(a, b *models.Tag) int { return strings.Compare(a.Name, b.Name) }},
		sorting.Field[models.Tag]{Name: "slug", Column: "slug", Compare: func(a, b *models.Tag) int { return strings.Compare(a.Slug, b.Slug) }},
	)
)

// defaultCommentSort applies when a comment listing names no sort field.
const defaultCommentSort = "createdDate"

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
