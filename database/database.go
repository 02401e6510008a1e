package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rpupo63/unified-blog-backend/errs"
)

type Database struct {
	db           *gorm.DB
	blogPostRepo *BlogPostRepo
	categoryRepo *CategoryRepo
	tagRepo      *TagRepo
	commentRepo  *CommentRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		blogPostRepo: NewBlogPostRepo(db),
		categoryRepo: NewCategoryRepo(db),
		tagRepo:      NewTagRepo(db),
		commentRepo:  NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}

// GetDB returns the underlying database connection
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Transaction runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise, including
// when ctx is cancelled. Called on a Database that is already inside a
// transaction, it runs fn in a savepoint instead.
//
// ApiErr values returned by fn are passed through; anything else is reported
// as errs.ErrTransactionFailed.
func (d Database) Transaction(ctx context.Context, fn func(tx Database) error) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
	if err == nil {
		return nil
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	if ctx.Err() != nil {
		return errs.NewDatabaseError("run", "transaction", err)
	}
	return errs.NewTransactionFailedError("write", err)
}

// Ping checks that the primary connection is usable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
