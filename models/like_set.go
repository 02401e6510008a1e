package models

import (
	"database/sql/driver"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// LikeSet is the set of users who liked a post or comment. The like count is
// its size.
type LikeSet struct {
	members map[uuid.UUID]struct{}
}

func NewLikeSet(userIDs ...uuid.UUID) LikeSet {
	s := LikeSet{members: make(map[uuid.UUID]struct{}, len(userIDs))}
	for _, id := range userIDs {
		s.members[id] = struct{}{}
	}
	return s
}

// Toggle flips userID's membership and reports whether the user is now a member.
func (s *LikeSet) Toggle(userID uuid.UUID) bool {
	if s.members == nil {
		s.members = make(map[uuid.UUID]struct{})
	}
	if _, ok := s.members[userID]; ok {
		delete(s.members, userID)
		return false
	}
	s.members[userID] = struct{}{}
	return true
}

func (s LikeSet) Contains(userID uuid.UUID) bool {
	_, ok := s.members[userID]
	return ok
}

func (s LikeSet) Len() int {
	return len(s.members)
}

// Members returns the user ids in a deterministic order.
func (s LikeSet) Members() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// Value stores the set as a JSON array.
func (s LikeSet) Value() (driver.Value, error) {
	return datatypes.JSONSlice[uuid.UUID](s.Members()).Value()
}

// Scan reads a JSON array; repeated ids collapse into one member.
func (s *LikeSet) Scan(value any) error {
	if value == nil {
		*s = NewLikeSet()
		return nil
	}
	var raw datatypes.JSONSlice[uuid.UUID]
	if err := raw.Scan(value); err != nil {
		return err
	}
	*s = NewLikeSet(raw...)
	return nil
}

func (LikeSet) GormDataType() string {
	return datatypes.JSONSlice[uuid.UUID]{}.GormDataType()
}

func (LikeSet) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return datatypes.JSONSlice[uuid.UUID]{}.GormDBDataType(db, field)
}

// Engageable is implemented by entities users can like.
type Engageable interface {
	Likes() *LikeSet
}
