// Package profile manages child profiles. Every profile owns its own word
// lists, session picker order and progress history.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/vocabflow/vocabflow/internal/domain"
)

// GradeLevels are the accepted grade levels, in order.
var GradeLevels = []string{
	"Kindergarten",
	"1st Grade",
	"2nd Grade",
	"3rd Grade",
	"4th Grade",
	"5th Grade",
	"6th Grade",
	"7th Grade",
	"8th Grade",
}

// ParseGradeLevel matches s against GradeLevels case-insensitively.
func ParseGradeLevel(s string) (string, error) {
	s = strings.TrimSpace(s)
	g, ok := lo.Find(GradeLevels, func(g string) bool { return strings.EqualFold(g, s) })
	if !ok {
		return "", domain.NewValidationError("grade_level", fmt.Sprintf("unknown grade level %q", s))
	}
	return g, nil
}

// Child describes the learner a profile belongs to.
type Child struct {
	ID         string
	Name       string
	GradeLevel string
	Photo      []byte
	CreatedAt  time.Time
}

// ChildInput carries the fields accepted when a profile is created.
type ChildInput struct {
	Name       string
	GradeLevel string
}

func (in ChildInput) validate() (ChildInput, error) {
	var errs []domain.FieldError
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "must not be empty"})
	}
	g, err := ParseGradeLevel(in.GradeLevel)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "grade_level", Message: fmt.Sprintf("unknown grade level %q", in.GradeLevel)})
	}
	in.GradeLevel = g
	if len(errs) > 0 {
		return in, domain.NewValidationErrors(errs)
	}
	return in, nil
}

// PhotoProvider supplies an avatar image, typically from a camera or file
// picker. ok is false when the user chose no photo.
type PhotoProvider interface {
	ProvidePhoto(ctx context.Context) (photo []byte, ok bool, err error)
}

// PhotoFunc adapts a function to PhotoProvider.
type PhotoFunc func(ctx context.Context) ([]byte, bool, error)

func (f PhotoFunc) ProvidePhoto(ctx context.Context) ([]byte, bool, error) { return f(ctx) }
