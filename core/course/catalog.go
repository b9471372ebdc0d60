package course

import (
	"context"

	"github.com/pkg/errors"
)

// Catalog merges the seed course set with a user's stored courses and drives
// new course generation.
type Catalog struct {
	repo Repository
	gen  Generator
}

func NewCatalog(repo Repository, gen Generator) *Catalog {
	return &Catalog{repo: repo, gen: gen}
}

// LoadUserCourses fetches the user's stored course records keyed by identifier.
func (c *Catalog) LoadUserCourses(userID string) (map[string]Course, error) {
	stored, err := c.repo.ListUserCourses(userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing user courses")
	}
	courses := make(map[string]Course, len(stored)+len(SeedCourses))
	for _, crs := range stored {
		courses[crs.ID] = crs
	}
	return courses, nil
}

// EnsureSeedCourses merges into courses every seed course the user has no
// stored record for and persists the newly added ones in a single batch.
// If the batch persist fails, the merge is rolled back for exactly the
// newly-added identifiers: courses that failed to save must not be shown.
func (c *Catalog) EnsureSeedCourses(userID string, courses map[string]Course) error {
	var missing []Course
	for _, seed := range SeedCourses {
		if _, ok := courses[seed.ID]; !ok {
			missing = append(missing, seed)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	for _, crs := range missing {
		courses[crs.ID] = crs
	}
	if err := c.repo.InsertUserCourses(userID, missing); err != nil {
		for _, crs := range missing {
			delete(courses, crs.ID)
		}
		return errors.Wrap(err, "saving initial courses")
	}
	return nil
}

// Generate requests course content for a topic and persists the resulting
// course under the user. On persist failure the generated content is
// discarded and the error surfaced; nothing is returned for local merge.
func (c *Catalog) Generate(ctx context.Context, userID string, nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}

	content, err := c.gen.GenerateCourse(ctx, nc.Topic, nc.Difficulty)
	if err != nil {
		return Course{}, errors.Wrapf(err, "generating course content for %q", nc.Topic)
	}

	crs := Course{
		ID:          NewCourseID(nc.Topic),
		Title:       nc.Topic,
		Description: content.Description,
		Icon:        content.Icon,
		Difficulty:  content.Difficulty,
		Lessons:     content.Lessons,
	}
	if err = c.repo.InsertUserCourses(userID, []Course{crs}); err != nil {
		return Course{}, errors.Wrap(err, "saving generated course")
	}
	return crs, nil
}
