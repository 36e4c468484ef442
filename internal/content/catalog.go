package content

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nfrund/tradeskills/internal/domain"
)

// SectionPath returns the URL path a section is served at.
func SectionPath(slug string) string {
	return "/courses/" + slug
}

// Course groups the sections of one course in reading order.
type Course struct {
	Name     string
	Sections []*domain.Section
}

// Catalog is the current, validated set of sections. It is safe for
// concurrent use and can be swapped wholesale by Replace.
type Catalog struct {
	mu      sync.RWMutex
	bySlug  map[string]*domain.Section
	ordered []*domain.Section
}

// NewCatalog builds a catalog from sections.
func NewCatalog(sections []*domain.Section) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(sections); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps in a new set of sections. On error the current set is kept.
func (c *Catalog) Replace(sections []*domain.Section) error {
	bySlug := make(map[string]*domain.Section, len(sections))
	ordered := make([]*domain.Section, 0, len(sections))
	for _, s := range sections {
		if _, dup := bySlug[s.Slug]; dup {
			return fmt.Errorf("duplicate section slug %q", s.Slug)
		}
		// Copy so deriving navigation never touches the caller's values.
		cp := *s
		bySlug[s.Slug] = &cp
		ordered = append(ordered, &cp)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.Slug < b.Slug
	})
	linkSiblings(ordered)

	c.mu.Lock()
	c.bySlug = bySlug
	c.ordered = ordered
	c.mu.Unlock()
	return nil
}

// linkSiblings fills in missing prev/next links from reading order within a
// course. Authored links are left alone.
func linkSiblings(ordered []*domain.Section) {
	for i, s := range ordered {
		if s.Prev == nil && i > 0 && ordered[i-1].Course == s.Course {
			p := ordered[i-1]
			s.Prev = &domain.NavLink{Label: p.Title, Href: SectionPath(p.Slug)}
		}
		if s.Next == nil && i+1 < len(ordered) && ordered[i+1].Course == s.Course {
			n := ordered[i+1]
			s.Next = &domain.NavLink{Label: n.Title, Href: SectionPath(n.Slug)}
		}
	}
}

// Get returns the section with the given slug.
func (c *Catalog) Get(slug string) (*domain.Section, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("section %q: %w", slug, domain.ErrNotFound)
	}
	return s, nil
}

// List returns all sections in reading order.
func (c *Catalog) List() []*domain.Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*domain.Section(nil), c.ordered...)
}

// Courses groups sections by course, in course name order.
func (c *Catalog) Courses() []Course {
	var courses []Course
	for _, s := range c.List() {
		if n := len(courses); n > 0 && courses[n-1].Name == s.Course {
			courses[n-1].Sections = append(courses[n-1].Sections, s)
			continue
		}
		courses = append(courses, Course{Name: s.Course, Sections: []*domain.Section{s}})
	}
	return courses
}

// Len returns the number of sections.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ordered)
}
