package roster

import (
	"sort"

	"github.com/Kerhoff/GymMembers/internal/models"
)

// Cache is the client's local copy of the server's member list. Every
// mutation keeps it sorted by name in byte order, with ties broken by id.
type Cache struct {
	members []models.Member
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{}
}

// ReplaceAll swaps the whole cache for members
func (c *Cache) ReplaceAll(members []models.Member) {
	c.members = append([]models.Member(nil), members...)
	c.sort()
}

// Insert adds m, replacing any cached record with the same id
func (c *Cache) Insert(m models.Member) {
	if i := c.index(m.ID); i >= 0 {
		c.members[i] = m
	} else {
		c.members = append(c.members, m)
	}
	c.sort()
}

// Replace overwrites the cached record with m's id. It returns false when
// no such record is cached.
func (c *Cache) Replace(m models.Member) bool {
	i := c.index(m.ID)
	if i < 0 {
		return false
	}
	c.members[i] = m
	c.sort()
	return true
}

// Remove drops the record with id, returning false when none was cached
func (c *Cache) Remove(id int64) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.members = append(c.members[:i], c.members[i+1:]...)
	return true
}

// Get returns the cached record with id
func (c *Cache) Get(id int64) (models.Member, bool) {
	if i := c.index(id); i >= 0 {
		return c.members[i], true
	}
	return models.Member{}, false
}

// All returns a copy of the cached members in display order
func (c *Cache) All() []models.Member {
	return append([]models.Member{}, c.members...)
}

func (c *Cache) Len() int {
	return len(c.members)
}

func (c *Cache) index(id int64) int {
	for i := range c.members {
		if c.members[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cache) sort() {
	sort.SliceStable(c.members, func(i, j int) bool {
		if c.members[i].Name != c.members[j].Name {
			return c.members[i].Name < c.members[j].Name
		}
		return c.members[i].ID < c.members[j].ID
	})
}
