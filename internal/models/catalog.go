package models

// Catalog holds the named exercises per category. Order is insertion order
// and doubles as the default display order. Names are case-sensitive and
// unique within a category.
type Catalog struct {
	Push []string `json:"push"`
	Pull []string `json:"pull"`
	Legs []string `json:"legs"`
}

// DefaultCatalog returns the seed catalog used when no file exists yet.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Push: []string{
			"Bench Press",
			"Overhead Press",
			"Incline Dumbbell Press",
			"Lateral Raises",
			"Tricep Dips",
			"Cable Flyes",
		},
		Pull: []string{
			"Pull-ups",
			"Barbell Rows",
			"Cable Rows",
			"Face Pulls",
			"Barbell Curls",
			"Hammer Curls",
		},
		Legs: []string{
			"Squats",
			"Romanian Deadlifts",
			"Leg Press",
			"Leg Curls",
			"Calf Raises",
			"Bulgarian Split Squats",
		},
	}
}

// Clone returns a deep copy sharing no backing arrays with the original.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		Push: append([]string(nil), c.Push...),
		Pull: append([]string(nil), c.Pull...),
		Legs: append([]string(nil), c.Legs...),
	}
}

// Exercises returns the exercise list for a category.
func (c *Catalog) Exercises(cat Category) []string {
	switch cat {
	case CategoryPush:
		return c.Push
	case CategoryPull:
		return c.Pull
	case CategoryLegs:
		return c.Legs
	}
	return nil
}

func (c *Catalog) setExercises(cat Category, list []string) {
	switch cat {
	case CategoryPush:
		c.Push = list
	case CategoryPull:
		c.Pull = list
	case CategoryLegs:
		c.Legs = list
	}
}

// Add appends an exercise to a category. Returns false if the name is
// already present (the catalog is unchanged in that case).
func (c *Catalog) Add(cat Category, name string) bool {
	list := c.Exercises(cat)
	for _, e := range list {
		if e == name {
			return false
		}
	}
	c.setExercises(cat, append(list, name))
	return true
}

// Remove deletes an exercise from a category. Returns false if not found.
func (c *Catalog) Remove(cat Category, name string) bool {
	list := c.Exercises(cat)
	for i, e := range list {
		if e == name {
			c.setExercises(cat, append(list[:i:i], list[i+1:]...))
			return true
		}
	}
	return false
}
