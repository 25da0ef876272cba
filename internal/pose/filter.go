package pose

// FilterByTag keeps records carrying tag. An empty tag keeps everything.
func FilterByTag(records []Record, tag Tag) []Record {
	if tag == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDifficulty keeps records at level d. An empty level keeps
// everything.
func FilterByDifficulty(records []Record, d Difficulty) []Record {
	if d == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Difficulty == d {
			out = append(out, r)
		}
	}
	return out
}

// FindByID returns the record with id.
func FindByID(records []Record, id int) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}
