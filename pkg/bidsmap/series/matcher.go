package series

// Exists reports whether previous already contains a record equivalent to
// candidate, so classification work for it can be skipped.
//
// A record matches when every attribute in the candidate's attribute set
// equals the same attribute of the existing record, and, when matchLabels is
// true, every assigned label of the candidate equals the existing record's
// label. An attribute or label missing on the existing side counts as a
// mismatch. A candidate whose attributes are all absent matches nothing,
// which keeps folders with no extractable metadata from deduplicating
// against each other.
//
// The scan is in list order and stops at the first match; previous is never
// mutated.
func Exists(candidate Record, previous []Record, matchLabels bool) bool {
	for _, item := range previous {
		if matches(candidate, item, matchLabels) {
			return true
		}
	}
	return false
}

func matches(candidate, item Record, matchLabels bool) bool {
	match := candidate.Attributes.AnyPresent()
	if !match {
		return false
	}

	for name, want := range candidate.Attributes {
		got, ok := item.Attributes[name]
		if !ok || !want.Equal(got) {
			return false
		}
	}

	if !matchLabels {
		return true
	}

	// Only labels the candidate actually carries constrain the match. Labels
	// exist in one modality but not another, so an absent candidate label
	// says nothing about equivalence.
	for _, f := range labelFields {
		want := f.get(candidate.Labels)
		if want.IsAbsent() {
			continue
		}
		if !want.Equal(f.get(item.Labels)) {
			return false
		}
	}
	return true
}
