package entry

// StringPatch is a three-state field change: leave the field unchanged,
// set it to a new value, or clear it. The zero value means unchanged,
// so an empty patch is a no-op rather than an accidental clear.
type StringPatch struct {
	set   bool
	clear bool
	value string
}

// SetField returns a patch that sets the field to value.
func SetField(value string) StringPatch {
	return StringPatch{set: true, value: value}
}

// ClearField returns a patch that resets the field to its absent state.
func ClearField() StringPatch {
	return StringPatch{clear: true}
}

// Unchanged reports whether the patch leaves the field alone.
func (p StringPatch) Unchanged() bool {
	return !p.set && !p.clear
}

// Clears reports whether the patch clears the field.
func (p StringPatch) Clears() bool {
	return p.clear
}

// Apply returns the field value after applying the patch to current.
func (p StringPatch) Apply(current string) string {
	switch {
	case p.clear:
		return ""
	case p.set:
		return p.value
	default:
		return current
	}
}

// Patch describes a partial edit to an existing entry. Field patches
// and topic operations compose; ClearTopics runs before AddTopics, so a
// wholesale topic replacement is ClearTopics plus AddTopics.
type Patch struct {
	URL    StringPatch
	Title  StringPatch
	Author StringPatch

	AddTopics    []string
	RemoveTopics []string
	ClearTopics  bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.URL.Unchanged() && p.Title.Unchanged() && p.Author.Unchanged() &&
		len(p.AddTopics) == 0 && len(p.RemoveTopics) == 0 && !p.ClearTopics
}

// ApplyTopics returns the entry's topic set after applying the patch's
// topic operations to current.
func (p Patch) ApplyTopics(current []string) []string {
	var topics []string
	if !p.ClearTopics {
		topics = append(topics, current...)
	}
	if len(p.RemoveTopics) > 0 {
		drop := make(map[string]bool, len(p.RemoveTopics))
		for _, t := range p.RemoveTopics {
			drop[t] = true
		}
		kept := topics[:0]
		for _, t := range topics {
			if !drop[t] {
				kept = append(kept, t)
			}
		}
		topics = kept
	}
	topics = append(topics, p.AddTopics...)
	return NormalizeTopics(topics)
}
