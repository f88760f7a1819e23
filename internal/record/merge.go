package record

// Merge combines two edits of the same ancestor record field by field.
//
// A field counts as changed on a side when its value differs from the
// ancestor's. If any field was changed on both sides the merge fails, even
// when both sides agree on the new value. Otherwise the result is the
// ancestor with each side's changes applied, tagged Merged.
func Merge(local, ancestor, remote *Record) (*Record, bool) {
	if local.schema != ancestor.schema || remote.schema != ancestor.schema {
		return nil, false
	}

	names := ancestor.Names()
	changedLocal := make(map[string]bool)
	for _, name := range names {
		if local.Get(name) != ancestor.Get(name) {
			changedLocal[name] = true
		}
	}
	var changedRemote []string
	for _, name := range names {
		if remote.Get(name) == ancestor.Get(name) {
			continue
		}
		if changedLocal[name] {
			return nil, false
		}
		changedRemote = append(changedRemote, name)
	}

	out := ancestor.Clone()
	out.Source = Merged
	for _, name := range names {
		if changedLocal[name] {
			out.Set(name, local.Get(name))
		}
	}
	for _, name := range changedRemote {
		out.Set(name, remote.Get(name))
	}
	return out, true
}
