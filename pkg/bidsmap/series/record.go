package series

// Modalities are the BIDS modalities a series can be classified into
var Modalities = []string{"anat", "func", "beh", "dwi", "fmap"}

// UnknownModality labels a series that matched no heuristic template
const UnknownModality = "unknown"

// AttributeSet maps DICOM attribute names to their extracted values.
// Attributes that could not be extracted hold the absent value.
type AttributeSet map[string]Value

// AnyPresent reports whether at least one attribute holds a non-absent value
func (a AttributeSet) AnyPresent() bool {
	for _, v := range a {
		if !v.IsAbsent() {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy of the attribute set
func (a AttributeSet) Clone() AttributeSet {
	out := make(AttributeSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Labels holds the BIDS classification labels assigned to a series. A label
// that does not apply to the series' modality is left absent; absent labels
// are skipped during matching.
type Labels struct {
	Modality Value
	Suffix   Value
	Task     Value
	Acq      Value
	Ce       Value
	Rec      Value
	Dir      Value
	Run      Value
	Echo     Value
}

// labelField pairs a label name with an accessor so matching and rendering
// can iterate the fixed label schema in one place.
type labelField struct {
	name string
	get  func(Labels) Value
}

var labelFields = []labelField{
	{"modality", func(l Labels) Value { return l.Modality }},
	{"suffix", func(l Labels) Value { return l.Suffix }},
	{"task", func(l Labels) Value { return l.Task }},
	{"acq", func(l Labels) Value { return l.Acq }},
	{"ce", func(l Labels) Value { return l.Ce }},
	{"rec", func(l Labels) Value { return l.Rec }},
	{"dir", func(l Labels) Value { return l.Dir }},
	{"run", func(l Labels) Value { return l.Run }},
	{"echo", func(l Labels) Value { return l.Echo }},
}

// Each calls fn for every label field in schema order, including absent ones
func (l Labels) Each(fn func(name string, v Value)) {
	for _, f := range labelFields {
		fn(f.name, f.get(l))
	}
}

// Record is one imaging acquisition: the attributes extracted from its DICOM
// file plus the BIDS labels assigned by classification. Provenance records
// the source folder and never participates in matching.
type Record struct {
	Provenance string
	Attributes AttributeSet
	Labels     Labels
}
