package prospect

// Field identifies an input column that may or may not have been present in
// the source file. Analysis stages check presence before running; an absent
// field degrades the stage to an empty result rather than an error.
type Field string

const (
	FieldStatus      Field = "status"
	FieldChannel     Field = "channel"
	FieldCountry     Field = "country"
	FieldJobTitle    Field = "jobTitle"
	FieldJobCategory Field = "jobCategory"
)

// FieldSet tracks which input fields the upstream loader actually produced
type FieldSet map[Field]bool

// Dataset couples a record set with its declared field presence. Each
// analysis run takes its own Dataset value; the engine never mutates it.
type Dataset struct {
	Records []Record
	Fields  FieldSet
}

// NewDataset builds a dataset with an explicit field presence declaration
func NewDataset(records []Record, fields ...Field) Dataset {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = true
	}
	return Dataset{Records: records, Fields: fs}
}

// DetectFields builds a dataset inferring presence from record contents: a
// field counts as present when any record carries a non-empty value for it.
func DetectFields(records []Record) Dataset {
	fs := make(FieldSet)
	for _, r := range records {
		if r.Status != "" {
			fs[FieldStatus] = true
		}
		if r.Channel != "" {
			fs[FieldChannel] = true
		}
		if r.Country != "" {
			fs[FieldCountry] = true
		}
		if r.JobTitle != "" {
			fs[FieldJobTitle] = true
		}
		if r.JobCategory != "" {
			fs[FieldJobCategory] = true
		}
	}
	return Dataset{Records: records, Fields: fs}
}

// Has reports whether the dataset carries the given field
func (d Dataset) Has(f Field) bool {
	return d.Fields[f]
}

// Len returns the record count
func (d Dataset) Len() int {
	return len(d.Records)
}
