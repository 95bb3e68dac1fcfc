package query

type missingValue struct{}

func (missingValue) String() string { return "<missing>" }

// Missing absent value, returned by attribute lookups when the field does
// not exist at all, as opposed to a stored nil
var Missing interface{} = missingValue{}

// IsMissing reports whether value is Missing
func IsMissing(value interface{}) bool {
	_, ok := value.(missingValue)
	return ok
}
