package influxdb

import "fmt"

// Runtime type checks for values crossing the public API boundary.
// These run before encoding so malformed input never reaches the
// network layer. All checks are pure; they either accept the value
// unchanged or return a *TypeMismatchError naming the offending
// parameter.

const fieldTypeDomain = "int, float, string or bool"

// validateMeasurement checks that a measurement name is a non-empty string.
func validateMeasurement(param, measurement string) error {
	if measurement == "" {
		return &TypeMismatchError{
			Param:    param,
			Expected: "non-empty string",
			Actual:   "empty string",
		}
	}
	return nil
}

// validateFields checks that every field value belongs to the line
// protocol type domain.
func validateFields(param string, fields map[string]interface{}) error {
	for key, value := range fields {
		if !isFieldValue(value) {
			return &TypeMismatchError{
				Param:    fmt.Sprintf("%s[%q]", param, key),
				Expected: fieldTypeDomain,
				Actual:   fmt.Sprintf("%T", value),
			}
		}
	}
	return nil
}

// validatePoints checks every point in a batch before any encoding happens.
func validatePoints(param string, points []*Point) error {
	for i, point := range points {
		if point == nil {
			return &TypeMismatchError{
				Param:    fmt.Sprintf("%s[%d]", param, i),
				Expected: "*Point",
				Actual:   "nil",
			}
		}
		if err := validateMeasurement(fmt.Sprintf("%s[%d].Measurement", param, i), point.Measurement); err != nil {
			return err
		}
		if err := validateFields(fmt.Sprintf("%s[%d].Fields", param, i), point.Fields); err != nil {
			return err
		}
	}
	return nil
}

// validateQueryParams checks that every bind parameter value can be
// stringified into the query text.
func validateQueryParams(param string, params map[string]interface{}) error {
	for key, value := range params {
		if !isFieldValue(value) {
			return &TypeMismatchError{
				Param:    fmt.Sprintf("%s[%q]", param, key),
				Expected: fieldTypeDomain,
				Actual:   fmt.Sprintf("%T", value),
			}
		}
	}
	return nil
}

// isFieldValue reports whether the value belongs to the type domain
// shared by fields and query bind parameters.
func isFieldValue(value interface{}) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32,
		float32, float64,
		string, bool:
		return true
	default:
		return false
	}
}
