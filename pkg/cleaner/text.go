package cleaner

import "fmt"

// Text converts v to the string a cleaner works on. nil and nil *string
// yield "", strings and byte slices are used as is, and anything else is
// formatted with fmt.Sprint.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
