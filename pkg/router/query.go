package router

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/voluntree-lab/backend/pkg/errorx"
)

// decodeQuery fills dst (a pointer to struct) from query parameters, keyed
// by the json tag of each exported field. Only the scalar kinds used by
// request models are supported.
func decodeQuery(values url.Values, dst any) error {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		raw := values.Get(name)
		if raw == "" {
			continue
		}

		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(raw)

		case reflect.Int, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid number for parameter %s", name)
			}
			f.SetInt(n)

		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return errorx.New(errorx.BadRequest, "Invalid boolean for parameter %s", name)
			}
			f.SetBool(b)

		default:
			return errorx.New(errorx.BadRequest, "Unsupported parameter %s", name)
		}
	}

	return nil
}
