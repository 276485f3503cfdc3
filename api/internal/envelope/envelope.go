// Package envelope builds the two response shapes every route returns.
package envelope

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"text-decoder/api/internal/apperr"
)

const (
	TimeLayout      = "2006-01-02T15:04:05.000000Z07:00"
	SuggestedAction = "Please try again or contact support"
)

type SuccessAccessibility struct {
	ScreenReaderSummary string `json:"screen_reader_summary"`
	DataType            string `json:"data_type"`
}

type Success struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	Timestamp     string               `json:"timestamp"`
	Data          any                  `json:"data"`
	Accessibility SuccessAccessibility `json:"accessibility"`
}

type ErrorAccessibility struct {
	ScreenReaderSummary string `json:"screen_reader_summary"`
	SuggestedAction     string `json:"suggested_action"`
}

type Failure struct {
	Success       bool               `json:"success"`
	Error         string             `json:"error"`
	Details       string             `json:"details"`
	Timestamp     string             `json:"timestamp"`
	Accessibility ErrorAccessibility `json:"accessibility"`
}

func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

func OK(at time.Time, data any, message string) Success {
	return Success{
		Success:   true,
		Message:   message,
		Timestamp: Timestamp(at),
		Data:      data,
		Accessibility: SuccessAccessibility{
			ScreenReaderSummary: message,
			DataType:            DataType(data),
		},
	}
}

// Fail builds the error envelope and its status. Only the classified message
// and details are exposed; the wrapped cause never is.
func Fail(at time.Time, err error) (Failure, int) {
	ae := apperr.From(err)
	return Failure{
		Success:   false,
		Error:     ae.Msg,
		Details:   ae.Details,
		Timestamp: Timestamp(at),
		Accessibility: ErrorAccessibility{
			ScreenReaderSummary: "Error: " + ae.Msg,
			SuggestedAction:     SuggestedAction,
		},
	}, apperr.Status(ae.Kind)
}

// DataType names the JSON shape of v the way clients already expect it.
func DataType(v any) string {
	if v == nil {
		return "NoneType"
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "NoneType"
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return "dict"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.String:
		return "str"
	case reflect.Bool:
		return "bool"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	default:
		return rv.Kind().String()
	}
}

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteOK writes a 200 success envelope stamped with at.
func WriteOK(w http.ResponseWriter, at time.Time, data any, message string) {
	WriteJSON(w, http.StatusOK, OK(at, data, message))
}

func WriteError(w http.ResponseWriter, err error) {
	body, code := Fail(time.Now(), err)
	if code == http.StatusTooManyRequests {
		w.Header().Set("Retry-After", "60")
	}
	WriteJSON(w, code, body)
}

// Reject adapts WriteError to the admission rejection hook.
func Reject(w http.ResponseWriter, _ *http.Request, err error) {
	WriteError(w, err)
}
