package dto

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// MaxMoney is the exclusive upper bound of a NUMERIC(12,2) column.
const MaxMoney = 1e10

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validMoney)
		_ = v.RegisterValidation("ref", validRef)
	}
}

// validMoney accepts amounts that fit NUMERIC(12,2): at most two decimal
// places and below MaxMoney in magnitude.
func validMoney(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return IsMoney(field.Float())
	}
	return false
}

// IsMoney reports whether v has at most two decimal places and |v| < MaxMoney.
func IsMoney(v float64) bool {
	if v >= MaxMoney || v <= -MaxMoney || v != v {
		return false
	}
	// shortest representation round-trips the decoded JSON number
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > 2 {
		return false
	}
	return true
}

// validRef accepts an empty string or a UUID. Optional foreign ids use it so
// that an empty value still means "none".
func validRef(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := uuid.Parse(value)
	return err == nil
}
