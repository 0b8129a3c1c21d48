package dto

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const maxMemoRunes = 100

var (
	entityIDRe      = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	transactionIDRe = regexp.MustCompile(`^\d+\.\d+\.\d+@\d+\.\d+$`)
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("account_id", validateAccountID)
		_ = v.RegisterValidation("transaction_id", validateTransactionID)
		_ = v.RegisterValidation("memo", validateMemo)
	}
}

// validateAccountID accepts shard.realm.num entity ids.
func validateAccountID(fl validator.FieldLevel) bool {
	return entityIDRe.MatchString(fl.Field().String())
}

// validateTransactionID accepts <payer>@<seconds>.<nanos>.
func validateTransactionID(fl validator.FieldLevel) bool {
	return transactionIDRe.MatchString(fl.Field().String())
}

// validateMemo allows at most 100 printable runes.
func validateMemo(fl validator.FieldLevel) bool {
	memo := fl.Field().String()
	if !utf8.ValidString(memo) || utf8.RuneCountInString(memo) > maxMemoRunes {
		return false
	}
	return strings.IndexFunc(memo, unicode.IsControl) < 0
}

// SanitizeStruct trims whitespace and drops control characters from every
// exported string field (including *string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}
