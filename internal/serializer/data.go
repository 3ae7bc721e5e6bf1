package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired   = "This field is required."
	msgBlank      = "This field may not be blank."
	msgNotString  = "Not a valid string."
	msgNotInteger = "A valid integer is required."
	msgEmail      = "Enter a valid email address."
	msgMaxValue   = "Ensure this value is less than or equal to %d."
	msgMinValue   = "Ensure this value is greater than or equal to %d."
)

// Data - сырой ввод из формы или JSON до валидации
type Data map[string]any

// FromForm берет первое значение каждого поля формы
func FromForm(values url.Values) Data {
	d := make(Data, len(values))
	for k, v := range values {
		if len(v) > 0 {
			d[k] = v[0]
		}
	}
	return d
}

func FromJSON(r io.Reader) (Data, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var d Data
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("expected a JSON object")
	}
	return d, nil
}

// String отдает значение поля как строку для повторного показа формы
func (d Data) String(field string) string {
	switch v := d[field].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Errors - ошибки по полям
type Errors map[string][]string

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) has(field string) bool {
	return len(e[field]) > 0
}

func (d Data) str(errs Errors, field string, trim bool) string {
	v, ok := d[field]
	if !ok || v == nil {
		return ""
	}

	var s string
	switch v := v.(type) {
	case string:
		s = v
	case json.Number:
		s = v.String()
	default:
		errs.add(field, msgNotString)
		return ""
	}
	if trim {
		s = strings.TrimSpace(s)
	}
	return s
}

// integer приводит значение к int, пустое значение дает 0.
// Колонка в базе int4, поэтому значения вне int32 отсекаются здесь.
func (d Data) integer(errs Errors, field string) int {
	var raw string
	switch v := d[field].(type) {
	case nil:
		return 0
	case string:
		raw = strings.TrimSpace(v)
	case json.Number:
		raw = v.String()
	case float64:
		raw = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		raw = strconv.Itoa(v)
	default:
		errs.add(field, msgNotInteger)
		return 0
	}
	if raw == "" {
		return 0
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// "3.0" тоже целое
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
			errs.add(field, msgNotInteger)
			return 0
		}
		switch {
		case f > math.MaxInt32:
			errs.add(field, fmt.Sprintf(msgMaxValue, math.MaxInt32))
			return 0
		case f < math.MinInt32:
			errs.add(field, fmt.Sprintf(msgMinValue, math.MinInt32))
			return 0
		}
		n = int64(f)
	}

	switch {
	case n > math.MaxInt32:
		errs.add(field, fmt.Sprintf(msgMaxValue, math.MaxInt32))
		return 0
	case n < math.MinInt32:
		errs.add(field, fmt.Sprintf(msgMinValue, math.MinInt32))
		return 0
	}
	return int(n)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// В ошибках используем имена полей как на проводе
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check прогоняет теги validate и складывает сообщения в errs.
// Поля, где уже есть ошибка приведения типов, пропускаются.
func check(s any, errs Errors, present func(field string) bool) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add("non_field_errors", err.Error())
		return
	}

	for _, fe := range verrs {
		field := fe.Field()
		if errs.has(field) {
			continue
		}
		switch fe.Tag() {
		case "required":
			if present(field) {
				errs.add(field, msgBlank)
			} else {
				errs.add(field, msgRequired)
			}
		case "email":
			errs.add(field, msgEmail)
		default:
			errs.add(field, fmt.Sprintf("Failed on the %q rule.", fe.Tag()))
		}
	}
}
