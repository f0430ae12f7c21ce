package dataprocessing

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

// Query parameter names
const (
	ParamStartTime    = "startTime"
	ParamEndTime      = "endTime"
	ParamTraderID     = "traderId"
	ParamSymbol       = "symbol"
	ParamBaseCurrency = "baseCurrency"
	ParamInterval     = "interval"
)

// QueryTimeLayout is the MM/DD/YY HH:MM layout of startTime and endTime.
// Every field except the year may omit the leading zero.
const QueryTimeLayout = "1/2/06 15:4"

// QueryParser builds validated queries from request parameters
type QueryParser struct {
	validate *validator.Validate
}

// NewQueryParser creates a query parser whose validation errors name the
// query parameter instead of the struct field.
func NewQueryParser() *QueryParser {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &QueryParser{validate: v}
}

// Parse converts raw parameters into a query. Malformed or missing times
// return a *ParseError; constraint violations return validator.ValidationErrors
// joined with ErrInvalidQuery.
func (p *QueryParser) Parse(values url.Values) (domain.Query, error) {
	start, err := parseQueryTime(ParamStartTime, values.Get(ParamStartTime))
	if err != nil {
		return domain.Query{}, err
	}
	end, err := parseQueryTime(ParamEndTime, values.Get(ParamEndTime))
	if err != nil {
		return domain.Query{}, err
	}

	q := domain.Query{
		StartTime:    start,
		EndTime:      end,
		TraderID:     strings.TrimSpace(values.Get(ParamTraderID)),
		Symbol:       strings.TrimSpace(values.Get(ParamSymbol)),
		BaseCurrency: strings.TrimSpace(values.Get(ParamBaseCurrency)),
		Interval:     domain.Interval(strings.ToLower(strings.TrimSpace(values.Get(ParamInterval)))),
	}

	if err := p.Validate(q); err != nil {
		return domain.Query{}, err
	}
	return q, nil
}

// Validate checks the struct constraints of a query
func (p *QueryParser) Validate(q domain.Query) error {
	if err := p.validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}

func parseQueryTime(param, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &ParseError{Param: param, Value: value, Err: fmt.Errorf("value is required")}
	}
	t, err := time.ParseInLocation(QueryTimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Param: param, Value: value, Err: fmt.Errorf("expected MM/DD/YY HH:MM")}
	}
	return t, nil
}
