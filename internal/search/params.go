package search

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ParamName                = "name"
	ParamExactMatch          = "exactMatch"
	ParamIncludeRoomAndBoard = "includeRoomAndBoard"
)

const (
	MsgNameRequired               = "Error: College name is required"
	MsgIncludeRoomAndBoardBoolean = "Error: includeRoomAndBoard must be true or false"
	MsgExactMatchBoolean          = "Error: exactMatch must be true or false"
)

// boolTokens are the accepted spellings of a boolean query value.
var boolTokens = []interface{}{"true", "false", "1", "0"}

// Params is a validated, normalized search request.
type Params struct {
	// Name is lower-cased.
	Name                string
	ExactMatch          bool
	IncludeRoomAndBoard bool
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Param   string
	Value   string
	Message string
}

// ValidationError carries every failed rule of a request, in a stable order.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

type rawQuery struct {
	Name                string `json:"name"`
	ExactMatch          string `json:"exactMatch"`
	IncludeRoomAndBoard string `json:"includeRoomAndBoard"`
}

// reportOrder is the order in which failed rules are reported.
var reportOrder = []string{ParamName, ParamIncludeRoomAndBoard, ParamExactMatch}

// ParseParams validates query values and returns normalized Params. A
// validation failure is returned as *ValidationError. Empty boolean values are
// treated as absent.
func ParseParams(values url.Values) (Params, error) {
	q := rawQuery{
		Name:                strings.TrimSpace(values.Get(ParamName)),
		ExactMatch:          values.Get(ParamExactMatch),
		IncludeRoomAndBoard: values.Get(ParamIncludeRoomAndBoard),
	}

	err := validation.ValidateStruct(&q,
		validation.Field(&q.Name,
			validation.Required.Error(MsgNameRequired),
		),
		validation.Field(&q.IncludeRoomAndBoard,
			validation.In(boolTokens...).Error(MsgIncludeRoomAndBoardBoolean),
		),
		validation.Field(&q.ExactMatch,
			validation.In(boolTokens...).Error(MsgExactMatchBoolean),
		),
	)
	if err != nil {
		var fieldErrs validation.Errors
		if !errors.As(err, &fieldErrs) {
			return Params{}, err
		}
		return Params{}, newValidationError(fieldErrs, values)
	}

	return Params{
		Name:                strings.ToLower(values.Get(ParamName)),
		ExactMatch:          parseBool(q.ExactMatch, false),
		IncludeRoomAndBoard: parseBool(q.IncludeRoomAndBoard, true),
	}, nil
}

func newValidationError(fieldErrs validation.Errors, values url.Values) *ValidationError {
	verr := &ValidationError{}
	for _, param := range reportOrder {
		fe, ok := fieldErrs[param]
		if !ok || fe == nil {
			continue
		}
		verr.Errors = append(verr.Errors, FieldError{
			Param:   param,
			Value:   values.Get(param),
			Message: fe.Error(),
		})
	}
	return verr
}

func parseBool(value string, fallback bool) bool {
	switch value {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return fallback
	}
}
