package college

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrMissingColumn is returned when a mapped header is absent from the file.
var ErrMissingColumn = errors.New("missing required column")

// Columns maps each College field to the CSV header it is read from.
type Columns struct {
	Name              string `json:"name"`
	TuitionInState    string `json:"tuition_in_state"`
	TuitionOutOfState string `json:"tuition_out_of_state"`
	RoomAndBoard      string `json:"room_and_board"`
}

func DefaultColumns() Columns {
	return Columns{
		Name:              "College",
		TuitionInState:    "Tuition (in-state)",
		TuitionOutOfState: "Tuition (out-of-state)",
		RoomAndBoard:      "Room & Board",
	}
}

func (c Columns) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.TuitionInState, validation.Required),
		validation.Field(&c.TuitionOutOfState, validation.Required),
		validation.Field(&c.RoomAndBoard, validation.Required),
	)
}

// columnIndex holds the resolved position of each mapped header.
type columnIndex struct {
	name              int
	tuitionInState    int
	tuitionOutOfState int
	roomAndBoard      int
}

func (c Columns) resolve(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, fmt.Sprintf("%q", name))
			return -1
		}
		return i
	}

	idx := columnIndex{
		name:              lookup(c.Name),
		tuitionInState:    lookup(c.TuitionInState),
		tuitionOutOfState: lookup(c.TuitionOutOfState),
		roomAndBoard:      lookup(c.RoomAndBoard),
	}

	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// field returns row[i], or "" when the row is too short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
