package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice stores a string array as a JSON text column
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	// Oracle drivers bind strings, not []byte, for CLOB/VARCHAR2 columns
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Level is a row of the levels table
type Level struct {
	ID         int64          `db:"ID"`
	Position   int64          `db:"POSITION"`
	Title      string         `db:"TITLE"`
	Theme      sql.NullString `db:"THEME"`
	Difficulty string         `db:"DIFFICULTY"`
	Locked     int64          `db:"LOCKED"` // Oracle has no boolean column type; 0 or 1
	CreatedAt  time.Time      `db:"CREATED_AT"`
	UpdatedAt  time.Time      `db:"UPDATED_AT"`
}

// LevelQuestion is a row of the level_questions table
type LevelQuestion struct {
	LevelID            int64          `db:"LEVEL_ID"`
	Position           int64          `db:"POSITION"`
	Prompt             string         `db:"PROMPT"`
	Options            StringSlice    `db:"OPTIONS"`
	CorrectOptionIndex int64          `db:"CORRECT_OPTION_INDEX"`
	Explanation        sql.NullString `db:"EXPLANATION"`
}
