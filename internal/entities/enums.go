package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Enum values are stored and transmitted by their symbolic name. Nothing in
// this package depends on the declaration order of the constants.

type PronunciationType string

const (
	PronunciationTypeRecorded PronunciationType = "RECORDED"
	PronunciationTypeSample   PronunciationType = "SAMPLE"
)

// PronunciationTypes returns the declared pronunciation types.
func PronunciationTypes() []PronunciationType {
	return []PronunciationType{PronunciationTypeRecorded, PronunciationTypeSample}
}

// ParsePronunciationType decodes a symbolic name, rejecting undeclared values.
func ParsePronunciationType(s string) (PronunciationType, error) {
	for _, t := range PronunciationTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &UnknownEnumValueError{Enum: "PronunciationType", Value: s}
}

func (t PronunciationType) Valid() bool {
	_, err := ParsePronunciationType(string(t))
	return err == nil
}

func (t PronunciationType) String() string {
	return string(t)
}

func (PronunciationType) GormDataType() string {
	return "string"
}

func (t PronunciationType) Value() (driver.Value, error) {
	if _, err := ParsePronunciationType(string(t)); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *PronunciationType) Scan(src any) error {
	s, err := scanEnumString("PronunciationType", src)
	if err != nil {
		return err
	}
	parsed, err := ParsePronunciationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t PronunciationType) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	if _, err := ParsePronunciationType(string(t)); err != nil {
		return nil, err
	}
	return json.Marshal(string(t))
}

func (t *PronunciationType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &UnknownEnumValueError{Enum: "PronunciationType", Value: string(data)}
	}
	parsed, err := ParsePronunciationType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

type StageStatus string

const (
	StageStatusDone    StageStatus = "DONE"
	StageStatusPending StageStatus = "PENDING"
	StageStatusFail    StageStatus = "FAIL"
)

// StageStatuses returns the declared stage statuses.
func StageStatuses() []StageStatus {
	return []StageStatus{StageStatusDone, StageStatusPending, StageStatusFail}
}

// ParseStageStatus decodes a symbolic name, rejecting undeclared values.
func ParseStageStatus(s string) (StageStatus, error) {
	for _, st := range StageStatuses() {
		if string(st) == s {
			return st, nil
		}
	}
	return "", &UnknownEnumValueError{Enum: "StageStatus", Value: s}
}

func (s StageStatus) Valid() bool {
	_, err := ParseStageStatus(string(s))
	return err == nil
}

func (s StageStatus) String() string {
	return string(s)
}

func (StageStatus) GormDataType() string {
	return "string"
}

func (s StageStatus) Value() (driver.Value, error) {
	if _, err := ParseStageStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

func (s *StageStatus) Scan(src any) error {
	raw, err := scanEnumString("StageStatus", src)
	if err != nil {
		return err
	}
	parsed, err := ParseStageStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s StageStatus) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	if _, err := ParseStageStatus(string(s)); err != nil {
		return nil, err
	}
	return json.Marshal(string(s))
}

func (s *StageStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return &UnknownEnumValueError{Enum: "StageStatus", Value: string(data)}
	}
	parsed, err := ParseStageStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// scanEnumString accepts the column representations sqlite hands back for
// text columns.
func scanEnumString(enum string, src any) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case nil:
		return "", &UnknownEnumValueError{Enum: enum, Value: "NULL"}
	default:
		return "", &UnknownEnumValueError{Enum: enum, Value: fmt.Sprint(v)}
	}
}
