package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Record is the envelope written for every audited payload.
type Record struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	RecordedAt time.Time `json:"recordedAt"`
	Data       any       `json:"data"`
}

// Auditor keeps JSON snapshots of payloads that change the vocabulary in
// bulk or irreversibly: imports and word deletions.
type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// Enabled reports whether SaveJSON writes anything.
func (a *Auditor) Enabled() bool {
	return a != nil && a.AuditDir != ""
}

// SaveJSON writes data inside a Record to <kind>-<uuid>.json and returns the
// file name. A nil Auditor or an empty directory disables auditing.
func (a *Auditor) SaveJSON(kind string, data any) (string, error) {
	if !a.Enabled() {
		return "", nil
	}

	if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audit directory: %w", err)
	}

	record := Record{
		ID:         uuid.NewString(),
		Kind:       kind,
		RecordedAt: time.Now().UTC(),
		Data:       data,
	}
	filename := fmt.Sprintf("%s-%s.json", kind, record.ID)
	path := filepath.Join(a.AuditDir, filename)

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s audit record: %w", kind, err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}

	log.Printf("Saved audit file: %s", path)
	return filename, nil
}

// Load reads back a record written by SaveJSON.
func (a *Auditor) Load(filename string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(a.AuditDir, filepath.Base(filename)))
	if err != nil {
		return nil, fmt.Errorf("failed to read audit file: %w", err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse audit file: %w", err)
	}
	return &record, nil
}
