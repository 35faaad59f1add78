package schema

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/planner/pkg/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		kind    model.FileKind
		doc     string
		wantErr string
	}{
		{"empty year", model.KindYear, `{"year":2025,"labels":[],"events":[],"backlogTodos":[]}`, ""},
		{"year with data", model.KindYear, `{"year":2025,"labels":[{"id":"l1","name":"Work","color":"#f00"}],"events":[{"id":"e1","labelId":"l1","startDate":"2025-01-01","endDate":"2025-01-03"}]}`, ""},
		{"year missing", model.KindYear, `{"labels":[]}`, "year"},
		{"bad priority", model.KindYear, `{"year":2025,"backlogTodos":[{"id":"b","text":"x","priority":7}]}`, "backlogTodos.0.priority"},
		{"bad event date", model.KindYear, `{"year":2025,"events":[{"id":"e","labelId":"l","startDate":"March","endDate":"2025-01-01"}]}`, "events.0.startDate"},
		{"month ok", model.KindMonth, `{"yearMonth":"2025-03","dailyData":{"2025-03-05":{"todos":[{"id":"t","text":"milk","completed":false}],"cellMark":null}}}`, ""},
		{"month bad key", model.KindMonth, `{"yearMonth":"2025-13"}`, "yearMonth"},
		{"month bad day key", model.KindMonth, `{"yearMonth":"2025-03","dailyData":{"tomorrow":{}}}`, "dailyData"},
		{"mandal sparse", model.KindMandal, `{"activeMandalArtId":"m","mandalArts":[{"id":"m","name":"g","type":"9x9","cells":{"0":"a","80":"z"}}]}`, ""},
		{"mandal bad index", model.KindMandal, `{"mandalArts":[{"id":"m","cells":{"81":"a"}}]}`, "mandalArts.0.cells"},
		{"settings", model.KindSettings, `{"colorPalette":[{"color":"#fff"}],"lastOpenedYear":2025}`, ""},
		{"malformed", model.KindYear, `{"year":`, "malformed JSON"},
		{"trailing", model.KindYear, `{"year":2025} {}`, "trailing data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.kind, []byte(tt.doc))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	if err := ValidateFile("2025/2025-03.json", []byte(`{"yearMonth":"2025-03"}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateFile("readme.txt", []byte(`{}`)); err == nil {
		t.Fatal("expected error for unknown document")
	}
}
