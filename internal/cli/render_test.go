package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/medtrack/internal/models"
	"github.com/terraincognita07/medtrack/internal/services"
	"github.com/terraincognita07/medtrack/internal/tracker"
)

func TestRenderWeekMarksTakenDays(t *testing.T) {
	medication := models.Medication{ID: uuid.New(), Name: "med-1"}
	other := models.Medication{ID: uuid.New(), Name: "med-2"}
	snapshot := tracker.Snapshot{
		Medications: []models.Medication{medication, other},
		Logs: []models.MedicationLog{
			{ID: uuid.New(), MedicationID: medication.ID, Date: "2024-03-10", Taken: true},
			{ID: uuid.New(), MedicationID: medication.ID, Date: "2024-03-11", Taken: false},
			{ID: uuid.New(), MedicationID: other.ID, Date: "2024-03-16", Taken: true},
		},
		Window: services.NewWeekWindow(time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)),
	}

	rendered := RenderWeek(snapshot)
	for _, want := range []string{"Mar 10 - Mar 16, 2024", "Sun 10", "Sat 16", "med-1", "med-2"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in grid:\n%s", want, rendered)
		}
	}
	if got := strings.Count(rendered, takenMark); got != 2 {
		t.Fatalf("taken marks = %d, want 2", got)
	}
	if got := strings.Count(rendered, missedMark); got != 12 {
		t.Fatalf("missed marks = %d, want 12", got)
	}
}

func TestRenderWeekWithoutMedications(t *testing.T) {
	snapshot := tracker.Snapshot{Window: services.NewWeekWindow(time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC))}
	if rendered := RenderWeek(snapshot); !strings.Contains(rendered, "No medications yet") {
		t.Fatalf("expected empty hint, got:\n%s", rendered)
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("Vitamin D", 12); got != "Vitamin D" {
		t.Fatalf("truncateName() = %q", got)
	}
	if got := truncateName("Acetylsalicylic acid", 10); got != "Acetylsal…" {
		t.Fatalf("truncateName() = %q, want %q", got, "Acetylsal…")
	}
}

func TestFindMedication(t *testing.T) {
	first := models.Medication{ID: uuid.New(), Name: "Iron"}
	second := models.Medication{ID: uuid.New(), Name: "iron"}
	third := models.Medication{ID: uuid.New(), Name: "Zinc"}
	medications := []models.Medication{first, second, third}

	if found, err := findMedication(medications, " zinc "); err != nil || found.ID != third.ID {
		t.Fatalf("findMedication(zinc) = (%v, %v)", found.ID, err)
	}
	if found, err := findMedication(medications, second.ID.String()); err != nil || found.ID != second.ID {
		t.Fatalf("findMedication(id) = (%v, %v)", found.ID, err)
	}
	if _, err := findMedication(medications, "IRON"); err == nil {
		t.Fatal("expected ambiguous name to fail")
	}
	if _, err := findMedication(medications, "Magnesium"); err == nil {
		t.Fatal("expected unknown name to fail")
	}
}
