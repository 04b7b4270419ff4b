package instruments

import (
	"testing"

	"github.com/james-see/tabs2notes/pkg/converter"
	"github.com/james-see/tabs2notes/pkg/tablature"
)

func TestBass4(t *testing.T) {
	bass := NewBass4()
	if bass.Name() != "4-string bass" {
		t.Errorf("Name() = %q, want %q", bass.Name(), "4-string bass")
	}
	if bass.ID() != Bass4ID {
		t.Errorf("ID() = %q, want %q", bass.ID(), Bass4ID)
	}
	want := []int{28, 33, 38, 43}
	got := bass.Tuning()
	if len(got) != len(want) {
		t.Fatalf("Tuning() has %d strings, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tuning()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGuitar6(t *testing.T) {
	guitar := NewGuitar6()
	if guitar.ID() != Guitar6ID {
		t.Errorf("ID() = %q, want %q", guitar.ID(), Guitar6ID)
	}
	want := []int{40, 45, 50, 55, 59, 64}
	got := guitar.Tuning()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tuning()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestTuningIsACopy(t *testing.T) {
	tuning := NewBass4().Tuning()
	tuning[0] = 0
	if tablature.TuningBass4[0] != 28 {
		t.Error("Tuning() must not expose the shared tuning")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"bass4", Bass4ID},
		{"BASS4", Bass4ID},
		{"bass", Bass4ID},
		{"guitar6", Guitar6ID},
		{" Guitar ", Guitar6ID},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			inst, err := Lookup(tt.id)
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.id, err)
			}
			if inst.ID() != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.id, inst.ID(), tt.want)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("banjo5")
	if err == nil {
		t.Fatal("Lookup(banjo5) should fail")
	}
}

func TestConvertWithBass(t *testing.T) {
	conv := converter.New(NewBass4())
	res, err := conv.Notes([]byte("G|-----------|\nD|-----------|\nA|-----------|\nE|--0--3--5--|\n"))
	if err != nil {
		t.Fatalf("Notes() error = %v", err)
	}
	if got := res.String(); got != "Mi2 Sol2 La2" {
		t.Errorf("Notes() = %q, want %q", got, "Mi2 Sol2 La2")
	}
}
