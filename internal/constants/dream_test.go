package constants

import "testing"

func TestParseDreamType(t *testing.T) {
	tests := []struct {
		in   string
		want DreamType
		ok   bool
	}{
		{"rêve", DreamTypeDream, true},
		{"reve", DreamTypeDream, true},
		{"Dream", DreamTypeDream, true},
		{" LUCIDE ", DreamTypeLucid, true},
		{"lucid", DreamTypeLucid, true},
		{"Lucid dream", DreamTypeLucid, true},
		{"cauchemar", DreamTypeNightmare, true},
		{"nightmare", DreamTypeNightmare, true},
		{"daydream", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDreamType(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseDreamType(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDreamTypeValid(t *testing.T) {
	for _, dt := range DreamTypes {
		if !dt.Valid() {
			t.Errorf("%q should be valid", dt)
		}
	}
	if DreamType("rever").Valid() {
		t.Error("unknown type reported valid")
	}
}
