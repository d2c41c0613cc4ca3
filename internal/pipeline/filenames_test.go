package pipeline

import "testing"

func TestMapName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{"empty", "", "test_case", false},
		{"static", "static_data_cityA.zip", "cityA", false},
		{"dynamic", "dynamic_data_cityA_seed7.json", "cityA", false},
		{"unrecognised", "weird_file.txt", "", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := mapName(tc.filename)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("mapName(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()

	n, err := seed("dynamic_data_cityA_seed42.json")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 42 {
		t.Errorf("seed = %d, want 42", n)
	}

	if _, err := seed("static_data_cityA.zip"); err == nil {
		t.Error("expected NotADynamicFile for a static filename")
	} else if _, ok := err.(*NotADynamicFile); !ok {
		t.Errorf("error type = %T, want *NotADynamicFile", err)
	}

	if _, err := seed("nonsense"); err == nil {
		t.Error("expected UnknownFilenameFormat")
	}
}

func TestExtension(t *testing.T) {
	t.Parallel()

	if got := extension("dynamic_data_x_seed1.JSON"); got != "json" {
		t.Errorf("extension = %q, want json", got)
	}
	if got := extension("noext"); got != "" {
		t.Errorf("extension = %q, want empty", got)
	}
}
